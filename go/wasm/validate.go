// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package wasm

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"golang.org/x/exp/slices"
)

const ErrInvalidModule = contracts.ConstError("invalid module")

const (
	// PageSize is the size of a linear memory page in bytes.
	PageSize = 64 * 1024
	// MaxPages is the maximum number of pages of a linear memory.
	MaxPages = 65536
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidModule, fmt.Sprintf(format, args...))
}

// Validate performs the validation of a decoded module: all indices must be
// in range, structured control instructions must be properly nested,
// function bodies must be well-typed, initializers must be constant and the
// MVP limits on the number of tables and memories must hold.
func Validate(m *Module) error {
	for _, imp := range m.Imports {
		switch imp.Kind {
		case ExternalFunction:
			if imp.Func >= uint32(len(m.Types)) {
				return invalid("import %s.%s refers to unknown type %d", imp.Module, imp.Name, imp.Func)
			}
		case ExternalTable:
			if err := checkLimits(imp.Table.Limits, ^uint32(0)); err != nil {
				return err
			}
		case ExternalMemory:
			if err := checkLimits(imp.Memory, MaxPages); err != nil {
				return err
			}
		}
	}
	for i, index := range m.Functions {
		if index >= uint32(len(m.Types)) {
			return invalid("function %d refers to unknown type %d", i, index)
		}
	}
	if m.TableCount() > 1 {
		return invalid("multiple tables")
	}
	if m.MemoryCount() > 1 {
		return invalid("multiple memories")
	}
	for _, table := range m.Tables {
		if err := checkLimits(table.Limits, ^uint32(0)); err != nil {
			return err
		}
	}
	for _, memory := range m.Memories {
		if err := checkLimits(memory, MaxPages); err != nil {
			return err
		}
	}
	for i, global := range m.Globals {
		if err := checkConstExpr(m, global.Init, global.Type.Type); err != nil {
			return fmt.Errorf("global %d: %w", i, err)
		}
	}
	if err := checkExports(m); err != nil {
		return err
	}
	if m.Start != nil {
		f, found := m.FunctionType(*m.Start)
		if !found {
			return invalid("unknown start function %d", *m.Start)
		}
		if len(f.Params) != 0 || len(f.Results) != 0 {
			return invalid("start function has signature %v", f)
		}
	}
	for i, element := range m.Elements {
		if element.Table >= m.TableCount() {
			return invalid("element segment %d refers to unknown table", i)
		}
		if err := checkConstExpr(m, element.Offset, I32); err != nil {
			return fmt.Errorf("element segment %d: %w", i, err)
		}
		for _, index := range element.Funcs {
			if index >= m.FunctionCount() {
				return invalid("element segment %d refers to unknown function %d", i, index)
			}
		}
	}
	for i, data := range m.Data {
		if data.Memory >= m.MemoryCount() {
			return invalid("data segment %d refers to unknown memory", i)
		}
		if err := checkConstExpr(m, data.Offset, I32); err != nil {
			return fmt.Errorf("data segment %d: %w", i, err)
		}
	}
	for i := range m.Code {
		if err := checkBody(m, m.Types[m.Functions[i]], &m.Code[i]); err != nil {
			return fmt.Errorf("function %d: %w", m.ImportedFunctionCount()+uint32(i), err)
		}
	}
	return nil
}

func checkLimits(limits Limits, bound uint32) error {
	if limits.Min > bound || (limits.HasMax && limits.Max > bound) {
		return invalid("limits exceed %d", bound)
	}
	if limits.HasMax && limits.Min > limits.Max {
		return invalid("minimum %d exceeds maximum %d", limits.Min, limits.Max)
	}
	return nil
}

func checkExports(m *Module) error {
	names := map[string]bool{}
	for _, export := range m.Exports {
		if names[export.Name] {
			return invalid("duplicate export %q", export.Name)
		}
		names[export.Name] = true

		var count uint32
		switch export.Kind {
		case ExternalFunction:
			count = m.FunctionCount()
		case ExternalTable:
			count = m.TableCount()
		case ExternalMemory:
			count = m.MemoryCount()
		case ExternalGlobal:
			count = m.GlobalCount()
		}
		if export.Index >= count {
			return invalid("export %q refers to unknown %v %d", export.Name, export.Kind, export.Index)
		}
	}
	return nil
}

// checkConstExpr accepts a single constant of the expected type or a read of
// an immutable imported global.
func checkConstExpr(m *Module, code []Instruction, want ValueType) error {
	if len(code) != 1 {
		return invalid("initializer is not a constant expression")
	}
	var got ValueType
	switch ins := code[0]; ins.Op {
	case I32Const:
		got = I32
	case I64Const:
		got = I64
	case F32Const:
		got = F32
	case F64Const:
		got = F64
	case GlobalGet:
		if ins.Index() >= m.ImportedGlobalCount() {
			return invalid("initializer refers to non-imported global %d", ins.Index())
		}
		global, _ := m.GlobalType(ins.Index())
		if global.Mutable {
			return invalid("initializer refers to mutable global %d", ins.Index())
		}
		got = global.Type
	default:
		return invalid("initializer is not a constant expression")
	}
	if got != want {
		return invalid("initializer of type %v, expected %v", got, want)
	}
	return nil
}

func checkBody(m *Module, signature FuncType, body *Body) error {
	locals := uint64(len(signature.Params)) + body.LocalCount()
	if locals > maxLocals {
		return invalid("too many locals")
	}
	types := make([]ValueType, 0, locals)
	types = append(types, signature.Params...)
	for _, local := range body.Locals {
		for i := uint32(0); i < local.Count; i++ {
			types = append(types, local.Type)
		}
	}

	c := &typeChecker{}
	// The implicit block of the function is the outermost frame.
	c.enter(Block, signature.Results)
	for pc, ins := range body.Code {
		if len(c.frames) == 0 {
			return invalid("instruction after end of function at %d", pc)
		}
		if err := checkInstruction(m, c, types, signature, ins); err != nil {
			return fmt.Errorf("%w at %d", err, pc)
		}
	}
	if len(c.frames) != 0 {
		return invalid("function body is not terminated")
	}
	return nil
}

func checkInstruction(m *Module, c *typeChecker, locals []ValueType, signature FuncType, ins Instruction) error {
	info, found := ins.Op.info()
	if !found {
		return invalid("unknown opcode %v", ins.Op)
	}
	if info.memory && m.MemoryCount() == 0 {
		return invalid("%v without memory", ins.Op)
	}
	if info.imm == immMemArg && ins.Imm > uint64(info.align) {
		return invalid("alignment of %v exceeds natural alignment", ins.Op)
	}
	labels := uint32(len(c.frames))
	switch ins.Op {
	case Nop:
	case Unreachable:
		c.markUnreachable()
	case Block, Loop:
		c.enter(ins.Op, ins.BlockType().results())
	case If:
		if err := c.pop(I32); err != nil {
			return err
		}
		c.enter(If, ins.BlockType().results())
	case Else:
		top := c.top()
		if top.op != If {
			return invalid("else without if")
		}
		if err := c.popAll(top.results); err != nil {
			return err
		}
		if len(c.stack) != top.height {
			return invalid("else leaves extra operands")
		}
		top.op = Else
		top.unreachable = false
	case End:
		top := *c.top()
		if top.op == If && len(top.results) != 0 {
			return invalid("if with result type but without else")
		}
		if err := c.popAll(top.results); err != nil {
			return err
		}
		if len(c.stack) != top.height {
			return invalid("block leaves extra operands")
		}
		c.frames = c.frames[:len(c.frames)-1]
		c.pushAll(top.results)
	case Br:
		if ins.Index() >= labels {
			return invalid("unknown label %d", ins.Index())
		}
		if err := c.popAll(c.labelTypes(ins.Index())); err != nil {
			return err
		}
		c.markUnreachable()
	case BrIf:
		if ins.Index() >= labels {
			return invalid("unknown label %d", ins.Index())
		}
		if err := c.pop(I32); err != nil {
			return err
		}
		want := c.labelTypes(ins.Index())
		if err := c.popAll(want); err != nil {
			return err
		}
		c.pushAll(want)
	case BrTable:
		if ins.Index() >= labels {
			return invalid("unknown label %d", ins.Index())
		}
		want := c.labelTypes(ins.Index())
		for _, label := range ins.Labels {
			if label >= labels {
				return invalid("unknown label %d", label)
			}
			if !slices.Equal(c.labelTypes(label), want) {
				return invalid("br_table targets of different types")
			}
		}
		if err := c.pop(I32); err != nil {
			return err
		}
		if err := c.popAll(want); err != nil {
			return err
		}
		c.markUnreachable()
	case Return:
		if err := c.popAll(signature.Results); err != nil {
			return err
		}
		c.markUnreachable()
	case Call:
		callee, found := m.FunctionType(ins.Index())
		if !found {
			return invalid("call to unknown function %d", ins.Index())
		}
		if err := c.popAll(callee.Params); err != nil {
			return err
		}
		c.pushAll(callee.Results)
	case CallIndirect:
		if ins.Index() >= uint32(len(m.Types)) {
			return invalid("call_indirect with unknown type %d", ins.Index())
		}
		if m.TableCount() == 0 {
			return invalid("call_indirect without table")
		}
		callee := m.Types[ins.Index()]
		if err := c.pop(I32); err != nil {
			return err
		}
		if err := c.popAll(callee.Params); err != nil {
			return err
		}
		c.pushAll(callee.Results)
	case Drop:
		if _, err := c.popAny(); err != nil {
			return err
		}
	case Select:
		if err := c.pop(I32); err != nil {
			return err
		}
		first, err := c.popAny()
		if err != nil {
			return err
		}
		second, err := c.popAny()
		if err != nil {
			return err
		}
		if first != unknownType && second != unknownType && first != second {
			return invalid("select of %v and %v", second, first)
		}
		if first == unknownType {
			first = second
		}
		c.push(first)
	case LocalGet, LocalSet, LocalTee:
		if uint64(ins.Index()) >= uint64(len(locals)) {
			return invalid("unknown local %d", ins.Index())
		}
		local := locals[ins.Index()]
		if ins.Op == LocalGet {
			c.push(local)
			break
		}
		if err := c.pop(local); err != nil {
			return err
		}
		if ins.Op == LocalTee {
			c.push(local)
		}
	case GlobalGet, GlobalSet:
		global, found := m.GlobalType(ins.Index())
		if !found {
			return invalid("unknown global %d", ins.Index())
		}
		if ins.Op == GlobalGet {
			c.push(global.Type)
			break
		}
		if !global.Mutable {
			return invalid("write to immutable global %d", ins.Index())
		}
		return c.pop(global.Type)
	default:
		return c.apply(info)
	}
	return nil
}

// unknownType is the type of operands popped from the polymorphic stack
// following an unconditional branch.
const unknownType ValueType = 0

type typeFrame struct {
	op          Opcode
	results     []ValueType
	height      int
	unreachable bool
}

// typeChecker tracks the types on the operand stack and the enclosing
// control frames of a function body.
type typeChecker struct {
	stack  []ValueType
	frames []typeFrame
}

func (c *typeChecker) top() *typeFrame {
	return &c.frames[len(c.frames)-1]
}

func (c *typeChecker) enter(op Opcode, results []ValueType) {
	c.frames = append(c.frames, typeFrame{op: op, results: results, height: len(c.stack)})
}

func (c *typeChecker) markUnreachable() {
	top := c.top()
	c.stack = c.stack[:top.height]
	top.unreachable = true
}

// labelTypes returns the operands a branch to the given label carries.
// Branches to a loop restart it and carry nothing.
func (c *typeChecker) labelTypes(label uint32) []ValueType {
	frame := c.frames[len(c.frames)-1-int(label)]
	if frame.op == Loop {
		return nil
	}
	return frame.results
}

func (c *typeChecker) push(t ValueType) {
	c.stack = append(c.stack, t)
}

func (c *typeChecker) pushAll(types []ValueType) {
	for _, t := range types {
		c.push(t)
	}
}

func (c *typeChecker) popAny() (ValueType, error) {
	top := c.top()
	if len(c.stack) == top.height {
		if top.unreachable {
			return unknownType, nil
		}
		return unknownType, invalid("operand stack underflow")
	}
	t := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return t, nil
}

func (c *typeChecker) pop(want ValueType) error {
	got, err := c.popAny()
	if err != nil {
		return err
	}
	if got != unknownType && got != want {
		return invalid("operand of type %v, expected %v", got, want)
	}
	return nil
}

func (c *typeChecker) popAll(types []ValueType) error {
	for i := len(types) - 1; i >= 0; i-- {
		if err := c.pop(types[i]); err != nil {
			return err
		}
	}
	return nil
}

// apply checks an instruction with a fixed signature described by info.
func (c *typeChecker) apply(info *opInfo) error {
	switch info.imm {
	case immMemArg:
		if info.pushes == 0 {
			if err := c.pop(info.operand); err != nil {
				return err
			}
		}
		if err := c.pop(I32); err != nil {
			return err
		}
	default:
		for i := 0; i < info.pops; i++ {
			if err := c.pop(info.operand); err != nil {
				return err
			}
		}
	}
	if info.pushes != 0 {
		c.push(info.result)
	}
	return nil
}
