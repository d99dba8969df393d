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
	"bytes"
	"encoding/binary"
	"fmt"
)

var magic = []byte{0x00, 0x61, 0x73, 0x6d}

const version = uint32(1)

const (
	sectionCustom   = 0
	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionTable    = 4
	sectionMemory   = 5
	sectionGlobal   = 6
	sectionExport   = 7
	sectionStart    = 8
	sectionElement  = 9
	sectionCode     = 10
	sectionData     = 11
)

// maxLocals bounds the number of locals a single function may declare.
const maxLocals = 50_000

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedModule, fmt.Sprintf(format, args...))
}

// Decode parses a module in the WebAssembly binary format.
func Decode(data []byte) (*Module, error) {
	r := &reader{data: data}
	header, err := r.bytes(8)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(header[:4], magic) {
		return nil, malformed("invalid magic number")
	}
	if v := binary.LittleEndian.Uint32(header[4:]); v != version {
		return nil, malformed("unsupported version %d", v)
	}

	module := &Module{}
	last := byte(0)
	for !r.done() {
		id, err := r.byte()
		if err != nil {
			return nil, err
		}
		size, err := r.u32()
		if err != nil {
			return nil, err
		}
		content, err := r.bytes(size)
		if err != nil {
			return nil, err
		}
		if id != sectionCustom {
			if id > sectionData {
				return nil, malformed("unknown section %d", id)
			}
			if id <= last {
				return nil, malformed("section %d out of order", id)
			}
			last = id
		}
		section := &reader{data: content}
		if err := module.decodeSection(id, section); err != nil {
			return nil, err
		}
		if !section.done() {
			return nil, malformed("section %d has trailing bytes", id)
		}
	}
	if len(module.Functions) != len(module.Code) {
		return nil, malformed("%d functions declared but %d bodies present", len(module.Functions), len(module.Code))
	}
	return module, nil
}

// vector decodes a length prefixed sequence, calling element for each entry.
func vector(r *reader, element func() error) error {
	count, err := r.u32()
	if err != nil {
		return err
	}
	// Every element occupies at least one byte.
	if uint64(count) > uint64(len(r.data)-r.pos) {
		return errUnexpectedEnd
	}
	for i := uint32(0); i < count; i++ {
		if err := element(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) decodeSection(id byte, r *reader) error {
	switch id {
	case sectionCustom:
		name, err := r.name()
		if err != nil {
			return err
		}
		m.Customs = append(m.Customs, Custom{Name: name, Data: r.data[r.pos:]})
		r.pos = len(r.data)
		return nil
	case sectionType:
		return vector(r, func() error {
			f, err := decodeFuncType(r)
			m.Types = append(m.Types, f)
			return err
		})
	case sectionImport:
		return vector(r, func() error {
			imp, err := decodeImport(r)
			m.Imports = append(m.Imports, imp)
			return err
		})
	case sectionFunction:
		return vector(r, func() error {
			index, err := r.u32()
			m.Functions = append(m.Functions, index)
			return err
		})
	case sectionTable:
		return vector(r, func() error {
			table, err := decodeTableType(r)
			m.Tables = append(m.Tables, table)
			return err
		})
	case sectionMemory:
		return vector(r, func() error {
			limits, err := decodeLimits(r)
			m.Memories = append(m.Memories, limits)
			return err
		})
	case sectionGlobal:
		return vector(r, func() error {
			global, err := decodeGlobal(r)
			m.Globals = append(m.Globals, global)
			return err
		})
	case sectionExport:
		return vector(r, func() error {
			export, err := decodeExport(r)
			m.Exports = append(m.Exports, export)
			return err
		})
	case sectionStart:
		index, err := r.u32()
		if err != nil {
			return err
		}
		m.Start = &index
		return nil
	case sectionElement:
		return vector(r, func() error {
			element, err := decodeElement(r)
			m.Elements = append(m.Elements, element)
			return err
		})
	case sectionCode:
		return vector(r, func() error {
			body, err := decodeBody(r)
			m.Code = append(m.Code, body)
			return err
		})
	case sectionData:
		return vector(r, func() error {
			data, err := decodeData(r)
			m.Data = append(m.Data, data)
			return err
		})
	}
	return malformed("unknown section %d", id)
}

func decodeValueType(r *reader) (ValueType, error) {
	b, err := r.byte()
	if err != nil {
		return 0, err
	}
	if t := ValueType(b); t.isValid() {
		return t, nil
	}
	return 0, malformed("invalid value type 0x%02x", b)
}

func decodeValueTypes(r *reader) ([]ValueType, error) {
	var res []ValueType
	err := vector(r, func() error {
		t, err := decodeValueType(r)
		res = append(res, t)
		return err
	})
	return res, err
}

func decodeFuncType(r *reader) (FuncType, error) {
	form, err := r.byte()
	if err != nil {
		return FuncType{}, err
	}
	if form != 0x60 {
		return FuncType{}, malformed("invalid function type form 0x%02x", form)
	}
	params, err := decodeValueTypes(r)
	if err != nil {
		return FuncType{}, err
	}
	results, err := decodeValueTypes(r)
	if err != nil {
		return FuncType{}, err
	}
	if len(results) > 1 {
		return FuncType{}, malformed("multiple results are not supported")
	}
	return FuncType{Params: params, Results: results}, nil
}

func decodeLimits(r *reader) (Limits, error) {
	flag, err := r.byte()
	if err != nil {
		return Limits{}, err
	}
	if flag > 1 {
		return Limits{}, malformed("invalid limits flag 0x%02x", flag)
	}
	initial, err := r.u32()
	if err != nil {
		return Limits{}, err
	}
	res := Limits{Min: initial}
	if flag == 1 {
		res.HasMax = true
		if res.Max, err = r.u32(); err != nil {
			return Limits{}, err
		}
	}
	return res, nil
}

func decodeTableType(r *reader) (TableType, error) {
	elemType, err := r.byte()
	if err != nil {
		return TableType{}, err
	}
	if elemType != FuncRef {
		return TableType{}, malformed("invalid table element type 0x%02x", elemType)
	}
	limits, err := decodeLimits(r)
	return TableType{ElemType: elemType, Limits: limits}, err
}

func decodeGlobalType(r *reader) (GlobalType, error) {
	t, err := decodeValueType(r)
	if err != nil {
		return GlobalType{}, err
	}
	mutable, err := r.byte()
	if err != nil {
		return GlobalType{}, err
	}
	if mutable > 1 {
		return GlobalType{}, malformed("invalid global mutability 0x%02x", mutable)
	}
	return GlobalType{Type: t, Mutable: mutable == 1}, nil
}

func decodeImport(r *reader) (Import, error) {
	var res Import
	var err error
	if res.Module, err = r.name(); err != nil {
		return res, err
	}
	if res.Name, err = r.name(); err != nil {
		return res, err
	}
	kind, err := r.byte()
	if err != nil {
		return res, err
	}
	res.Kind = ExternalKind(kind)
	switch res.Kind {
	case ExternalFunction:
		res.Func, err = r.u32()
	case ExternalTable:
		res.Table, err = decodeTableType(r)
	case ExternalMemory:
		res.Memory, err = decodeLimits(r)
	case ExternalGlobal:
		res.Global, err = decodeGlobalType(r)
	default:
		err = malformed("invalid import kind %d", kind)
	}
	return res, err
}

func decodeExport(r *reader) (Export, error) {
	var res Export
	var err error
	if res.Name, err = r.name(); err != nil {
		return res, err
	}
	kind, err := r.byte()
	if err != nil {
		return res, err
	}
	if kind > byte(ExternalGlobal) {
		return res, malformed("invalid export kind %d", kind)
	}
	res.Kind = ExternalKind(kind)
	res.Index, err = r.u32()
	return res, err
}

func decodeGlobal(r *reader) (Global, error) {
	t, err := decodeGlobalType(r)
	if err != nil {
		return Global{}, err
	}
	init, err := decodeConstExpr(r)
	return Global{Type: t, Init: init}, err
}

func decodeElement(r *reader) (Element, error) {
	table, err := r.u32()
	if err != nil {
		return Element{}, err
	}
	offset, err := decodeConstExpr(r)
	if err != nil {
		return Element{}, err
	}
	res := Element{Table: table, Offset: offset}
	err = vector(r, func() error {
		index, err := r.u32()
		res.Funcs = append(res.Funcs, index)
		return err
	})
	return res, err
}

func decodeData(r *reader) (Data, error) {
	memory, err := r.u32()
	if err != nil {
		return Data{}, err
	}
	offset, err := decodeConstExpr(r)
	if err != nil {
		return Data{}, err
	}
	length, err := r.u32()
	if err != nil {
		return Data{}, err
	}
	init, err := r.bytes(length)
	return Data{Memory: memory, Offset: offset, Init: init}, err
}

func decodeBody(r *reader) (Body, error) {
	size, err := r.u32()
	if err != nil {
		return Body{}, err
	}
	content, err := r.bytes(size)
	if err != nil {
		return Body{}, err
	}
	body := &reader{data: content}

	var res Body
	total := uint64(0)
	err = vector(body, func() error {
		count, err := body.u32()
		if err != nil {
			return err
		}
		if total += uint64(count); total > maxLocals {
			return malformed("too many locals")
		}
		t, err := decodeValueType(body)
		res.Locals = append(res.Locals, Local{Count: count, Type: t})
		return err
	})
	if err != nil {
		return Body{}, err
	}
	if res.Code, err = decodeInstructions(body, false); err != nil {
		return Body{}, err
	}
	if !body.done() {
		return Body{}, malformed("function body has trailing bytes")
	}
	return res, nil
}

// decodeConstExpr decodes an initializer expression. The terminating end
// instruction is not included in the result.
func decodeConstExpr(r *reader) ([]Instruction, error) {
	code, err := decodeInstructions(r, true)
	if err != nil {
		return nil, err
	}
	return code[:len(code)-1], nil
}

// decodeInstructions decodes instructions up to and including the end
// instruction closing the implicit outermost block.
func decodeInstructions(r *reader, constant bool) ([]Instruction, error) {
	var code []Instruction
	depth := 0
	for {
		instruction, err := decodeInstruction(r)
		if err != nil {
			return nil, err
		}
		code = append(code, instruction)
		switch instruction.Op {
		case Block, Loop, If:
			depth++
		case End:
			if depth == 0 {
				return code, nil
			}
			depth--
		}
		if constant && depth > 0 {
			return nil, malformed("structured instruction in constant expression")
		}
	}
}

func decodeInstruction(r *reader) (Instruction, error) {
	b, err := r.byte()
	if err != nil {
		return Instruction{}, err
	}
	op := Opcode(b)
	info, found := op.info()
	if !found {
		return Instruction{}, malformed("unknown opcode 0x%02x", b)
	}

	res := Instruction{Op: op}
	switch info.imm {
	case immBlockType:
		t, err := r.byte()
		if err != nil {
			return res, err
		}
		if BlockType(t) != BlockEmpty && !ValueType(t).isValid() {
			return res, malformed("invalid block type 0x%02x", t)
		}
		res.Imm = uint64(t)
	case immIndex:
		index, err := r.u32()
		res.Imm = uint64(index)
		return res, err
	case immBrTable:
		err := vector(r, func() error {
			label, err := r.u32()
			res.Labels = append(res.Labels, label)
			return err
		})
		if err != nil {
			return res, err
		}
		def, err := r.u32()
		res.Imm = uint64(def)
		return res, err
	case immCallIndirect:
		index, err := r.u32()
		if err != nil {
			return res, err
		}
		res.Imm = uint64(index)
		return res, reserved(r)
	case immMemArg:
		align, err := r.u32()
		if err != nil {
			return res, err
		}
		res.Imm = uint64(align)
		res.Offset, err = r.u32()
		return res, err
	case immReserved:
		return res, reserved(r)
	case immI32:
		value, err := r.s32()
		res.Imm = uint64(uint32(value))
		return res, err
	case immI64:
		value, err := r.s64()
		res.Imm = uint64(value)
		return res, err
	case immF32:
		raw, err := r.bytes(4)
		if err != nil {
			return res, err
		}
		res.Imm = uint64(binary.LittleEndian.Uint32(raw))
	case immF64:
		raw, err := r.bytes(8)
		if err != nil {
			return res, err
		}
		res.Imm = binary.LittleEndian.Uint64(raw)
	}
	return res, nil
}

func reserved(r *reader) error {
	b, err := r.byte()
	if err != nil {
		return err
	}
	if b != 0 {
		return malformed("non-zero reserved byte")
	}
	return nil
}
