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

import "fmt"

type Opcode byte

// Control and parametric instructions.
const (
	Unreachable  Opcode = 0x00
	Nop          Opcode = 0x01
	Block        Opcode = 0x02
	Loop         Opcode = 0x03
	If           Opcode = 0x04
	Else         Opcode = 0x05
	End          Opcode = 0x0b
	Br           Opcode = 0x0c
	BrIf         Opcode = 0x0d
	BrTable      Opcode = 0x0e
	Return       Opcode = 0x0f
	Call         Opcode = 0x10
	CallIndirect Opcode = 0x11
	Drop         Opcode = 0x1a
	Select       Opcode = 0x1b
)

// Variable instructions.
const (
	LocalGet  Opcode = 0x20
	LocalSet  Opcode = 0x21
	LocalTee  Opcode = 0x22
	GlobalGet Opcode = 0x23
	GlobalSet Opcode = 0x24
)

// Memory instructions.
const (
	I32Load    Opcode = 0x28
	I64Load    Opcode = 0x29
	F32Load    Opcode = 0x2a
	F64Load    Opcode = 0x2b
	I32Load8S  Opcode = 0x2c
	I32Load8U  Opcode = 0x2d
	I32Load16S Opcode = 0x2e
	I32Load16U Opcode = 0x2f
	I64Load8S  Opcode = 0x30
	I64Load8U  Opcode = 0x31
	I64Load16S Opcode = 0x32
	I64Load16U Opcode = 0x33
	I64Load32S Opcode = 0x34
	I64Load32U Opcode = 0x35
	I32Store   Opcode = 0x36
	I64Store   Opcode = 0x37
	F32Store   Opcode = 0x38
	F64Store   Opcode = 0x39
	I32Store8  Opcode = 0x3a
	I32Store16 Opcode = 0x3b
	I64Store8  Opcode = 0x3c
	I64Store16 Opcode = 0x3d
	I64Store32 Opcode = 0x3e
	MemorySize Opcode = 0x3f
	MemoryGrow Opcode = 0x40
)

// Constants and the numeric instructions referenced by name.
const (
	I32Const Opcode = 0x41
	I64Const Opcode = 0x42
	F32Const Opcode = 0x43
	F64Const Opcode = 0x44
	I32Eqz   Opcode = 0x45
	I32GtU   Opcode = 0x4b
	I32Add   Opcode = 0x6a
	I32Sub   Opcode = 0x6b
	I32Mul   Opcode = 0x6c
	I64Eqz   Opcode = 0x50
	I64Add   Opcode = 0x7c

	I32WrapI64    Opcode = 0xa7
	I64ExtendI32U Opcode = 0xad
)

// immediate classifies the immediate operands following an opcode.
type immediate byte

const (
	immNone immediate = iota
	immBlockType
	immIndex
	immBrTable
	immCallIndirect
	immMemArg
	immReserved
	immI32
	immI64
	immF32
	immF64
)

// opInfo describes the static properties of an opcode. For instructions with
// a context dependent stack effect (calls, branches leaving a block, return)
// pops and pushes describe the fixed part only.
type opInfo struct {
	name   string
	imm    immediate
	pops   int
	pushes int
	float  bool
	align  uint32 // natural alignment exponent of memory accesses
	memory bool   // requires a linear memory
	// operand and result are the types of the values consumed and produced
	// by numeric and memory instructions. Addresses are always i32. Zero
	// for instructions typed by their context.
	operand ValueType
	result  ValueType
}

var opInfos [256]*opInfo

func def(op Opcode, name string, imm immediate, pops, pushes int) *opInfo {
	info := &opInfo{name: name, imm: imm, pops: pops, pushes: pushes}
	opInfos[op] = info
	return info
}

func defTyped(op Opcode, name string, imm immediate, pops int, operand, result ValueType) {
	info := def(op, name, imm, pops, 1)
	info.operand = operand
	info.result = result
	info.float = operand.IsFloat() || result.IsFloat()
}

func defLoad(op Opcode, name string, align uint32, result ValueType) {
	info := def(op, name, immMemArg, 1, 1)
	info.align = align
	info.memory = true
	info.result = result
	info.float = result.IsFloat()
}

func defStore(op Opcode, name string, align uint32, operand ValueType) {
	info := def(op, name, immMemArg, 2, 0)
	info.align = align
	info.memory = true
	info.operand = operand
	info.float = operand.IsFloat()
}

func init() {
	def(Unreachable, "unreachable", immNone, 0, 0)
	def(Nop, "nop", immNone, 0, 0)
	def(Block, "block", immBlockType, 0, 0)
	def(Loop, "loop", immBlockType, 0, 0)
	def(If, "if", immBlockType, 1, 0)
	def(Else, "else", immNone, 0, 0)
	def(End, "end", immNone, 0, 0)
	def(Br, "br", immIndex, 0, 0)
	def(BrIf, "br_if", immIndex, 1, 0)
	def(BrTable, "br_table", immBrTable, 1, 0)
	def(Return, "return", immNone, 0, 0)
	def(Call, "call", immIndex, 0, 0)
	def(CallIndirect, "call_indirect", immCallIndirect, 1, 0)
	def(Drop, "drop", immNone, 1, 0)
	def(Select, "select", immNone, 3, 1)

	def(LocalGet, "local.get", immIndex, 0, 1)
	def(LocalSet, "local.set", immIndex, 1, 0)
	def(LocalTee, "local.tee", immIndex, 1, 1)
	def(GlobalGet, "global.get", immIndex, 0, 1)
	def(GlobalSet, "global.set", immIndex, 1, 0)

	defLoad(I32Load, "i32.load", 2, I32)
	defLoad(I64Load, "i64.load", 3, I64)
	defLoad(F32Load, "f32.load", 2, F32)
	defLoad(F64Load, "f64.load", 3, F64)
	defLoad(I32Load8S, "i32.load8_s", 0, I32)
	defLoad(I32Load8U, "i32.load8_u", 0, I32)
	defLoad(I32Load16S, "i32.load16_s", 1, I32)
	defLoad(I32Load16U, "i32.load16_u", 1, I32)
	defLoad(I64Load8S, "i64.load8_s", 0, I64)
	defLoad(I64Load8U, "i64.load8_u", 0, I64)
	defLoad(I64Load16S, "i64.load16_s", 1, I64)
	defLoad(I64Load16U, "i64.load16_u", 1, I64)
	defLoad(I64Load32S, "i64.load32_s", 2, I64)
	defLoad(I64Load32U, "i64.load32_u", 2, I64)
	defStore(I32Store, "i32.store", 2, I32)
	defStore(I64Store, "i64.store", 3, I64)
	defStore(F32Store, "f32.store", 2, F32)
	defStore(F64Store, "f64.store", 3, F64)
	defStore(I32Store8, "i32.store8", 0, I32)
	defStore(I32Store16, "i32.store16", 1, I32)
	defStore(I64Store8, "i64.store8", 0, I64)
	defStore(I64Store16, "i64.store16", 1, I64)
	defStore(I64Store32, "i64.store32", 2, I64)
	defTyped(MemorySize, "memory.size", immReserved, 0, 0, I32)
	defTyped(MemoryGrow, "memory.grow", immReserved, 1, I32, I32)
	opInfos[MemorySize].memory = true
	opInfos[MemoryGrow].memory = true

	defTyped(I32Const, "i32.const", immI32, 0, 0, I32)
	defTyped(I64Const, "i64.const", immI64, 0, 0, I64)
	defTyped(F32Const, "f32.const", immF32, 0, 0, F32)
	defTyped(F64Const, "f64.const", immF64, 0, 0, F64)

	// defNumeric defines consecutive opcodes sharing their signature.
	defNumeric := func(first Opcode, pops int, operand, result ValueType, names ...string) {
		for i, name := range names {
			defTyped(first+Opcode(i), name, immNone, pops, operand, result)
		}
	}
	defNumeric(I32Eqz, 1, I32, I32, "i32.eqz")
	defNumeric(0x46, 2, I32, I32, "i32.eq", "i32.ne", "i32.lt_s", "i32.lt_u", "i32.gt_s",
		"i32.gt_u", "i32.le_s", "i32.le_u", "i32.ge_s", "i32.ge_u")
	defNumeric(I64Eqz, 1, I64, I32, "i64.eqz")
	defNumeric(0x51, 2, I64, I32, "i64.eq", "i64.ne", "i64.lt_s", "i64.lt_u", "i64.gt_s",
		"i64.gt_u", "i64.le_s", "i64.le_u", "i64.ge_s", "i64.ge_u")
	defNumeric(0x5b, 2, F32, I32, "f32.eq", "f32.ne", "f32.lt", "f32.gt", "f32.le", "f32.ge")
	defNumeric(0x61, 2, F64, I32, "f64.eq", "f64.ne", "f64.lt", "f64.gt", "f64.le", "f64.ge")

	defNumeric(0x67, 1, I32, I32, "i32.clz", "i32.ctz", "i32.popcnt")
	defNumeric(0x6a, 2, I32, I32, "i32.add", "i32.sub", "i32.mul", "i32.div_s", "i32.div_u",
		"i32.rem_s", "i32.rem_u", "i32.and", "i32.or", "i32.xor", "i32.shl", "i32.shr_s",
		"i32.shr_u", "i32.rotl", "i32.rotr")
	defNumeric(0x79, 1, I64, I64, "i64.clz", "i64.ctz", "i64.popcnt")
	defNumeric(0x7c, 2, I64, I64, "i64.add", "i64.sub", "i64.mul", "i64.div_s", "i64.div_u",
		"i64.rem_s", "i64.rem_u", "i64.and", "i64.or", "i64.xor", "i64.shl", "i64.shr_s",
		"i64.shr_u", "i64.rotl", "i64.rotr")
	defNumeric(0x8b, 1, F32, F32, "f32.abs", "f32.neg", "f32.ceil", "f32.floor", "f32.trunc",
		"f32.nearest", "f32.sqrt")
	defNumeric(0x92, 2, F32, F32, "f32.add", "f32.sub", "f32.mul", "f32.div", "f32.min",
		"f32.max", "f32.copysign")
	defNumeric(0x99, 1, F64, F64, "f64.abs", "f64.neg", "f64.ceil", "f64.floor", "f64.trunc",
		"f64.nearest", "f64.sqrt")
	defNumeric(0xa0, 2, F64, F64, "f64.add", "f64.sub", "f64.mul", "f64.div", "f64.min",
		"f64.max", "f64.copysign")

	defNumeric(0xa7, 1, I64, I32, "i32.wrap_i64")
	defNumeric(0xa8, 1, F32, I32, "i32.trunc_f32_s", "i32.trunc_f32_u")
	defNumeric(0xaa, 1, F64, I32, "i32.trunc_f64_s", "i32.trunc_f64_u")
	defNumeric(0xac, 1, I32, I64, "i64.extend_i32_s", "i64.extend_i32_u")
	defNumeric(0xae, 1, F32, I64, "i64.trunc_f32_s", "i64.trunc_f32_u")
	defNumeric(0xb0, 1, F64, I64, "i64.trunc_f64_s", "i64.trunc_f64_u")
	defNumeric(0xb2, 1, I32, F32, "f32.convert_i32_s", "f32.convert_i32_u")
	defNumeric(0xb4, 1, I64, F32, "f32.convert_i64_s", "f32.convert_i64_u")
	defNumeric(0xb6, 1, F64, F32, "f32.demote_f64")
	defNumeric(0xb7, 1, I32, F64, "f64.convert_i32_s", "f64.convert_i32_u")
	defNumeric(0xb9, 1, I64, F64, "f64.convert_i64_s", "f64.convert_i64_u")
	defNumeric(0xbb, 1, F32, F64, "f64.promote_f32")
	defNumeric(0xbc, 1, F32, I32, "i32.reinterpret_f32")
	defNumeric(0xbd, 1, F64, I64, "i64.reinterpret_f64")
	defNumeric(0xbe, 1, I32, F32, "f32.reinterpret_i32")
	defNumeric(0xbf, 1, I64, F64, "f64.reinterpret_i64")
}

func (op Opcode) info() (*opInfo, bool) {
	info := opInfos[op]
	return info, info != nil
}

// IsFloat reports whether the instruction operates on floating point values.
func (op Opcode) IsFloat() bool {
	info, found := op.info()
	return found && info.float
}

// StackEffect returns the number of operands consumed and produced by the
// instruction, not counting the context dependent effect of calls.
func (op Opcode) StackEffect() (pops, pushes int) {
	if info, found := op.info(); found {
		return info.pops, info.pushes
	}
	return 0, 0
}

func (op Opcode) String() string {
	if info, found := op.info(); found {
		return info.name
	}
	return fmt.Sprintf("op(0x%02x)", byte(op))
}
