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
	"strings"
)

// Instruction is a single decoded instruction.
type Instruction struct {
	Op Opcode
	// Imm holds the primary immediate: an index or label depth, a block
	// type, the alignment of a memory access or the bits of a constant.
	Imm uint64
	// Offset is the static offset of a memory access.
	Offset uint32
	// Labels are the targets of a br_table; Imm holds its default target.
	Labels []uint32
}

// Op creates an instruction without immediates.
func Op(op Opcode) Instruction {
	return Instruction{Op: op}
}

// Indexed creates an instruction with a single index immediate, e.g. a call
// or a local access.
func Indexed(op Opcode, index uint32) Instruction {
	return Instruction{Op: op, Imm: uint64(index)}
}

func ConstI32(value int32) Instruction {
	return Instruction{Op: I32Const, Imm: uint64(uint32(value))}
}

func ConstI64(value int64) Instruction {
	return Instruction{Op: I64Const, Imm: uint64(value)}
}

func BlockOf(op Opcode, blockType BlockType) Instruction {
	return Instruction{Op: op, Imm: uint64(blockType)}
}

// Index returns the index immediate of the instruction.
func (i Instruction) Index() uint32 {
	return uint32(i.Imm)
}

func (i Instruction) I32() int32 {
	return int32(uint32(i.Imm))
}

func (i Instruction) I64() int64 {
	return int64(i.Imm)
}

func (i Instruction) BlockType() BlockType {
	return BlockType(i.Imm)
}

func (i Instruction) String() string {
	info, found := i.Op.info()
	if !found {
		return i.Op.String()
	}
	switch info.imm {
	case immIndex, immBlockType:
		return fmt.Sprintf("%v %d", i.Op, i.Imm)
	case immI32:
		return fmt.Sprintf("%v %d", i.Op, i.I32())
	case immI64:
		return fmt.Sprintf("%v %d", i.Op, i.I64())
	case immMemArg:
		return fmt.Sprintf("%v align=%d offset=%d", i.Op, i.Imm, i.Offset)
	case immBrTable:
		labels := make([]string, 0, len(i.Labels))
		for _, label := range i.Labels {
			labels = append(labels, fmt.Sprint(label))
		}
		return fmt.Sprintf("%v [%s] %d", i.Op, strings.Join(labels, " "), i.Imm)
	case immCallIndirect:
		return fmt.Sprintf("%v type=%d", i.Op, i.Imm)
	}
	return i.Op.String()
}
