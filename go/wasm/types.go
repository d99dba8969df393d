// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package wasm implements a codec for the WebAssembly MVP binary format
// together with the validation required before a module may be
// instrumented and stored.
package wasm

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ValueType is the type of a WebAssembly value.
type ValueType byte

const (
	I32 ValueType = 0x7f
	I64 ValueType = 0x7e
	F32 ValueType = 0x7d
	F64 ValueType = 0x7c
)

func (t ValueType) IsFloat() bool {
	return t == F32 || t == F64
}

func (t ValueType) isValid() bool {
	return t == I32 || t == I64 || t == F32 || t == F64
}

func (t ValueType) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}
	return fmt.Sprintf("ValueType(0x%02x)", byte(t))
}

// BlockType is the result type of a structured control instruction. It is
// either BlockEmpty or a single value type.
type BlockType byte

const BlockEmpty BlockType = 0x40

func (t BlockType) results() []ValueType {
	if t == BlockEmpty {
		return nil
	}
	return []ValueType{ValueType(t)}
}

// FuncType is the signature of a function.
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

func (f FuncType) Equal(other FuncType) bool {
	return slices.Equal(f.Params, other.Params) && slices.Equal(f.Results, other.Results)
}

func (f FuncType) String() string {
	format := func(types []ValueType) string {
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, t.String())
		}
		return "(" + strings.Join(names, ", ") + ")"
	}
	return format(f.Params) + " -> " + format(f.Results)
}

// Limits bound the size of a memory in pages or of a table in elements.
type Limits struct {
	Min    uint32
	Max    uint32
	HasMax bool
}

// FuncRef is the only table element type of the MVP.
const FuncRef byte = 0x70

type TableType struct {
	ElemType byte
	Limits   Limits
}

type GlobalType struct {
	Type    ValueType
	Mutable bool
}

// ExternalKind identifies what an import or export refers to.
type ExternalKind byte

const (
	ExternalFunction ExternalKind = iota
	ExternalTable
	ExternalMemory
	ExternalGlobal
)

func (k ExternalKind) String() string {
	switch k {
	case ExternalFunction:
		return "function"
	case ExternalTable:
		return "table"
	case ExternalMemory:
		return "memory"
	case ExternalGlobal:
		return "global"
	}
	return fmt.Sprintf("ExternalKind(%d)", byte(k))
}

// Import describes an imported entity. Only the field matching Kind is used.
type Import struct {
	Module string
	Name   string
	Kind   ExternalKind
	Func   uint32 // type index
	Table  TableType
	Memory Limits
	Global GlobalType
}

type Export struct {
	Name  string
	Kind  ExternalKind
	Index uint32
}

// Global is a module-defined global. Init is a constant expression without
// its terminating end instruction.
type Global struct {
	Type GlobalType
	Init []Instruction
}

// Element initializes a range of a table with function indices.
type Element struct {
	Table  uint32
	Offset []Instruction
	Funcs  []uint32
}

// Data initializes a range of a linear memory.
type Data struct {
	Memory uint32
	Offset []Instruction
	Init   []byte
}

type Local struct {
	Count uint32
	Type  ValueType
}

// Body is the code of a module-defined function. Code includes the final end
// instruction closing the function's implicit block.
type Body struct {
	Locals []Local
	Code   []Instruction
}

// LocalCount is the number of locals declared by the body, excluding
// parameters.
func (b *Body) LocalCount() uint64 {
	res := uint64(0)
	for _, local := range b.Locals {
		res += uint64(local.Count)
	}
	return res
}

type Custom struct {
	Name string
	Data []byte
}

// Module is a decoded WebAssembly module. Index spaces of functions, tables,
// memories and globals start with the imported entities followed by the
// module-defined ones.
type Module struct {
	Types     []FuncType
	Imports   []Import
	Functions []uint32 // type indices of module-defined functions
	Tables    []TableType
	Memories  []Limits
	Globals   []Global
	Exports   []Export
	Start     *uint32
	Elements  []Element
	Code      []Body
	Data      []Data
	Customs   []Custom
}

func (m *Module) importCount(kind ExternalKind) uint32 {
	res := uint32(0)
	for _, imp := range m.Imports {
		if imp.Kind == kind {
			res++
		}
	}
	return res
}

func (m *Module) ImportedFunctionCount() uint32 {
	return m.importCount(ExternalFunction)
}

func (m *Module) ImportedGlobalCount() uint32 {
	return m.importCount(ExternalGlobal)
}

func (m *Module) FunctionCount() uint32 {
	return m.ImportedFunctionCount() + uint32(len(m.Functions))
}

func (m *Module) GlobalCount() uint32 {
	return m.ImportedGlobalCount() + uint32(len(m.Globals))
}

func (m *Module) TableCount() uint32 {
	return m.importCount(ExternalTable) + uint32(len(m.Tables))
}

func (m *Module) MemoryCount() uint32 {
	return m.importCount(ExternalMemory) + uint32(len(m.Memories))
}

// FunctionType resolves the signature of the function with the given index
// in the function index space.
func (m *Module) FunctionType(index uint32) (FuncType, bool) {
	typeIndex, found := m.functionTypeIndex(index)
	if !found || typeIndex >= uint32(len(m.Types)) {
		return FuncType{}, false
	}
	return m.Types[typeIndex], true
}

func (m *Module) functionTypeIndex(index uint32) (uint32, bool) {
	for _, imp := range m.Imports {
		if imp.Kind != ExternalFunction {
			continue
		}
		if index == 0 {
			return imp.Func, true
		}
		index--
	}
	if index < uint32(len(m.Functions)) {
		return m.Functions[index], true
	}
	return 0, false
}

// GlobalType resolves the type of the global with the given index in the
// global index space.
func (m *Module) GlobalType(index uint32) (GlobalType, bool) {
	for _, imp := range m.Imports {
		if imp.Kind != ExternalGlobal {
			continue
		}
		if index == 0 {
			return imp.Global, true
		}
		index--
	}
	if index < uint32(len(m.Globals)) {
		return m.Globals[index].Type, true
	}
	return GlobalType{}, false
}

// AddType returns the index of the given signature, appending it to the type
// section if it is not present yet.
func (m *Module) AddType(f FuncType) uint32 {
	for i, t := range m.Types {
		if t.Equal(f) {
			return uint32(i)
		}
	}
	m.Types = append(m.Types, f)
	return uint32(len(m.Types) - 1)
}
