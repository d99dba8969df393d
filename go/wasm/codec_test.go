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
	"errors"
	"math"
	"reflect"
	"testing"
)

func exampleModule() *Module {
	start := uint32(2)
	return &Module{
		Types: []FuncType{
			{},
			{Params: []ValueType{I32}, Results: []ValueType{I64}},
		},
		Imports: []Import{
			{Module: "env", Name: "ext_caller", Kind: ExternalFunction, Func: 0},
			{Module: "env", Name: "memory", Kind: ExternalMemory, Memory: Limits{Min: 1, Max: 16, HasMax: true}},
		},
		Functions: []uint32{1, 0},
		Tables:    []TableType{{ElemType: FuncRef, Limits: Limits{Min: 2}}},
		Globals: []Global{
			{Type: GlobalType{Type: I32, Mutable: true}, Init: []Instruction{ConstI32(-5)}},
		},
		Exports:  []Export{{Name: "call", Kind: ExternalFunction, Index: 2}},
		Start:    &start,
		Elements: []Element{{Offset: []Instruction{ConstI32(0)}, Funcs: []uint32{1, 2}}},
		Code: []Body{
			{
				Locals: []Local{{Count: 2, Type: I64}},
				Code: []Instruction{
					Indexed(LocalGet, 0),
					{Op: I64Load, Imm: 3, Offset: 8},
					ConstI64(-1 << 40),
					Op(I64Add),
					Indexed(LocalSet, 1),
					BlockOf(Block, BlockType(I64)),
					Indexed(LocalGet, 1),
					Indexed(LocalGet, 0),
					{Op: BrTable, Imm: 1, Labels: []uint32{0, 1}},
					Op(End),
					Op(End),
				},
			},
			{Code: []Instruction{Indexed(Call, 0), Op(End)}},
		},
		Data:    []Data{{Offset: []Instruction{ConstI32(16)}, Init: []byte("quartz")}},
		Customs: []Custom{{Name: "name", Data: []byte{1, 2, 3}}},
	}
}

func TestEncodeDecode_PreservesModule(t *testing.T) {
	module := exampleModule()
	encoded := Encode(module)

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("failed to decode encoded module: %v", err)
	}
	if !reflect.DeepEqual(module, decoded) {
		t.Errorf("decoded module differs\nwant %+v\ngot  %+v", module, decoded)
	}
	if err := Validate(decoded); err != nil {
		t.Errorf("decoded module is invalid: %v", err)
	}
	if !bytes.Equal(encoded, Encode(decoded)) {
		t.Errorf("encoding is not canonical")
	}
}

func TestDecode_RejectsMalformedInput(t *testing.T) {
	valid := Encode(exampleModule())
	withSection := func(id byte, content ...byte) []byte {
		res := append([]byte{}, valid[:8]...)
		res = append(res, id, byte(len(content)))
		return append(res, content...)
	}

	tests := map[string][]byte{
		"empty":             {},
		"bad magic":         {0x00, 0x61, 0x73, 0x6e, 1, 0, 0, 0},
		"bad version":       {0x00, 0x61, 0x73, 0x6d, 2, 0, 0, 0},
		"truncated":         valid[:len(valid)-3],
		"unknown section":   withSection(12),
		"truncated header":  append(withSection(1, 0), 0),
		"trailing bytes":    withSection(3, 0, 0),
		"missing body":      withSection(3, 1, 0),
		"bad value type":    withSection(1, 1, 0x60, 1, 0x70, 0),
		"bad type form":     withSection(1, 1, 0x61, 0, 0),
		"multiple results":  withSection(1, 1, 0x60, 0, 2, 0x7f, 0x7f),
		"invalid name":      withSection(0, 2, 0xff, 0xfe),
		"unknown opcode":    withSection(10, 1, 2, 0, 0xfc),
		"unterminated body": withSection(10, 1, 1, 0),
		"bad reserved byte": withSection(10, 1, 3, 0, 0x3f, 1),
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(input)
			if !errors.Is(err, ErrMalformedModule) {
				t.Errorf("expected malformed module error, got %v", err)
			}
		})
	}
}

func TestDecode_SectionOrder(t *testing.T) {
	header := Encode(&Module{})
	module := append(append([]byte{}, header...), 3, 1, 0, 1, 1, 0)
	if _, err := Decode(module); !errors.Is(err, ErrMalformedModule) {
		t.Errorf("expected out of order sections to be rejected, got %v", err)
	}

	// Custom sections may appear anywhere.
	module = append(append([]byte{}, header...), 1, 1, 0, 0, 2, 1, 'x', 3, 1, 0)
	if _, err := Decode(module); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLEB128_Unsigned(t *testing.T) {
	for _, value := range []uint32{0, 1, 127, 128, 624485, math.MaxUint32} {
		r := &reader{data: appendU32(nil, value)}
		got, err := r.u32()
		if err != nil || got != value || !r.done() {
			t.Errorf("failed to decode %d, got %d, %v", value, got, err)
		}
	}
}

func TestLEB128_Signed(t *testing.T) {
	for _, value := range []int64{0, 1, -1, 63, -64, 64, -65, math.MinInt32, math.MaxInt32, math.MinInt64, math.MaxInt64} {
		r := &reader{data: appendS64(nil, value)}
		got, err := r.s64()
		if err != nil || got != value || !r.done() {
			t.Errorf("failed to decode %d, got %d, %v", value, got, err)
		}
	}
	for _, value := range []int32{0, -1, math.MinInt32, math.MaxInt32} {
		r := &reader{data: appendS64(nil, int64(value))}
		got, err := r.s32()
		if err != nil || got != value {
			t.Errorf("failed to decode %d, got %d, %v", value, got, err)
		}
	}
}

func TestLEB128_RejectsInvalidEncodings(t *testing.T) {
	tests := map[string]struct {
		data []byte
		read func(*reader) error
	}{
		"unsigned too long": {
			data: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00},
			read: func(r *reader) error { _, err := r.u32(); return err },
		},
		"unsigned unused bits": {
			data: []byte{0xff, 0xff, 0xff, 0xff, 0x1f},
			read: func(r *reader) error { _, err := r.u32(); return err },
		},
		"signed unused bits": {
			data: []byte{0xff, 0xff, 0xff, 0xff, 0x4f},
			read: func(r *reader) error { _, err := r.s32(); return err },
		},
		"truncated": {
			data: []byte{0x80},
			read: func(r *reader) error { _, err := r.u32(); return err },
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if err := test.read(&reader{data: test.data}); !errors.Is(err, ErrMalformedModule) {
				t.Errorf("expected malformed encoding error, got %v", err)
			}
		})
	}
}

func TestOpcode_Properties(t *testing.T) {
	tests := map[Opcode]struct {
		pops, pushes int
		float        bool
	}{
		I32Add:     {2, 1, false},
		I32Eqz:     {1, 1, false},
		Select:     {3, 1, false},
		I64Store:   {2, 0, false},
		F32Const:   {0, 1, true},
		F64Load:    {1, 1, true},
		0xa8:       {1, 1, true},
		0xac:       {1, 1, false},
		MemoryGrow: {1, 1, false},
	}

	for op, test := range tests {
		pops, pushes := op.StackEffect()
		if pops != test.pops || pushes != test.pushes {
			t.Errorf("unexpected stack effect of %v: %d/%d", op, pops, pushes)
		}
		if op.IsFloat() != test.float {
			t.Errorf("unexpected float classification of %v", op)
		}
	}
	if _, found := Opcode(0xfc).info(); found {
		t.Errorf("non-MVP prefix opcode must be unknown")
	}
}
