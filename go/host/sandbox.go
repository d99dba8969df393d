// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package host

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/wasm"
)

//go:generate mockgen -source sandbox.go -destination sandbox_mock.go -package host

// Sandbox is an external WebAssembly engine executing prepared modules.
// It only ever sees code that passed preparation, and reaches the rest of
// the system solely through the host functions handed to Invoke.
type Sandbox interface {
	// NewMemory allocates a linear memory of initial pages that may grow up
	// to maximum pages.
	NewMemory(initial, maximum uint32) (Memory, error)
	// Invoke instantiates code, binding its imports to the given memory and
	// host functions, and runs the exported function entrypoint. An error
	// returned by a host function aborts the execution and is reported
	// back, possibly wrapped.
	Invoke(code []byte, entrypoint string, imports *Imports) error
}

// Memory is a linear memory shared between a sandbox and the host.
type Memory interface {
	// Get fills buf with the bytes starting at ptr.
	Get(ptr uint32, buf []byte) error
	// Set copies data into the memory starting at ptr.
	Set(ptr uint32, data []byte) error
}

// Value is an integer passed across the sandbox boundary.
type Value struct {
	Type wasm.ValueType
	Bits uint64
}

func I32(v uint32) Value {
	return Value{Type: wasm.I32, Bits: uint64(v)}
}

func I64(v uint64) Value {
	return Value{Type: wasm.I64, Bits: v}
}

func (v Value) U32() uint32 {
	return uint32(v.Bits)
}

func (v Value) U64() uint64 {
	return v.Bits
}

func (v Value) String() string {
	return fmt.Sprintf("%v(%d)", v.Type, v.Bits)
}

// HostFunction is a function the host exports to sandboxed code.
type HostFunction func(args []Value) ([]Value, error)

// Imports are the host resources a module is instantiated with. Functions
// are keyed by their name in the host namespace.
type Imports struct {
	Memory    Memory
	Functions map[string]HostFunction
}
