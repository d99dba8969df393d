// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package sandboxtest provides a scripted Sandbox running contract logic
// written in Go. Contracts built with ContractCode pass preparation and
// carry the name of the program implementing them in a data segment.
package sandboxtest

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/host"
	"github.com/Fantom-foundation/Quartz/go/prepare"
	"github.com/Fantom-foundation/Quartz/go/wasm"
)

// Name is the name the scripted sandbox is registered under.
const Name = "scripted"

func init() {
	host.MustRegisterSandbox(Name, func(config any) (host.Sandbox, error) {
		programs, ok := config.(Programs)
		if !ok {
			return nil, fmt.Errorf("invalid configuration: expected Programs, got %T", config)
		}
		return New(programs), nil
	})
}

// Program is the logic of a single entrypoint.
type Program func(instance *Instance) error

// Contract maps entrypoints to programs.
type Contract map[string]Program

// Programs maps program names to contracts.
type Programs map[string]Contract

// Sandbox runs programs instead of interpreting code.
type Sandbox struct {
	programs Programs
}

func New(programs Programs) *Sandbox {
	return &Sandbox{programs: programs}
}

func (s *Sandbox) NewMemory(initial, maximum uint32) (host.Memory, error) {
	return NewLinearMemory(initial, maximum)
}

func (s *Sandbox) Invoke(code []byte, entrypoint string, imports *host.Imports) error {
	module, err := wasm.Decode(code)
	if err != nil {
		return err
	}
	memory, ok := imports.Memory.(*LinearMemory)
	if !ok {
		return fmt.Errorf("unsupported memory of type %T", imports.Memory)
	}
	if len(module.Data) == 0 {
		return fmt.Errorf("module does not name a program")
	}
	for _, segment := range module.Data {
		if err := memory.Set(uint32(segment.Offset[0].I32()), segment.Init); err != nil {
			return fmt.Errorf("failed to initialize memory: %w", err)
		}
	}

	name := string(module.Data[0].Init)
	program, found := s.programs[name][entrypoint]
	if !found {
		return fmt.Errorf("program %q has no entrypoint %q", name, entrypoint)
	}
	return program(&Instance{Memory: memory, Imports: imports})
}

// ContractCode builds a minimal contract whose entrypoints are implemented
// by the named program.
func ContractCode(program string) []byte {
	body := []wasm.Instruction{wasm.Op(wasm.End)}
	return wasm.Encode(&wasm.Module{
		Types: []wasm.FuncType{{}},
		Imports: []wasm.Import{{
			Module: prepare.HostModule,
			Name:   "memory",
			Kind:   wasm.ExternalMemory,
			Memory: wasm.Limits{Min: 1, Max: 1, HasMax: true},
		}},
		Functions: []uint32{0, 0},
		Exports: []wasm.Export{
			{Name: prepare.EntryDeploy, Kind: wasm.ExternalFunction, Index: 0},
			{Name: prepare.EntryCall, Kind: wasm.ExternalFunction, Index: 1},
		},
		Code: []wasm.Body{{Code: body}, {Code: body}},
		Data: []wasm.Data{{
			Offset: []wasm.Instruction{wasm.ConstI32(0)},
			Init:   []byte(program),
		}},
	})
}
