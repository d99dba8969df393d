// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package prepare

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/wasm"
)

// printlnFunction is only available if the schedule enables debug output.
const printlnFunction = "ext_println"

// gasFunction is the host function called by injected metering code. It
// must not be imported by the contract itself.
const gasFunction = "gas"

// scanExports ensures that exactly the call and deploy entry points are
// exported, both being module-defined functions of type () -> ().
func scanExports(module *wasm.Module) error {
	var foundCall, foundDeploy bool
	for _, export := range module.Exports {
		switch export.Name {
		case EntryCall:
			foundCall = true
		case EntryDeploy:
			foundDeploy = true
		default:
			return fmt.Errorf("%w: unknown export %q, expecting only %s and %s", ErrInvalidExports, export.Name, EntryDeploy, EntryCall)
		}
		if export.Kind != wasm.ExternalFunction {
			return fmt.Errorf("%w: %s is not a function", ErrInvalidExports, export.Name)
		}
		if export.Index < module.ImportedFunctionCount() {
			return fmt.Errorf("%w: %s refers to an imported function", ErrInvalidExports, export.Name)
		}
		signature, _ := module.FunctionType(export.Index)
		if len(signature.Params) != 0 || len(signature.Results) != 0 {
			return fmt.Errorf("%w: %s has signature %v", ErrInvalidExports, export.Name, signature)
		}
	}
	if !foundDeploy {
		return fmt.Errorf("%w: %s function is not exported", ErrInvalidExports, EntryDeploy)
	}
	if !foundCall {
		return fmt.Errorf("%w: %s function is not exported", ErrInvalidExports, EntryCall)
	}
	return nil
}

func ensureNoInternalMemory(module *wasm.Module) error {
	if len(module.Memories) > 0 {
		return ErrInternalMemory
	}
	return nil
}

func ensureTableSizeLimit(module *wasm.Module, limit uint32) error {
	for _, table := range module.Tables {
		if table.Limits.Min > limit {
			return fmt.Errorf("%w: %d > %d", ErrTableTooLarge, table.Limits.Min, limit)
		}
	}
	return nil
}

// ensureNoFloatingTypes rejects floating point values in signatures,
// globals, locals and instructions.
func ensureNoFloatingTypes(module *wasm.Module) error {
	for _, signature := range module.Types {
		for _, t := range signature.Params {
			if t.IsFloat() {
				return fmt.Errorf("%w: function type %v", ErrFloatingPoint, signature)
			}
		}
		for _, t := range signature.Results {
			if t.IsFloat() {
				return fmt.Errorf("%w: function type %v", ErrFloatingPoint, signature)
			}
		}
	}
	for _, imp := range module.Imports {
		if imp.Kind == wasm.ExternalGlobal && imp.Global.Type.IsFloat() {
			return fmt.Errorf("%w: imported global %s", ErrFloatingPoint, imp.Name)
		}
	}
	for i, global := range module.Globals {
		if global.Type.Type.IsFloat() {
			return fmt.Errorf("%w: global %d", ErrFloatingPoint, i)
		}
	}
	for i, body := range module.Code {
		for _, local := range body.Locals {
			if local.Type.IsFloat() {
				return fmt.Errorf("%w: local of function %d", ErrFloatingPoint, i)
			}
		}
		for _, ins := range body.Code {
			if ins.Op.IsFloat() {
				return fmt.Errorf("%w: %v in function %d", ErrFloatingPoint, ins.Op, i)
			}
		}
	}
	return nil
}

// scanImports checks all imports against the host environment and returns
// the limits of the imported memory. Modules without a memory import get
// zero limits.
func scanImports(module *wasm.Module, schedule *contracts.Schedule, env Environment) (wasm.Limits, error) {
	var memory *wasm.Limits
	for _, imp := range module.Imports {
		if imp.Module != HostModule {
			return wasm.Limits{}, fmt.Errorf("%w: %s.%s is not from the %q namespace", ErrInvalidImports, imp.Module, imp.Name, HostModule)
		}
		switch imp.Kind {
		case wasm.ExternalMemory:
			if imp.Name != "memory" {
				return wasm.Limits{}, fmt.Errorf("%w: memory must be imported as \"memory\", got %q", ErrInvalidMemory, imp.Name)
			}
			if memory != nil {
				return wasm.Limits{}, fmt.Errorf("%w: multiple memory imports", ErrInvalidMemory)
			}
			limits := imp.Memory
			if !limits.HasMax {
				return wasm.Limits{}, fmt.Errorf("%w: maximum number of pages must be declared", ErrInvalidMemory)
			}
			if limits.Min > limits.Max {
				return wasm.Limits{}, fmt.Errorf("%w: initial pages %d exceed maximum %d", ErrInvalidMemory, limits.Min, limits.Max)
			}
			if limits.Max > schedule.MaxMemoryPages {
				return wasm.Limits{}, fmt.Errorf("%w: maximum pages %d exceed limit %d", ErrInvalidMemory, limits.Max, schedule.MaxMemoryPages)
			}
			memory = &limits
		case wasm.ExternalFunction:
			if imp.Name == printlnFunction && !schedule.EnablePrintln {
				return wasm.Limits{}, fmt.Errorf("%w: %s requires debug features", ErrInvalidImports, printlnFunction)
			}
			signature := module.Types[imp.Func]
			if imp.Name == gasFunction || !env.CanSatisfy(imp.Name, signature) {
				return wasm.Limits{}, fmt.Errorf("%w: unknown function %s with signature %v", ErrInvalidImports, imp.Name, signature)
			}
		case wasm.ExternalTable:
			return wasm.Limits{}, fmt.Errorf("%w: tables cannot be imported", ErrInvalidImports)
		case wasm.ExternalGlobal:
			return wasm.Limits{}, fmt.Errorf("%w: globals cannot be imported", ErrInvalidImports)
		}
	}
	if memory == nil {
		return wasm.Limits{}, nil
	}
	return *memory, nil
}
