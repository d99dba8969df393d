// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package prepare implements the admission pipeline turning uploaded
// WebAssembly code into an instrumented module ready for execution.
package prepare

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/wasm"
)

const (
	ErrInvalidExports  = contracts.ConstError("invalid exports")
	ErrInternalMemory  = contracts.ConstError("module declares internal memory")
	ErrTableTooLarge   = contracts.ConstError("table exceeds maximum size")
	ErrFloatingPoint   = contracts.ConstError("floating point types are not allowed")
	ErrInvalidImports  = contracts.ConstError("invalid imports")
	ErrInvalidMemory   = contracts.ConstError("invalid memory import")
	ErrInstrumentation = contracts.ConstError("instrumentation failed")
)

// HostModule is the only namespace modules may import from.
const HostModule = "env"

// Entry points every contract has to export.
const (
	EntryCall   = "call"
	EntryDeploy = "deploy"
)

// Environment describes the host functions available to contracts.
type Environment interface {
	// CanSatisfy reports whether the host provides a function with the given
	// name and exactly the given signature.
	CanSatisfy(name string, signature wasm.FuncType) bool
}

// Prepare validates the given code and instruments it for gas metering and
// stack height limiting according to the schedule. Any failure rejects the
// module as a whole.
func Prepare(code []byte, schedule *contracts.Schedule, env Environment) (*contracts.PrefabModule, error) {
	module, err := wasm.Decode(code)
	if err != nil {
		return nil, err
	}
	if err := wasm.Validate(module); err != nil {
		return nil, err
	}

	if err := scanExports(module); err != nil {
		return nil, err
	}
	if err := ensureNoInternalMemory(module); err != nil {
		return nil, err
	}
	if err := ensureTableSizeLimit(module, schedule.MaxTableSize); err != nil {
		return nil, err
	}
	if err := ensureNoFloatingTypes(module); err != nil {
		return nil, err
	}
	memory, err := scanImports(module, schedule, env)
	if err != nil {
		return nil, err
	}

	if err := injectGasMetering(module, schedule); err != nil {
		return nil, err
	}
	if err := injectStackHeightLimiter(module, schedule.MaxStackHeight); err != nil {
		return nil, err
	}
	module.Customs = nil
	if err := wasm.Validate(module); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstrumentation, err)
	}

	return &contracts.PrefabModule{
		ScheduleVersion: schedule.Version,
		Initial:         memory.Min,
		Maximum:         memory.Max,
		Code:            wasm.Encode(module),
	}, nil
}
