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

	"github.com/Fantom-foundation/Quartz/go/codecache"
	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/exec"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/prepare"
)

// WasmVm runs prepared modules in a sandbox, exposing the host function
// table to them.
type WasmVm struct {
	schedule *contracts.Schedule
	sandbox  Sandbox
}

func NewWasmVm(schedule *contracts.Schedule, sandbox Sandbox) *WasmVm {
	return &WasmVm{schedule: schedule, sandbox: sandbox}
}

func (v *WasmVm) Execute(executable *exec.Executable, ext exec.Ext, input []byte, meter *gas.Meter) ([]byte, error) {
	module := executable.Module
	memory, err := v.sandbox.NewMemory(module.Initial, module.Maximum)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate memory of %d pages: %w", module.Initial, err)
	}
	runtime := newRuntime(ext, input, v.schedule, memory, meter)
	return runtime.outcome(v.sandbox.Invoke(module.Code, executable.Entrypoint, runtime.imports()))
}

// WasmLoader loads executables through the code cache.
type WasmLoader struct {
	cache    *codecache.Cache
	schedule *contracts.Schedule
}

func NewWasmLoader(cache *codecache.Cache, schedule *contracts.Schedule) *WasmLoader {
	return &WasmLoader{cache: cache, schedule: schedule}
}

func (l *WasmLoader) LoadInit(codeHash contracts.Hash) (*exec.Executable, error) {
	return l.load(codeHash, prepare.EntryDeploy)
}

func (l *WasmLoader) LoadMain(codeHash contracts.Hash) (*exec.Executable, error) {
	return l.load(codeHash, prepare.EntryCall)
}

func (l *WasmLoader) load(codeHash contracts.Hash, entrypoint string) (*exec.Executable, error) {
	module, err := l.cache.Load(codeHash, l.schedule)
	if err != nil {
		return nil, err
	}
	return &exec.Executable{Entrypoint: entrypoint, Module: module}, nil
}
