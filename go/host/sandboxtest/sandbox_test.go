// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sandboxtest

import (
	"testing"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/host"
	"github.com/Fantom-foundation/Quartz/go/prepare"
)

func TestLinearMemory_AccessIsBounded(t *testing.T) {
	memory, err := NewLinearMemory(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := memory.Set(PageSize-2, []byte{1, 2}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	buf := make([]byte, 2)
	if err := memory.Get(PageSize-2, buf); err != nil || buf[0] != 1 || buf[1] != 2 {
		t.Errorf("unexpected content %v, error %v", buf, err)
	}
	if err := memory.Set(PageSize-1, []byte{1, 2}); err == nil {
		t.Errorf("expected out of bounds write to fail")
	}
	if err := memory.Get(0xffffffff, buf); err == nil {
		t.Errorf("expected out of bounds read to fail")
	}
}

func TestLinearMemory_GrowRespectsMaximum(t *testing.T) {
	memory, err := NewLinearMemory(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if previous, ok := memory.Grow(1); !ok || previous != 1 {
		t.Errorf("unexpected grow result %d, %t", previous, ok)
	}
	if memory.Pages() != 2 {
		t.Errorf("unexpected size %d", memory.Pages())
	}
	if _, ok := memory.Grow(1); ok {
		t.Errorf("memory grew beyond its maximum")
	}
	if err := memory.Set(2*PageSize-1, []byte{1}); err != nil {
		t.Errorf("grown memory is not accessible: %v", err)
	}
}

func TestLinearMemory_InvalidLimitsAreRejected(t *testing.T) {
	if _, err := NewLinearMemory(2, 1); err == nil {
		t.Errorf("expected error for initial above maximum")
	}
	if _, err := NewLinearMemory(0, 1<<17); err == nil {
		t.Errorf("expected error for maximum above address space")
	}
}

func TestContractCode_PassesPreparation(t *testing.T) {
	schedule := contracts.DefaultSchedule()
	module, err := prepare.Prepare(ContractCode("counter"), &schedule, host.Environment{})
	if err != nil {
		t.Fatalf("failed to prepare contract: %v", err)
	}
	if module.Initial != 1 || module.Maximum != 1 {
		t.Errorf("unexpected memory limits %d..%d", module.Initial, module.Maximum)
	}
}

func TestSandbox_RunsProgramNamedByCode(t *testing.T) {
	var ran []string
	sandbox, err := host.NewSandbox(Name, Programs{
		"first": {
			prepare.EntryCall: func(*Instance) error {
				ran = append(ran, "first")
				return nil
			},
		},
		"second": {
			prepare.EntryCall: func(instance *Instance) error {
				ran = append(ran, "second")
				buf := make([]byte, len("second"))
				if err := instance.Memory.Get(0, buf); err != nil || string(buf) != "second" {
					t.Errorf("data segment was not loaded, got %q, error %v", buf, err)
				}
				return nil
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to create sandbox: %v", err)
	}

	schedule := contracts.DefaultSchedule()
	module, err := prepare.Prepare(ContractCode("second"), &schedule, host.Environment{})
	if err != nil {
		t.Fatalf("failed to prepare contract: %v", err)
	}
	memory, err := sandbox.NewMemory(module.Initial, module.Maximum)
	if err != nil {
		t.Fatalf("failed to allocate memory: %v", err)
	}
	if err := sandbox.Invoke(module.Code, prepare.EntryCall, &host.Imports{Memory: memory}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ran) != 1 || ran[0] != "second" {
		t.Errorf("unexpected programs run: %v", ran)
	}

	if err := sandbox.Invoke(module.Code, prepare.EntryDeploy, &host.Imports{Memory: memory}); err == nil {
		t.Errorf("expected error for missing entrypoint")
	}
}

func TestSandbox_RejectsInvalidConfiguration(t *testing.T) {
	if _, err := host.NewSandbox(Name, "not programs"); err == nil {
		t.Errorf("expected error, got nil")
	}
}

func TestInstance_HelpersUseHostFunctions(t *testing.T) {
	memory, err := NewLinearMemory(1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scratch := []byte("scratch")
	var returned []byte
	instance := &Instance{
		Memory: memory,
		Imports: &host.Imports{
			Memory: memory,
			Functions: map[string]host.HostFunction{
				"ext_scratch_size": func([]host.Value) ([]host.Value, error) {
					return []host.Value{host.I32(uint32(len(scratch)))}, nil
				},
				"ext_scratch_read": func(args []host.Value) ([]host.Value, error) {
					return nil, memory.Set(args[0].U32(), scratch[args[1].U32():args[1].U32()+args[2].U32()])
				},
				"ext_return": func(args []host.Value) ([]host.Value, error) {
					returned = make([]byte, args[1].U32())
					return nil, memory.Get(args[0].U32(), returned)
				},
			},
		},
	}

	content, err := instance.Scratch(100)
	if err != nil || string(content) != "scratch" {
		t.Errorf("unexpected scratch content %q, error %v", content, err)
	}
	if err := instance.Return(200, []byte("output")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(returned) != "output" {
		t.Errorf("unexpected returned data %q", returned)
	}
	if _, err := instance.Call("ext_unknown"); err == nil {
		t.Errorf("expected error for unknown host function")
	}
}
