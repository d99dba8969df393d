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
	"encoding/binary"
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/exec"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/wasm"
	"github.com/ethereum/go-ethereum/log"
)

const (
	errReturn             = contracts.ConstError("contract returned")
	errMemoryAccess       = contracts.ConstError("memory access out of bounds")
	errInvalidArguments   = contracts.ConstError("invalid host function arguments")
	errInvalidEncoding    = contracts.ConstError("invalid value encoding")
	errScratchOutOfBounds = contracts.ConstError("scratch buffer access out of bounds")
	errTooManyTopics      = contracts.ConstError("too many event topics")
	errDuplicateTopics    = contracts.ConstError("duplicate event topics")
	errSubjectTooLong     = contracts.ConstError("random subject too long")
	errDispatchRejected   = contracts.ConstError("dispatch call rejected")
)

type specialTrap int

const (
	noTrap specialTrap = iota
	returnTrap
	outOfGasTrap
)

// Runtime is the host side of a single contract execution.
type Runtime struct {
	ext      exec.Ext
	schedule *contracts.Schedule
	memory   Memory
	meter    *gas.Meter

	// scratch holds the input of the execution until the contract replaces
	// it, and afterwards the results of host functions.
	scratch []byte

	special    specialTrap
	returnData []byte
}

func newRuntime(ext exec.Ext, input []byte, schedule *contracts.Schedule, memory Memory, meter *gas.Meter) *Runtime {
	return &Runtime{
		ext:      ext,
		schedule: schedule,
		memory:   memory,
		meter:    meter,
		scratch:  input,
	}
}

// imports binds the host function table to this runtime.
func (r *Runtime) imports() *Imports {
	functions := make(map[string]HostFunction, len(hostFunctions))
	for name, f := range hostFunctions {
		name, f := name, f
		functions[name] = func(args []Value) ([]Value, error) {
			if !f.accepts(args) {
				return nil, fmt.Errorf("%w: %s called with %v", errInvalidArguments, name, args)
			}
			return f.handler(r, args)
		}
	}
	return &Imports{Memory: r.memory, Functions: functions}
}

// outcome converts the result of running the sandbox into the result of
// the execution.
func (r *Runtime) outcome(err error) ([]byte, error) {
	switch r.special {
	case returnTrap:
		return r.returnData, nil
	case outOfGasTrap:
		return nil, contracts.ErrOutOfGas
	}
	if err != nil {
		log.Debug("Contract trapped", "address", r.ext.Address(), "err", err)
		return nil, contracts.ErrContractTrapped
	}
	return nil, nil
}

// charge consumes gas for the given token. Exhausting the meter turns the
// execution into an out of gas trap.
func (r *Runtime) charge(token gas.Token[*contracts.Schedule]) error {
	if err := gas.Charge(r.meter, r.schedule, token); err != nil {
		r.special = outOfGasTrap
		return err
	}
	return nil
}

func (r *Runtime) readMemory(ptr, length uint32) ([]byte, error) {
	if err := r.charge(readMemoryToken(length)); err != nil {
		return nil, err
	}
	// No memory of the sandbox can exceed the schedule's page limit.
	if uint64(ptr)+uint64(length) > uint64(r.schedule.MaxMemoryPages)*wasm.PageSize {
		return nil, fmt.Errorf("%w: %d bytes at %d", errMemoryAccess, length, ptr)
	}
	buf := make([]byte, length)
	if err := r.memory.Get(ptr, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", errMemoryAccess, err)
	}
	return buf, nil
}

func (r *Runtime) readMemoryInto(ptr uint32, buf []byte) error {
	if err := r.charge(readMemoryToken(len(buf))); err != nil {
		return err
	}
	if err := r.memory.Get(ptr, buf); err != nil {
		return fmt.Errorf("%w: %w", errMemoryAccess, err)
	}
	return nil
}

func (r *Runtime) writeMemory(ptr uint32, data []byte) error {
	if err := r.charge(writeMemoryToken(len(data))); err != nil {
		return err
	}
	if err := r.memory.Set(ptr, data); err != nil {
		return fmt.Errorf("%w: %w", errMemoryAccess, err)
	}
	return nil
}

func (r *Runtime) readAccountId(ptr, length uint32) (contracts.AccountId, error) {
	var res contracts.AccountId
	if length != uint32(len(res)) {
		return res, fmt.Errorf("%w: account id of %d bytes", errInvalidEncoding, length)
	}
	return res, r.readMemoryInto(ptr, res[:])
}

func (r *Runtime) readHash(ptr, length uint32) (contracts.Hash, error) {
	var res contracts.Hash
	if length != uint32(len(res)) {
		return res, fmt.Errorf("%w: hash of %d bytes", errInvalidEncoding, length)
	}
	return res, r.readMemoryInto(ptr, res[:])
}

func (r *Runtime) readBalance(ptr, length uint32) (contracts.Balance, error) {
	var raw contracts.Balance
	if length != uint32(len(raw)) {
		return contracts.Balance{}, fmt.Errorf("%w: balance of %d bytes", errInvalidEncoding, length)
	}
	if err := r.readMemoryInto(ptr, raw[:]); err != nil {
		return contracts.Balance{}, err
	}
	return contracts.DecodeBalanceLE(raw[:])
}

func (r *Runtime) setScratch(data []byte) {
	r.scratch = data
}

func (r *Runtime) setScratchU64(v uint64) {
	r.scratch = binary.LittleEndian.AppendUint64(nil, v)
}
