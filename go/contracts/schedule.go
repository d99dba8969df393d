// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package contracts

import (
	"fmt"
	"math"
)

// Schedule is the versioned cost and limit table applied to contract code.
// Prepared code records the version it was instrumented with; raising the
// version causes stored code to be re-instrumented lazily on next load.
type Schedule struct {
	// Version of the schedule. Must strictly increase on every update.
	Version uint32

	PutCodePerByteCost    Gas
	GrowMemCost           Gas
	RegularOpCost         Gas
	ReturnDataPerByteCost Gas
	EventDataPerByteCost  Gas
	EventPerTopicCost     Gas
	EventBaseCost         Gas
	CallBaseCost          Gas
	InstantiateBaseCost   Gas
	DispatchBaseCost      Gas
	SandboxDataReadCost   Gas
	SandboxDataWriteCost  Gas

	// Transfer fees, charged in gas depending on the kind of transfer.
	TransferCost      Gas
	AccountCreateCost Gas
	InstantiateCost   Gas

	MaxEventTopics uint32
	MaxStackHeight uint32
	MaxMemoryPages uint32
	MaxTableSize   uint32

	// EnablePrintln admits modules importing ext_println. Only meant for
	// development networks.
	EnablePrintln bool

	// MaxSubjectLen bounds the subject accepted by ext_random.
	MaxSubjectLen uint32
}

// maxWasmPages is the number of 64KiB pages addressable by a 32-bit memory.
const maxWasmPages = 1 << 16

// DefaultSchedule returns the schedule used when none has been configured.
func DefaultSchedule() Schedule {
	return Schedule{
		Version:               0,
		PutCodePerByteCost:    1,
		GrowMemCost:           1,
		RegularOpCost:         1,
		ReturnDataPerByteCost: 1,
		EventDataPerByteCost:  1,
		EventPerTopicCost:     1,
		EventBaseCost:         1,
		CallBaseCost:          135,
		InstantiateBaseCost:   175,
		DispatchBaseCost:      135,
		SandboxDataReadCost:   1,
		SandboxDataWriteCost:  1,
		TransferCost:          100,
		AccountCreateCost:     100,
		InstantiateCost:       200,
		MaxEventTopics:        4,
		MaxStackHeight:        64 * 1024,
		MaxMemoryPages:        16,
		MaxTableSize:          16 * 1024,
		EnablePrintln:         false,
		MaxSubjectLen:         32,
	}
}

// Validate checks that the schedule describes limits that can be enforced.
func (s *Schedule) Validate() error {
	if s.MaxMemoryPages > maxWasmPages {
		return fmt.Errorf("%w: max memory pages %d exceeds %d", ErrInvalidConfig, s.MaxMemoryPages, maxWasmPages)
	}
	if s.MaxStackHeight == 0 || s.MaxStackHeight > math.MaxInt32 {
		return fmt.Errorf("%w: max stack height %d out of range", ErrInvalidConfig, s.MaxStackHeight)
	}
	// Instrumented code charges these costs through i32 constants.
	if s.RegularOpCost > math.MaxInt32 {
		return fmt.Errorf("%w: regular op cost %d exceeds %d", ErrInvalidConfig, s.RegularOpCost, math.MaxInt32)
	}
	if s.GrowMemCost > math.MaxInt32 {
		return fmt.Errorf("%w: grow mem cost %d exceeds %d", ErrInvalidConfig, s.GrowMemCost, math.MaxInt32)
	}
	// Host functions copy guest-sized buffers only after charging for them.
	if s.SandboxDataReadCost == 0 || s.SandboxDataWriteCost == 0 {
		return fmt.Errorf("%w: sandbox data access must not be free", ErrInvalidConfig)
	}
	return nil
}
