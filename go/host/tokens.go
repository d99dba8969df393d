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
	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
)

// explicitToken charges a fixed amount, as requested by injected metering
// code.
type explicitToken contracts.Gas

func (t explicitToken) Calculate(*contracts.Schedule) contracts.Gas {
	return contracts.Gas(t)
}

// readMemoryToken is the cost of copying bytes out of the sandbox.
type readMemoryToken uint32

func (t readMemoryToken) Calculate(s *contracts.Schedule) contracts.Gas {
	return gas.SaturatingMul(s.SandboxDataReadCost, contracts.Gas(t))
}

// writeMemoryToken is the cost of copying bytes into the sandbox.
type writeMemoryToken uint32

func (t writeMemoryToken) Calculate(s *contracts.Schedule) contracts.Gas {
	return gas.SaturatingMul(s.SandboxDataWriteCost, contracts.Gas(t))
}

type returnDataToken uint32

func (t returnDataToken) Calculate(s *contracts.Schedule) contracts.Gas {
	return gas.SaturatingMul(s.ReturnDataPerByteCost, contracts.Gas(t))
}

type depositEventToken struct {
	topics  uint32
	dataLen uint32
}

func (t depositEventToken) Calculate(s *contracts.Schedule) contracts.Gas {
	return gas.SaturatingAdd(
		gas.SaturatingAdd(s.EventBaseCost, gas.SaturatingMul(s.EventPerTopicCost, contracts.Gas(t.topics))),
		gas.SaturatingMul(s.EventDataPerByteCost, contracts.Gas(t.dataLen)),
	)
}

// dispatchToken charges for a dispatched call of the given weight.
type dispatchToken contracts.Gas

func (t dispatchToken) Calculate(s *contracts.Schedule) contracts.Gas {
	return gas.SaturatingAdd(s.DispatchBaseCost, contracts.Gas(t))
}
