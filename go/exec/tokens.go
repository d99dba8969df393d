// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package exec

import "github.com/Fantom-foundation/Quartz/go/contracts"

type baseToken int

const (
	callToken baseToken = iota
	instantiateToken
)

func (t baseToken) Calculate(schedule *contracts.Schedule) contracts.Gas {
	switch t {
	case callToken:
		return schedule.CallBaseCost
	case instantiateToken:
		return schedule.InstantiateBaseCost
	}
	return 0
}

// transferToken is the fee of a value transfer, depending on its kind.
type transferToken TransferKind

func (t transferToken) Calculate(schedule *contracts.Schedule) contracts.Gas {
	switch TransferKind(t) {
	case TransferKindTransfer:
		return schedule.TransferCost
	case TransferKindAccountCreate:
		return schedule.AccountCreateCost
	case TransferKindInstantiate:
		return schedule.InstantiateCost
	}
	return 0
}
