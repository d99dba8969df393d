// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gas

import (
	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/common/math"
)

// Token is a chargeable unit of work. The amount it costs is computed from
// metadata M, usually the schedule in force.
type Token[M any] interface {
	Calculate(metadata M) contracts.Gas
}

// Meter tracks the gas left for an execution frame. A meter never goes
// below zero: a charge exceeding the remaining gas exhausts it and fails.
type Meter struct {
	limit    contracts.Gas
	gasLeft  contracts.Gas
	gasPrice contracts.Balance
}

// NewMeter creates a meter with the given limit, all of which is left.
func NewMeter(limit contracts.Gas, gasPrice contracts.Balance) *Meter {
	return &Meter{
		limit:    limit,
		gasLeft:  limit,
		gasPrice: gasPrice,
	}
}

// Charge consumes the amount of gas token costs under metadata. If the meter
// has less gas left, it is drained and ErrOutOfGas is returned.
func Charge[M any](meter *Meter, metadata M, token Token[M]) error {
	return meter.consume(token.Calculate(metadata))
}

func (m *Meter) consume(amount contracts.Gas) error {
	if amount > m.gasLeft {
		m.gasLeft = 0
		return contracts.ErrOutOfGas
	}
	m.gasLeft -= amount
	return nil
}

// WithNested runs f with a sub-meter holding amount gas taken from this
// meter. Whatever f leaves in the sub-meter is returned afterwards. If this
// meter holds less than amount, f is called with nil and nothing is
// reserved.
func (m *Meter) WithNested(amount contracts.Gas, f func(nested *Meter)) {
	if amount > m.gasLeft {
		f(nil)
		return
	}
	m.gasLeft -= amount
	nested := NewMeter(amount, m.gasPrice)
	f(nested)
	m.gasLeft += nested.gasLeft
}

func (m *Meter) GasLeft() contracts.Gas {
	return m.gasLeft
}

func (m *Meter) Limit() contracts.Gas {
	return m.limit
}

// Spent is the gas consumed so far.
func (m *Meter) Spent() contracts.Gas {
	return m.limit - m.gasLeft
}

func (m *Meter) GasPrice() contracts.Balance {
	return m.gasPrice
}

const maxGas = ^contracts.Gas(0)

// SaturatingAdd adds two gas amounts, saturating at the maximum.
func SaturatingAdd(a, b contracts.Gas) contracts.Gas {
	res, overflow := math.SafeAdd(uint64(a), uint64(b))
	if overflow {
		return maxGas
	}
	return contracts.Gas(res)
}

// SaturatingMul multiplies two gas amounts, saturating at the maximum.
func SaturatingMul(a, b contracts.Gas) contracts.Gas {
	res, overflow := math.SafeMul(uint64(a), uint64(b))
	if overflow {
		return maxGas
	}
	return contracts.Gas(res)
}
