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
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/log"
)

// BlockGasCounter accumulates the gas spent by the transactions of a single
// block. It is owned by the block being executed and reset at its start.
type BlockGasCounter struct {
	limit contracts.Gas
	spent contracts.Gas
}

func NewBlockGasCounter(limit contracts.Gas) *BlockGasCounter {
	return &BlockGasCounter{limit: limit}
}

// Reset clears the counter at a block boundary.
func (c *BlockGasCounter) Reset() {
	c.spent = 0
}

func (c *BlockGasCounter) Spent() contracts.Gas {
	return c.spent
}

// Remaining is the gas that may still be bought in this block.
func (c *BlockGasCounter) Remaining() contracts.Gas {
	if c.spent >= c.limit {
		return 0
	}
	return c.limit - c.spent
}

// Add records spent gas. The counter never decreases within a block.
func (c *BlockGasCounter) Add(spent contracts.Gas) {
	c.spent = SaturatingAdd(c.spent, spent)
}

// BuyGas withdraws limit*price from payer and returns a meter holding limit
// gas together with the withdrawn funds. The returned imbalance must be
// passed to RefundUnusedGas exactly once.
func BuyGas(
	counter *BlockGasCounter,
	currency contracts.Currency,
	payer contracts.AccountId,
	limit contracts.Gas,
	price contracts.Balance,
) (*Meter, contracts.NegativeImbalance, error) {
	if limit > counter.Remaining() {
		return nil, contracts.NegativeImbalance{}, contracts.ErrBlockGasLimitReached
	}

	var cost contracts.Balance
	if !price.IsZero() {
		var ok bool
		cost, ok = contracts.NewBalance(uint64(limit)).CheckedMul(price)
		if !ok {
			return nil, contracts.NegativeImbalance{}, contracts.ErrGasCostOverflow
		}
	}

	imbalance, err := currency.Withdraw(payer, cost, contracts.WithdrawFee, contracts.KeepAlive)
	if err != nil {
		log.Debug("Failed to buy gas", "payer", payer, "limit", limit, "cost", cost, "err", err)
		return nil, contracts.NegativeImbalance{}, fmt.Errorf("%w: %w", contracts.ErrWithdrawFailed, err)
	}
	return NewMeter(limit, price), imbalance, nil
}

// RefundUnusedGas books the gas consumed by meter against the block counter
// and returns the price of the unused gas to payer. The part of the original
// withdrawal not refunded is handed to sink.
func RefundUnusedGas(
	counter *BlockGasCounter,
	currency contracts.Currency,
	payer contracts.AccountId,
	meter *Meter,
	imbalance contracts.NegativeImbalance,
	sink contracts.ImbalanceHandler,
) {
	counter.Add(meter.Spent())

	refund := contracts.NewBalance(uint64(meter.GasLeft())).SaturatingMul(meter.GasPrice())
	deposit := currency.DepositCreating(payer, refund)
	rest, _ := imbalance.Offset(deposit)
	if !rest.Peek().IsZero() {
		sink.OnUnbalanced(rest)
	}
}
