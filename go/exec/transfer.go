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

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
)

// TransferCause names the operation a transfer is part of.
type TransferCause int

const (
	TransferCauseCall TransferCause = iota
	TransferCauseInstantiate
)

// TransferKind selects the fee charged for a transfer.
type TransferKind int

const (
	TransferKindTransfer TransferKind = iota
	TransferKindAccountCreate
	TransferKindInstantiate
)

func (k TransferKind) String() string {
	switch k {
	case TransferKindTransfer:
		return "transfer"
	case TransferKindAccountCreate:
		return "account-create"
	case TransferKindInstantiate:
		return "instantiate"
	}
	return fmt.Sprintf("TransferKind(%d)", int(k))
}

// transfer moves value from one account to another within the overlay of
// ctx after charging the transfer fee.
func transfer(
	meter *gas.Meter,
	cause TransferCause,
	from, to contracts.AccountId,
	value contracts.Balance,
	ctx *Context,
) error {
	toBalance := ctx.overlay.GetBalance(to)
	wouldCreate := toBalance.IsZero()

	kind := TransferKindTransfer
	switch {
	case cause == TransferCauseInstantiate:
		kind = TransferKindInstantiate
	case wouldCreate:
		kind = TransferKindAccountCreate
	}
	if err := gas.Charge(meter, &ctx.config.Schedule, transferToken(kind)); err != nil {
		return err
	}

	newFromBalance, ok := ctx.overlay.GetBalance(from).CheckedSub(value)
	if !ok {
		return contracts.ErrBalanceTooLow
	}
	if wouldCreate && value.Lt(ctx.config.ExistentialDeposit) {
		return contracts.ErrValueTooLowToCreate
	}
	if err := ctx.deps.Currency.EnsureCanWithdraw(from, value, contracts.WithdrawTransfer, newFromBalance); err != nil {
		return fmt.Errorf("%w: %w", contracts.ErrWithdrawFailed, err)
	}
	newToBalance, ok := toBalance.CheckedAdd(value)
	if !ok {
		return contracts.ErrDestinationBalanceTooHigh
	}

	if from != to {
		ctx.overlay.SetBalance(from, newFromBalance)
		ctx.overlay.SetBalance(to, newToBalance)
		ctx.deferred = append(ctx.deferred, DepositEvent{
			Event: contracts.TransferEvent{From: from, To: to, Value: value},
		})
	}
	return nil
}
