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

//go:generate mockgen -source currency.go -destination currency_mock.go -package contracts

// WithdrawReason tells the currency why funds leave an account.
type WithdrawReason uint8

const (
	WithdrawTransfer WithdrawReason = iota
	WithdrawFee
)

func (r WithdrawReason) String() string {
	switch r {
	case WithdrawTransfer:
		return "transfer"
	case WithdrawFee:
		return "fee"
	default:
		return "unknown"
	}
}

// ExistenceRequirement states whether a withdrawal may reap the account.
type ExistenceRequirement uint8

const (
	KeepAlive ExistenceRequirement = iota
	AllowDeath
)

// Currency is the balance ledger consulted and updated by contract
// execution.
type Currency interface {
	// FreeBalance returns the spendable balance of an account.
	FreeBalance(who AccountId) Balance
	// MinimumBalance is the existential deposit. Accounts below it are
	// reaped.
	MinimumBalance() Balance
	// EnsureCanWithdraw checks currency policies (such as locks) for a
	// withdrawal leaving newBalance behind.
	EnsureCanWithdraw(who AccountId, amount Balance, reason WithdrawReason, newBalance Balance) error
	// Withdraw removes funds from an account.
	Withdraw(who AccountId, amount Balance, reason WithdrawReason, liveness ExistenceRequirement) (NegativeImbalance, error)
	// DepositCreating adds funds, creating the account if needed. Deposits
	// below the minimum balance into a non-existent account are dropped.
	DepositCreating(who AccountId, amount Balance) PositiveImbalance
	// DepositIntoExisting adds funds to an account that must exist.
	DepositIntoExisting(who AccountId, amount Balance) (PositiveImbalance, error)
	// MakeFreeBalanceBe forces the balance of an account, reaping it if the
	// new balance is below the minimum balance.
	MakeFreeBalanceBe(who AccountId, balance Balance) SignedImbalance
}

// ImbalanceHandler receives funds withdrawn without a matching deposit,
// such as gas and rent payments.
type ImbalanceHandler interface {
	OnUnbalanced(NegativeImbalance)
}

// ImbalanceHandlerFunc adapts a function to an ImbalanceHandler.
type ImbalanceHandlerFunc func(NegativeImbalance)

func (f ImbalanceHandlerFunc) OnUnbalanced(imbalance NegativeImbalance) {
	f(imbalance)
}

// PositiveImbalance records funds added to circulation.
type PositiveImbalance struct {
	amount Balance
}

func NewPositiveImbalance(amount Balance) PositiveImbalance {
	return PositiveImbalance{amount: amount}
}

func (p PositiveImbalance) Peek() Balance {
	return p.amount
}

// NegativeImbalance records funds removed from circulation which still need
// a destination. It must be handed to exactly one ImbalanceHandler or offset
// against a PositiveImbalance.
type NegativeImbalance struct {
	amount Balance
}

func NewNegativeImbalance(amount Balance) NegativeImbalance {
	return NegativeImbalance{amount: amount}
}

func (n NegativeImbalance) Peek() Balance {
	return n.amount
}

// Offset cancels a positive imbalance against this negative one. Exactly
// one of the results carries the non-zero remainder, if any.
func (n NegativeImbalance) Offset(p PositiveImbalance) (NegativeImbalance, PositiveImbalance) {
	if rest, ok := n.amount.CheckedSub(p.amount); ok {
		return NegativeImbalance{amount: rest}, PositiveImbalance{}
	}
	return NegativeImbalance{}, PositiveImbalance{amount: p.amount.SaturatingSub(n.amount)}
}

// SignedImbalance is either a positive or a negative imbalance.
type SignedImbalance struct {
	amount   Balance
	negative bool
}

func PositiveSigned(amount Balance) SignedImbalance {
	return SignedImbalance{amount: amount}
}

func NegativeSigned(amount Balance) SignedImbalance {
	return SignedImbalance{amount: amount, negative: !amount.IsZero()}
}

func (s SignedImbalance) IsPositive() bool {
	return !s.negative && !s.amount.IsZero()
}

func (s SignedImbalance) IsNegative() bool {
	return s.negative
}

func (s SignedImbalance) Peek() Balance {
	return s.amount
}

// Merge combines two signed imbalances.
func (s SignedImbalance) Merge(o SignedImbalance) SignedImbalance {
	if s.negative == o.negative {
		return SignedImbalance{amount: s.amount.SaturatingAdd(o.amount), negative: s.negative}
	}
	if rest, ok := s.amount.CheckedSub(o.amount); ok {
		return SignedImbalance{amount: rest, negative: s.negative && !rest.IsZero()}
	}
	return SignedImbalance{amount: o.amount.SaturatingSub(s.amount), negative: o.negative}
}
