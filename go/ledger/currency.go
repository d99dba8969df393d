// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/log"
)

const (
	ErrInsufficientBalance   = contracts.ConstError("insufficient balance")
	ErrWouldKillAccount      = contracts.ConstError("payment would kill account")
	ErrLiquidityRestrictions = contracts.ConstError("account liquidity restrictions prevent withdrawal")
	ErrDeadAccount           = contracts.ConstError("beneficiary account must pre-exist")
)

func (l *Ledger) FreeBalance(who contracts.AccountId) contracts.Balance {
	var res contracts.Balance
	if data, found := l.get(join(balancePrefix, who[:])); found {
		copy(res[:], data)
	}
	return res
}

func (l *Ledger) MinimumBalance() contracts.Balance {
	return l.minimumBalance
}

// setBalance stores a balance. Balances below the minimum reap the account
// and the remainder is returned as dust.
func (l *Ledger) setBalance(who contracts.AccountId, balance contracts.Balance) (dust contracts.Balance) {
	if balance.Lt(l.minimumBalance) {
		l.delete(join(balancePrefix, who[:]))
		if !balance.IsZero() {
			log.Debug("Reaped account", "account", who, "dust", balance)
		}
		return balance
	}
	l.put(join(balancePrefix, who[:]), balance[:])
	return contracts.Balance{}
}

// Lock freezes amount of an account's balance. A withdrawal may not leave
// less than the locked amount behind.
func (l *Ledger) Lock(who contracts.AccountId, amount contracts.Balance) {
	if amount.IsZero() {
		l.delete(join(lockPrefix, who[:]))
		return
	}
	l.put(join(lockPrefix, who[:]), amount[:])
}

func (l *Ledger) locked(who contracts.AccountId) contracts.Balance {
	var res contracts.Balance
	if data, found := l.get(join(lockPrefix, who[:])); found {
		copy(res[:], data)
	}
	return res
}

func (l *Ledger) EnsureCanWithdraw(who contracts.AccountId, amount contracts.Balance, reason contracts.WithdrawReason, newBalance contracts.Balance) error {
	if amount.IsZero() {
		return nil
	}
	if newBalance.Lt(l.locked(who)) {
		return ErrLiquidityRestrictions
	}
	return nil
}

func (l *Ledger) Withdraw(who contracts.AccountId, amount contracts.Balance, reason contracts.WithdrawReason, liveness contracts.ExistenceRequirement) (contracts.NegativeImbalance, error) {
	balance := l.FreeBalance(who)
	newBalance, ok := balance.CheckedSub(amount)
	if !ok {
		return contracts.NegativeImbalance{}, ErrInsufficientBalance
	}
	if liveness == contracts.KeepAlive && newBalance.Lt(l.minimumBalance) && !balance.Lt(l.minimumBalance) && !amount.IsZero() {
		return contracts.NegativeImbalance{}, ErrWouldKillAccount
	}
	if err := l.EnsureCanWithdraw(who, amount, reason, newBalance); err != nil {
		return contracts.NegativeImbalance{}, err
	}
	dust := l.setBalance(who, newBalance)
	return contracts.NewNegativeImbalance(amount.SaturatingAdd(dust)), nil
}

func (l *Ledger) DepositCreating(who contracts.AccountId, amount contracts.Balance) contracts.PositiveImbalance {
	balance := l.FreeBalance(who)
	if balance.IsZero() && amount.Lt(l.minimumBalance) {
		return contracts.PositiveImbalance{}
	}
	newBalance, ok := balance.CheckedAdd(amount)
	if !ok {
		return contracts.PositiveImbalance{}
	}
	l.setBalance(who, newBalance)
	return contracts.NewPositiveImbalance(amount)
}

func (l *Ledger) DepositIntoExisting(who contracts.AccountId, amount contracts.Balance) (contracts.PositiveImbalance, error) {
	if l.FreeBalance(who).IsZero() {
		return contracts.PositiveImbalance{}, ErrDeadAccount
	}
	return l.DepositCreating(who, amount), nil
}

func (l *Ledger) MakeFreeBalanceBe(who contracts.AccountId, balance contracts.Balance) contracts.SignedImbalance {
	old := l.FreeBalance(who)
	dust := l.setBalance(who, balance)
	stored := balance.SaturatingSub(dust)
	if old.Lt(stored) {
		return contracts.PositiveSigned(stored.SaturatingSub(old))
	}
	return contracts.NegativeSigned(old.SaturatingSub(stored))
}

// Mint credits funds to an account out of thin air. It is meant for
// genesis setup and tooling.
func (l *Ledger) Mint(who contracts.AccountId, amount contracts.Balance) {
	l.setBalance(who, l.FreeBalance(who).SaturatingAdd(amount))
}

// Burn is an ImbalanceHandler dropping the funds it receives.
var Burn = contracts.ImbalanceHandlerFunc(func(imbalance contracts.NegativeImbalance) {
	log.Trace("Burned funds", "amount", imbalance.Peek())
})

// Treasury returns an ImbalanceHandler depositing all received funds into
// the given account.
func (l *Ledger) Treasury(account contracts.AccountId) contracts.ImbalanceHandler {
	return contracts.ImbalanceHandlerFunc(func(imbalance contracts.NegativeImbalance) {
		l.Mint(account, imbalance.Peek())
	})
}
