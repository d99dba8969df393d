// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"github.com/Fantom-foundation/Quartz/go/contracts"
)

// Overlay buffers changes on top of another AccountDb. Reads consult the
// local changes first. Nothing reaches the underlying AccountDb until the
// overlay's change set is committed to it.
type Overlay struct {
	underlying AccountDb
	local      ChangeSet
}

// NewOverlay creates an empty overlay on top of underlying.
func NewOverlay(underlying AccountDb) *Overlay {
	return &Overlay{
		underlying: underlying,
		local:      ChangeSet{},
	}
}

func (o *Overlay) entry(account contracts.AccountId) *ChangeEntry {
	e, found := o.local[account]
	if !found {
		e = newChangeEntry()
		o.local[account] = e
	}
	return e
}

func (o *Overlay) GetStorage(account contracts.AccountId, trieId contracts.TrieId, key contracts.StorageKey) ([]byte, bool) {
	if e, found := o.local[account]; found {
		if value, found := e.storage[key]; found {
			return value, value != nil
		}
	}
	return o.underlying.GetStorage(account, trieId, key)
}

func (o *Overlay) GetCodeHash(account contracts.AccountId) (contracts.Hash, bool) {
	if e, found := o.local[account]; found && e.codeHash != nil {
		return *e.codeHash, true
	}
	return o.underlying.GetCodeHash(account)
}

func (o *Overlay) GetRentAllowance(account contracts.AccountId) (contracts.Balance, bool) {
	if e, found := o.local[account]; found && e.rentAllowance != nil {
		return *e.rentAllowance, true
	}
	return o.underlying.GetRentAllowance(account)
}

func (o *Overlay) ContractExists(account contracts.AccountId) bool {
	if e, found := o.local[account]; found && e.codeHash != nil {
		return true
	}
	return o.underlying.ContractExists(account)
}

func (o *Overlay) GetBalance(account contracts.AccountId) contracts.Balance {
	if e, found := o.local[account]; found && e.balance != nil {
		return *e.balance
	}
	return o.underlying.GetBalance(account)
}

// SetStorage records a new value for key. An empty value is stored as such
// and is distinct from a removed value.
func (o *Overlay) SetStorage(account contracts.AccountId, key contracts.StorageKey, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	o.entry(account).storage[key] = stored
}

// ClearStorage records the removal of key.
func (o *Overlay) ClearStorage(account contracts.AccountId, key contracts.StorageKey) {
	o.entry(account).storage[key] = nil
}

// CreateContract records a new contract with the given code at account. It
// fails if an alive contract or a tombstone already occupies the account.
// The new contract starts with an unlimited rent allowance.
func (o *Overlay) CreateContract(account contracts.AccountId, codeHash contracts.Hash) error {
	if o.ContractExists(account) {
		return contracts.ErrContractExists
	}
	e := o.entry(account)
	e.codeHash = &codeHash
	allowance := contracts.MaxBalance
	e.rentAllowance = &allowance
	return nil
}

func (o *Overlay) SetRentAllowance(account contracts.AccountId, allowance contracts.Balance) {
	o.entry(account).rentAllowance = &allowance
}

func (o *Overlay) SetBalance(account contracts.AccountId, balance contracts.Balance) {
	o.entry(account).balance = &balance
}

// ChangeSet hands out the buffered changes. The overlay must not be used
// afterwards.
func (o *Overlay) ChangeSet() ChangeSet {
	res := o.local
	o.local = nil
	return res
}

// Commit folds the changes of a nested overlay into this one.
func (o *Overlay) Commit(changes ChangeSet) {
	for account, changed := range changes {
		if e, found := o.local[account]; found {
			e.merge(changed)
		} else {
			o.local[account] = changed
		}
	}
}
