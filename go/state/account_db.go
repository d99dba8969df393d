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

// AccountDb is the read view of contract accounts shared by the persistent
// store and the transaction overlays stacked on top of it.
type AccountDb interface {
	// GetStorage reads a storage value. A nil trie id denotes a contract
	// without persisted storage.
	GetStorage(account contracts.AccountId, trieId contracts.TrieId, key contracts.StorageKey) ([]byte, bool)
	// GetCodeHash returns the code hash of an alive contract.
	GetCodeHash(account contracts.AccountId) (contracts.Hash, bool)
	// GetRentAllowance returns the rent allowance of an alive contract.
	GetRentAllowance(account contracts.AccountId) (contracts.Balance, bool)
	// ContractExists reports whether an alive contract or a tombstone is
	// recorded for the account.
	ContractExists(account contracts.AccountId) bool
	GetBalance(account contracts.AccountId) contracts.Balance
	// Commit applies a set of changes.
	Commit(changes ChangeSet)
}

// ChangeSet collects pending changes per account.
type ChangeSet map[contracts.AccountId]*ChangeEntry

// ChangeEntry holds the pending changes of a single account. Unset fields
// leave the underlying value untouched.
type ChangeEntry struct {
	balance       *contracts.Balance
	codeHash      *contracts.Hash
	rentAllowance *contracts.Balance
	// storage maps keys to their new values, nil marks a removed value.
	storage map[contracts.StorageKey][]byte
}

func newChangeEntry() *ChangeEntry {
	return &ChangeEntry{storage: map[contracts.StorageKey][]byte{}}
}

func (e *ChangeEntry) Balance() (contracts.Balance, bool) {
	if e.balance == nil {
		return contracts.Balance{}, false
	}
	return *e.balance, true
}

func (e *ChangeEntry) CodeHash() (contracts.Hash, bool) {
	if e.codeHash == nil {
		return contracts.Hash{}, false
	}
	return *e.codeHash, true
}

func (e *ChangeEntry) RentAllowance() (contracts.Balance, bool) {
	if e.rentAllowance == nil {
		return contracts.Balance{}, false
	}
	return *e.rentAllowance, true
}

// Storage returns the pending storage writes. A nil value marks a removal.
func (e *ChangeEntry) Storage() map[contracts.StorageKey][]byte {
	return e.storage
}

// merge folds a later entry into this one. Values set in other win.
func (e *ChangeEntry) merge(other *ChangeEntry) {
	if other.balance != nil {
		e.balance = other.balance
	}
	if other.codeHash != nil {
		e.codeHash = other.codeHash
	}
	if other.rentAllowance != nil {
		e.rentAllowance = other.rentAllowance
	}
	for key, value := range other.storage {
		e.storage[key] = value
	}
}
