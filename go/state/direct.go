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
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	accountCommitMeter = metrics.NewRegisteredMeter("contracts/state/commit/account", nil)
	storageCommitMeter = metrics.NewRegisteredMeter("contracts/state/commit/storage", nil)
)

// DirectStore is the AccountDb backed by the persistent ledger. Committing
// a change set writes it through to the currency, the contract records, and
// the child storage.
type DirectStore struct {
	currency          contracts.Currency
	contracts         contracts.ContractStore
	storage           contracts.ChildStorage
	block             contracts.BlockContext
	storageSizeOffset uint32
}

// NewDirectStore creates a store writing to the given ledger components.
// Records of new contracts start at storageSizeOffset bytes.
func NewDirectStore(
	currency contracts.Currency,
	contractStore contracts.ContractStore,
	storage contracts.ChildStorage,
	block contracts.BlockContext,
	storageSizeOffset uint32,
) *DirectStore {
	return &DirectStore{
		currency:          currency,
		contracts:         contractStore,
		storage:           storage,
		block:             block,
		storageSizeOffset: storageSizeOffset,
	}
}

func (d *DirectStore) GetStorage(account contracts.AccountId, trieId contracts.TrieId, key contracts.StorageKey) ([]byte, bool) {
	if trieId == nil {
		return nil, false
	}
	return d.storage.Get(trieId, HashStorageKey(key))
}

func (d *DirectStore) GetCodeHash(account contracts.AccountId) (contracts.Hash, bool) {
	if alive := contracts.AsAlive(d.contracts.GetContractInfo(account)); alive != nil {
		return alive.CodeHash, true
	}
	return contracts.Hash{}, false
}

func (d *DirectStore) GetRentAllowance(account contracts.AccountId) (contracts.Balance, bool) {
	if alive := contracts.AsAlive(d.contracts.GetContractInfo(account)); alive != nil {
		return alive.RentAllowance, true
	}
	return contracts.Balance{}, false
}

func (d *DirectStore) ContractExists(account contracts.AccountId) bool {
	return d.contracts.GetContractInfo(account) != nil
}

func (d *DirectStore) GetBalance(account contracts.AccountId) contracts.Balance {
	return d.currency.FreeBalance(account)
}

// Commit writes the change set to the ledger. Accounts are processed in
// ascending order. A commit may move funds between accounts and remove
// funds, but it must never create funds; doing so panics.
func (d *DirectStore) Commit(changes ChangeSet) {
	accounts := maps.Keys(changes)
	slices.SortFunc(accounts, func(a, b contracts.AccountId) int {
		return bytes.Compare(a[:], b[:])
	})

	var total contracts.SignedImbalance
	for _, account := range accounts {
		changed := changes[account]
		if balance, ok := changed.Balance(); ok {
			existed := !d.currency.FreeBalance(account).IsZero()
			total = total.Merge(d.currency.MakeFreeBalanceBe(account, balance))
			if existed && d.currency.FreeBalance(account).IsZero() {
				// The account was reaped, its contract goes with it.
				d.onKilledAccount(account)
				continue
			}
		}
		d.commitContract(account, changed)
	}
	accountCommitMeter.Mark(int64(len(accounts)))

	if total.IsPositive() {
		panic(fmt.Sprintf("contract subsystem resulting in positive imbalance of %v", total.Peek()))
	}
}

func (d *DirectStore) onKilledAccount(account contracts.AccountId) {
	if alive := contracts.AsAlive(d.contracts.GetContractInfo(account)); alive != nil {
		d.storage.DeleteAll(alive.TrieId)
		d.contracts.RemoveContractInfo(account)
		log.Debug("Removed contract of reaped account", "account", account)
	}
}

func (d *DirectStore) commitContract(account contracts.AccountId, changed *ChangeEntry) {
	codeHash, hasCode := changed.CodeHash()
	if !hasCode && changed.rentAllowance == nil && len(changed.storage) == 0 {
		return
	}

	var info *contracts.AliveContractInfo
	var old *contracts.AliveContractInfo
	switch existing := d.contracts.GetContractInfo(account).(type) {
	case contracts.TombstoneContractInfo:
		// Tombstones are terminal.
		return
	case *contracts.AliveContractInfo:
		old = existing
		info = existing.Clone()
	default:
		if !hasCode {
			return
		}
		info = &contracts.AliveContractInfo{
			TrieId:        NewTrieId(account, d.contracts.NextAccountCounter()),
			StorageSize:   d.storageSizeOffset,
			CodeHash:      codeHash,
			RentAllowance: contracts.MaxBalance,
			DeductBlock:   d.block.BlockNumber(),
		}
	}

	if allowance, ok := changed.RentAllowance(); ok {
		info.RentAllowance = allowance
	}
	if hasCode {
		info.CodeHash = codeHash
	}
	if len(changed.storage) > 0 {
		info.LastWrite = d.block.BlockNumber()
	}

	keys := maps.Keys(changed.storage)
	slices.SortFunc(keys, func(a, b contracts.StorageKey) int {
		return bytes.Compare(a[:], b[:])
	})
	for _, key := range keys {
		location := HashStorageKey(key)
		if previous, found := d.storage.Get(info.TrieId, location); found {
			info.StorageSize = saturatingSub(info.StorageSize, uint32(len(previous)))
		}
		if value := changed.storage[key]; value != nil {
			info.StorageSize = saturatingAdd(info.StorageSize, uint32(len(value)))
			d.storage.Put(info.TrieId, location, value)
		} else {
			d.storage.Delete(info.TrieId, location)
		}
	}
	storageCommitMeter.Mark(int64(len(keys)))

	if !info.Equal(old) {
		d.contracts.SetContractInfo(account, info)
	}
}

func saturatingAdd(a, b uint32) uint32 {
	if res := a + b; res >= a {
		return res
	}
	return ^uint32(0)
}

func saturatingSub(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}
