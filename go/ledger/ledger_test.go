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
	"bytes"
	"errors"
	"testing"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
)

var (
	alice = contracts.AccountId{1}
	bob   = contracts.AccountId{2}
)

func TestLedger_ReopeningKeepsContent(t *testing.T) {
	db := memorydb.New()
	first := New(db, contracts.NewBalance(1))
	first.Mint(alice, contracts.NewBalance(10))

	second := New(db, contracts.NewBalance(1))
	if want, got := contracts.NewBalance(10), second.FreeBalance(alice); want != got {
		t.Errorf("unexpected balance after reopening, wanted %v, got %v", want, got)
	}
}

func TestLedger_AccountCounterIncrements(t *testing.T) {
	l := NewInMemory(contracts.Balance{})
	for want := uint64(1); want <= 3; want++ {
		if got := l.NextAccountCounter(); got != want {
			t.Errorf("unexpected counter, wanted %d, got %d", want, got)
		}
	}
}

func TestLedger_ScheduleDefaultsAndUpdates(t *testing.T) {
	l := NewInMemory(contracts.Balance{})
	if got := l.Schedule(); got != contracts.DefaultSchedule() {
		t.Errorf("expected default schedule, got %+v", got)
	}
	schedule := contracts.DefaultSchedule()
	schedule.Version = 7
	schedule.EnablePrintln = true
	schedule.RegularOpCost = 3
	l.SetSchedule(schedule)
	if got := l.Schedule(); got != schedule {
		t.Errorf("unexpected schedule, wanted %+v, got %+v", schedule, got)
	}
}

func TestLedger_ContractInfoRoundTrip(t *testing.T) {
	l := NewInMemory(contracts.Balance{})
	if l.GetContractInfo(alice) != nil {
		t.Fatalf("unexpected record for fresh account")
	}

	alive := &contracts.AliveContractInfo{
		TrieId:        contracts.TrieId{1, 2, 3},
		StorageSize:   42,
		CodeHash:      contracts.Hash{7},
		RentAllowance: contracts.MaxBalance,
		DeductBlock:   12,
		LastWrite:     13,
	}
	l.SetContractInfo(alice, alive)
	got := contracts.AsAlive(l.GetContractInfo(alice))
	if !alive.Equal(got) {
		t.Errorf("unexpected record, wanted %+v, got %+v", alive, got)
	}

	tombstone := contracts.TombstoneContractInfo{Hash: contracts.Hash{9}}
	l.SetContractInfo(alice, tombstone)
	if got := l.GetContractInfo(alice); got != tombstone {
		t.Errorf("unexpected record, wanted %v, got %v", tombstone, got)
	}

	l.RemoveContractInfo(alice)
	if l.GetContractInfo(alice) != nil {
		t.Errorf("record not removed")
	}
}

func TestLedger_CodeTables(t *testing.T) {
	l := NewInMemory(contracts.Balance{})
	hash := contracts.Hash{1}
	if _, found := l.GetPristineCode(hash); found {
		t.Fatalf("unexpected pristine code")
	}
	if _, found := l.GetPrefabModule(hash); found {
		t.Fatalf("unexpected prefab module")
	}

	l.PutPristineCode(hash, []byte{1, 2, 3})
	module := &contracts.PrefabModule{ScheduleVersion: 2, Initial: 1, Maximum: 16, Code: []byte{4, 5}}
	l.PutPrefabModule(hash, module)

	if code, found := l.GetPristineCode(hash); !found || !bytes.Equal(code, []byte{1, 2, 3}) {
		t.Errorf("unexpected pristine code %x", code)
	}
	got, found := l.GetPrefabModule(hash)
	if !found {
		t.Fatalf("prefab module not found")
	}
	if got.ScheduleVersion != 2 || got.Initial != 1 || got.Maximum != 16 || !bytes.Equal(got.Code, module.Code) {
		t.Errorf("unexpected prefab module %+v", got)
	}
}

func TestLedger_ChildStorageIsolatesTries(t *testing.T) {
	l := NewInMemory(contracts.Balance{})
	trieA := contracts.TrieId("a")
	trieB := contracts.TrieId("b")
	key := contracts.Hash{1}

	l.Put(trieA, key, []byte{1})
	l.Put(trieB, key, []byte{2})
	if value, found := l.Get(trieA, key); !found || !bytes.Equal(value, []byte{1}) {
		t.Errorf("unexpected value in trie a: %x", value)
	}

	l.DeleteAll(trieA)
	if _, found := l.Get(trieA, key); found {
		t.Errorf("value in trie a not removed")
	}
	if value, found := l.Get(trieB, key); !found || !bytes.Equal(value, []byte{2}) {
		t.Errorf("trie b was affected by removal of trie a")
	}

	l.Delete(trieB, key)
	if _, found := l.Get(trieB, key); found {
		t.Errorf("value in trie b not removed")
	}
}

func TestLedger_ChildStorageRoot(t *testing.T) {
	l := NewInMemory(contracts.Balance{})
	trie := contracts.TrieId("trie")
	if got := l.Root(trie); got != contracts.Hash(types.EmptyRootHash) {
		t.Errorf("unexpected root of empty trie %v", got)
	}

	l.Put(trie, contracts.Hash{2}, []byte{2})
	l.Put(trie, contracts.Hash{1}, []byte{})
	first := l.Root(trie)

	other := NewInMemory(contracts.Balance{})
	other.Put(trie, contracts.Hash{1}, []byte{})
	other.Put(trie, contracts.Hash{2}, []byte{2})
	if got := other.Root(trie); got != first {
		t.Errorf("root depends on insertion order")
	}

	l.Put(trie, contracts.Hash{2}, []byte{3})
	if l.Root(trie) == first {
		t.Errorf("root does not depend on content")
	}
}

func TestLedger_WithdrawChecks(t *testing.T) {
	tests := map[string]struct {
		balance  uint64
		lock     uint64
		amount   uint64
		liveness contracts.ExistenceRequirement
		want     error
		left     uint64
	}{
		"plain withdrawal":    {100, 0, 30, contracts.KeepAlive, nil, 70},
		"insufficient":        {10, 0, 30, contracts.KeepAlive, ErrInsufficientBalance, 10},
		"would kill":          {100, 0, 95, contracts.KeepAlive, ErrWouldKillAccount, 100},
		"may kill":            {100, 0, 95, contracts.AllowDeath, nil, 0},
		"locked":              {100, 80, 30, contracts.AllowDeath, ErrLiquidityRestrictions, 100},
		"up to lock":          {100, 70, 30, contracts.AllowDeath, nil, 70},
		"everything":          {100, 0, 100, contracts.AllowDeath, nil, 0},
		"nothing from locked": {100, 200, 0, contracts.KeepAlive, nil, 100},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewInMemory(contracts.NewBalance(10))
			l.Mint(alice, contracts.NewBalance(test.balance))
			l.Lock(alice, contracts.NewBalance(test.lock))

			imbalance, err := l.Withdraw(alice, contracts.NewBalance(test.amount), contracts.WithdrawTransfer, test.liveness)
			if !errors.Is(err, test.want) {
				t.Fatalf("unexpected error, wanted %v, got %v", test.want, err)
			}
			if want, got := contracts.NewBalance(test.left), l.FreeBalance(alice); want != got {
				t.Errorf("unexpected balance, wanted %v, got %v", want, got)
			}
			if err == nil {
				want := contracts.NewBalance(test.balance - test.left)
				if got := imbalance.Peek(); got != want {
					t.Errorf("unexpected imbalance, wanted %v, got %v", want, got)
				}
			}
		})
	}
}

func TestLedger_DepositCreatingDropsDust(t *testing.T) {
	l := NewInMemory(contracts.NewBalance(10))
	if got := l.DepositCreating(alice, contracts.NewBalance(5)); !got.Peek().IsZero() {
		t.Errorf("dust deposit must be dropped")
	}
	if !l.FreeBalance(alice).IsZero() {
		t.Errorf("dust deposit created account")
	}
	if got := l.DepositCreating(alice, contracts.NewBalance(15)); got.Peek() != contracts.NewBalance(15) {
		t.Errorf("unexpected imbalance %v", got.Peek())
	}
	if got := l.DepositCreating(alice, contracts.NewBalance(5)); got.Peek() != contracts.NewBalance(5) {
		t.Errorf("deposit into existing account must not be dropped")
	}
	if want, got := contracts.NewBalance(20), l.FreeBalance(alice); want != got {
		t.Errorf("unexpected balance, wanted %v, got %v", want, got)
	}
}

func TestLedger_DepositIntoExistingRequiresAccount(t *testing.T) {
	l := NewInMemory(contracts.NewBalance(1))
	if _, err := l.DepositIntoExisting(bob, contracts.NewBalance(5)); !errors.Is(err, ErrDeadAccount) {
		t.Errorf("expected dead account error, got %v", err)
	}
	l.Mint(bob, contracts.NewBalance(1))
	if _, err := l.DepositIntoExisting(bob, contracts.NewBalance(5)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestLedger_MakeFreeBalanceBeReportsImbalance(t *testing.T) {
	l := NewInMemory(contracts.NewBalance(10))
	l.Mint(alice, contracts.NewBalance(50))

	up := l.MakeFreeBalanceBe(alice, contracts.NewBalance(80))
	if !up.IsPositive() || up.Peek() != contracts.NewBalance(30) {
		t.Errorf("unexpected imbalance for raise %v", up.Peek())
	}
	down := l.MakeFreeBalanceBe(alice, contracts.NewBalance(60))
	if !down.IsNegative() || down.Peek() != contracts.NewBalance(20) {
		t.Errorf("unexpected imbalance for cut %v", down.Peek())
	}
	reaped := l.MakeFreeBalanceBe(alice, contracts.NewBalance(5))
	if !reaped.IsNegative() || reaped.Peek() != contracts.NewBalance(60) {
		t.Errorf("unexpected imbalance for reaping %v", reaped.Peek())
	}
	if !l.FreeBalance(alice).IsZero() {
		t.Errorf("account not reaped")
	}
}

func TestLedger_TreasuryCollectsImbalances(t *testing.T) {
	l := NewInMemory(contracts.Balance{})
	treasury := l.Treasury(bob)
	treasury.OnUnbalanced(contracts.NewNegativeImbalance(contracts.NewBalance(7)))
	if want, got := contracts.NewBalance(7), l.FreeBalance(bob); want != got {
		t.Errorf("unexpected treasury balance, wanted %v, got %v", want, got)
	}
	Burn.OnUnbalanced(contracts.NewNegativeImbalance(contracts.NewBalance(7)))
}

func TestBlock_RandomDependsOnSeedAndSubject(t *testing.T) {
	block := &Block{Number: 1, Time: 2, Seed: contracts.Hash{1}}
	if block.Random([]byte("a")) != block.Random([]byte("a")) {
		t.Errorf("randomness is not deterministic")
	}
	if block.Random([]byte("a")) == block.Random([]byte("b")) {
		t.Errorf("randomness ignores subject")
	}
	other := &Block{Seed: contracts.Hash{2}}
	if block.Random([]byte("a")) == other.Random([]byte("a")) {
		t.Errorf("randomness ignores seed")
	}
}

func TestEventLog_RecordsEvents(t *testing.T) {
	var events EventLog
	events.DepositEvent([]contracts.Hash{{1}}, contracts.CodeStoredEvent{CodeHash: contracts.Hash{2}})
	got := events.Events()
	if len(got) != 1 || got[0].Event.EventName() != "CodeStored" || len(got[0].Topics) != 1 {
		t.Errorf("unexpected events %v", got)
	}
	events.Clear()
	if len(events.Events()) != 0 {
		t.Errorf("events not cleared")
	}
}
