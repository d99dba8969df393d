// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rent

import (
	"testing"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/ledger"
)

var (
	contract = contracts.AccountId{0xC}
	treasury = contracts.AccountId{0xE}
	codeHash = contracts.Hash{0xA}
	trieId   = contracts.TrieId("trie")
	key      = contracts.Hash{0x1}
)

type testEnv struct {
	ledger  *ledger.Ledger
	block   *ledger.Block
	events  *ledger.EventLog
	manager *Manager
}

// newTestEnv sets up a manager where no storage is rent free for balances
// below one million, so the fee per block equals the storage size.
// The subsistence threshold is 26.
func newTestEnv(blockNumber contracts.BlockNumber) *testEnv {
	config := contracts.DefaultConfig()
	config.RentByteFee = contracts.NewBalance(1)
	config.RentDepositOffset = contracts.NewBalance(1_000_000)
	config.TombstoneDeposit = contracts.NewBalance(16)

	l := ledger.NewInMemory(contracts.NewBalance(10))
	block := &ledger.Block{Number: blockNumber}
	events := &ledger.EventLog{}
	return &testEnv{
		ledger:  l,
		block:   block,
		events:  events,
		manager: NewManager(&config, l, l, l, block, events, l.Treasury(treasury)),
	}
}

func (e *testEnv) deploy(balance uint64, allowance uint64) {
	e.ledger.Mint(contract, contracts.NewBalance(balance))
	e.ledger.Put(trieId, key, []byte("value"))
	e.ledger.SetContractInfo(contract, &contracts.AliveContractInfo{
		TrieId:        trieId,
		StorageSize:   100,
		CodeHash:      codeHash,
		RentAllowance: contracts.NewBalance(allowance),
	})
}

func (e *testEnv) balance(account contracts.AccountId) contracts.Balance {
	return e.ledger.FreeBalance(account)
}

func (e *testEnv) evictions() []contracts.EvictedEvent {
	var res []contracts.EvictedEvent
	for _, record := range e.events.Events() {
		if event, ok := record.Event.(contracts.EvictedEvent); ok {
			res = append(res, event)
		}
	}
	return res
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		Exempted:   "exempted",
		Ok:         "ok",
		Evicted:    "evicted",
		Outcome(7): "Outcome(7)",
	}
	for outcome, want := range tests {
		if got := outcome.String(); got != want {
			t.Errorf("unexpected string, wanted %q, got %q", want, got)
		}
	}
}

func TestManager_ExemptedContracts(t *testing.T) {
	tests := map[string]func(*testEnv){
		"no contract": func(*testEnv) {},
		"tombstone": func(e *testEnv) {
			e.ledger.SetContractInfo(contract, contracts.NewTombstone(contracts.Hash{}, 100, codeHash))
		},
		"already paid in this block": func(e *testEnv) {
			e.deploy(1000, 500)
			info := contracts.AsAlive(e.ledger.GetContractInfo(contract)).Clone()
			info.DeductBlock = e.block.Number
			e.ledger.SetContractInfo(contract, info)
		},
		"storage covered by balance": func(e *testEnv) {
			e.deploy(100_000_000, 500)
		},
	}

	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(3)
			setup(env)
			before := env.ledger.GetContractInfo(contract)
			balance := env.balance(contract)

			outcome, info := env.manager.TryEvictOrAndPayRent(contract, 0, true)
			if outcome != Exempted {
				t.Fatalf("unexpected outcome, wanted %v, got %v", Exempted, outcome)
			}
			if !sameInfo(before, info) {
				t.Errorf("record should be returned unchanged, wanted %v, got %v", before, info)
			}
			if got := env.balance(contract); got != balance {
				t.Errorf("balance should not change, wanted %v, got %v", balance, got)
			}
			if len(env.evictions()) != 0 {
				t.Errorf("no eviction expected")
			}
		})
	}
}

func sameInfo(a, b contracts.ContractInfo) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if alive := contracts.AsAlive(a); alive != nil {
		return contracts.AsAlive(b) != nil && alive.Equal(contracts.AsAlive(b))
	}
	return a == b
}

func TestManager_CollectRent_PaysDuesFromAllowance(t *testing.T) {
	env := newTestEnv(3)
	env.deploy(1000, 500)

	info := contracts.AsAlive(env.manager.CollectRent(contract))
	if info == nil {
		t.Fatalf("contract should still be alive")
	}
	if want := contracts.NewBalance(200); info.RentAllowance != want {
		t.Errorf("unexpected allowance, wanted %v, got %v", want, info.RentAllowance)
	}
	if info.DeductBlock != 3 {
		t.Errorf("unexpected deduct block, wanted 3, got %d", info.DeductBlock)
	}
	if stored := contracts.AsAlive(env.ledger.GetContractInfo(contract)); stored == nil || !stored.Equal(info) {
		t.Errorf("updated record should be stored, got %v", stored)
	}
	if want := contracts.NewBalance(700); env.balance(contract) != want {
		t.Errorf("unexpected balance, wanted %v, got %v", want, env.balance(contract))
	}
	if want := contracts.NewBalance(300); env.balance(treasury) != want {
		t.Errorf("unexpected treasury balance, wanted %v, got %v", want, env.balance(treasury))
	}
}

func TestManager_CollectRent_EvictsWhenAllowanceIsExhausted(t *testing.T) {
	env := newTestEnv(0)
	env.deploy(1000, 450)
	root := env.ledger.Root(trieId)

	for block := contracts.BlockNumber(1); block <= 4; block++ {
		env.block.Number = block
		if info := env.manager.CollectRent(contract); contracts.AsAlive(info) == nil {
			t.Fatalf("contract should survive block %d", block)
		}
	}

	env.block.Number = 5
	info := env.manager.CollectRent(contract)
	want := contracts.NewTombstone(root, 100, codeHash)
	if info != want {
		t.Fatalf("unexpected record, wanted %v, got %v", want, info)
	}
	if got := env.ledger.GetContractInfo(contract); got != want {
		t.Errorf("tombstone should be stored, got %v", got)
	}
	if _, found := env.ledger.Get(trieId, key); found {
		t.Errorf("storage should be deleted")
	}
	// The remaining allowance is drained before eviction.
	if want := contracts.NewBalance(550); env.balance(contract) != want {
		t.Errorf("unexpected balance, wanted %v, got %v", want, env.balance(contract))
	}
	if want := contracts.NewBalance(450); env.balance(treasury) != want {
		t.Errorf("unexpected treasury balance, wanted %v, got %v", want, env.balance(treasury))
	}
	evictions := env.evictions()
	if len(evictions) != 1 || evictions[0] != (contracts.EvictedEvent{Contract: contract, Tombstone: true}) {
		t.Errorf("unexpected eviction events: %v", evictions)
	}
}

func TestManager_CollectRent_RemovesContractsBelowSubsistence(t *testing.T) {
	env := newTestEnv(3)
	env.deploy(20, 500)

	outcome, info := env.manager.TryEvictOrAndPayRent(contract, 0, true)
	if outcome != Evicted || info != nil {
		t.Fatalf("unexpected result, wanted evicted without record, got %v, %v", outcome, info)
	}
	if got := env.ledger.GetContractInfo(contract); got != nil {
		t.Errorf("record should be removed, got %v", got)
	}
	if !env.balance(contract).IsZero() {
		t.Errorf("balance should be cleared, got %v", env.balance(contract))
	}
	if want := contracts.NewBalance(20); env.balance(treasury) != want {
		t.Errorf("remaining funds should be paid out, wanted %v, got %v", want, env.balance(treasury))
	}
	if _, found := env.ledger.Get(trieId, key); found {
		t.Errorf("storage should be deleted")
	}
	evictions := env.evictions()
	if len(evictions) != 1 || evictions[0] != (contracts.EvictedEvent{Contract: contract, Tombstone: false}) {
		t.Errorf("unexpected eviction events: %v", evictions)
	}
}

func TestManager_CollectRent_EvictsWhenFundsAreLocked(t *testing.T) {
	env := newTestEnv(3)
	env.deploy(1000, 500)
	env.ledger.Lock(contract, contracts.NewBalance(1000))

	outcome, info := env.manager.TryEvictOrAndPayRent(contract, 0, true)
	if outcome != Evicted || !contracts.IsTombstone(info) {
		t.Fatalf("unexpected result, wanted tombstone, got %v, %v", outcome, info)
	}
	if want := contracts.NewBalance(1000); env.balance(contract) != want {
		t.Errorf("nothing should be withdrawn, wanted %v, got %v", want, env.balance(contract))
	}
	if !env.balance(treasury).IsZero() {
		t.Errorf("treasury should not receive anything, got %v", env.balance(treasury))
	}
}

func TestManager_TryEvict_DoesNotChargeAffordableRent(t *testing.T) {
	env := newTestEnv(3)
	env.deploy(1000, 500)

	if outcome := env.manager.TryEvict(contract, 0); outcome != Ok {
		t.Fatalf("unexpected outcome, wanted %v, got %v", Ok, outcome)
	}
	info := contracts.AsAlive(env.ledger.GetContractInfo(contract))
	if info == nil || info.DeductBlock != 0 || info.RentAllowance != contracts.NewBalance(500) {
		t.Errorf("record should not change, got %v", info)
	}
	if want := contracts.NewBalance(1000); env.balance(contract) != want {
		t.Errorf("unexpected balance, wanted %v, got %v", want, env.balance(contract))
	}
}

func TestManager_TryEvict_HandicapDelaysEviction(t *testing.T) {
	tests := map[string]struct {
		handicap contracts.BlockNumber
		want     Outcome
	}{
		"no handicap":           {handicap: 0, want: Evicted},
		"handicap of one block": {handicap: 1, want: Ok},
		"handicap covers all":   {handicap: 3, want: Exempted},
		"handicap beyond chain": {handicap: 10, want: Exempted},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(3)
			env.deploy(1000, 250)
			if got := env.manager.TryEvict(contract, test.handicap); got != test.want {
				t.Errorf("unexpected outcome, wanted %v, got %v", test.want, got)
			}
		})
	}
}
