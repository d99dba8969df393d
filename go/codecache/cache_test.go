// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package codecache

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/ledger"
	"github.com/Fantom-foundation/Quartz/go/prepare"
	"github.com/Fantom-foundation/Quartz/go/wasm"
	"go.uber.org/mock/gomock"
)

type noImports struct{}

func (noImports) CanSatisfy(string, wasm.FuncType) bool {
	return false
}

func contractCode(marker int32) []byte {
	body := []wasm.Instruction{wasm.ConstI32(marker), wasm.Op(wasm.Drop), wasm.Op(wasm.End)}
	return wasm.Encode(&wasm.Module{
		Types:     []wasm.FuncType{{}},
		Functions: []uint32{0, 0},
		Exports: []wasm.Export{
			{Name: prepare.EntryDeploy, Kind: wasm.ExternalFunction, Index: 0},
			{Name: prepare.EntryCall, Kind: wasm.ExternalFunction, Index: 1},
		},
		Code: []wasm.Body{{Code: body}, {Code: body}},
	})
}

func newTestCache(t *testing.T, store contracts.CodeStore) *Cache {
	t.Helper()
	cache, err := NewCache(store, noImports{}, 0)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return cache
}

func TestCache_SaveChargesBeforePreparing(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := contracts.NewMockCodeStore(ctrl)
	cache := newTestCache(t, store)
	schedule := contracts.DefaultSchedule()
	code := contractCode(1)

	meter := gas.NewMeter(contracts.Gas(len(code)-1), contracts.NewBalance(1))
	if _, err := cache.Save(code, meter, &schedule); !errors.Is(err, contracts.ErrOutOfGas) {
		t.Errorf("expected out of gas, got %v", err)
	}
	if meter.GasLeft() != 0 {
		t.Errorf("failed charge must exhaust the meter")
	}
}

func TestCache_SaveStoresNewCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := contracts.NewMockCodeStore(ctrl)
	cache := newTestCache(t, store)
	schedule := contracts.DefaultSchedule()
	schedule.PutCodePerByteCost = 3
	code := contractCode(1)
	hash := CodeHash(code)

	store.EXPECT().GetPristineCode(hash).Return(nil, false)
	store.EXPECT().PutPristineCode(hash, code)
	store.EXPECT().PutPrefabModule(hash, gomock.Any())

	meter := gas.NewMeter(10_000, contracts.NewBalance(1))
	got, err := cache.Save(code, meter, &schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != hash {
		t.Errorf("unexpected hash %v", got)
	}
	if want := contracts.Gas(3 * len(code)); meter.Spent() != want {
		t.Errorf("unexpected charge, wanted %d, got %d", want, meter.Spent())
	}

	// The new module is served from memory.
	prefab, err := cache.Load(hash, &schedule)
	if err != nil || prefab == nil {
		t.Errorf("failed to load saved module: %v", err)
	}
}

func TestCache_SavingKnownCodeIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := contracts.NewMockCodeStore(ctrl)
	cache := newTestCache(t, store)
	schedule := contracts.DefaultSchedule()
	code := contractCode(1)

	store.EXPECT().GetPristineCode(CodeHash(code)).Return(code, true)

	hash, err := cache.Save(code, gas.NewMeter(10_000, contracts.NewBalance(1)), &schedule)
	if err != nil || hash != CodeHash(code) {
		t.Errorf("unexpected result %v, %v", hash, err)
	}
}

func TestCache_RejectedCodeIsNotStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := contracts.NewMockCodeStore(ctrl)
	cache := newTestCache(t, store)
	schedule := contracts.DefaultSchedule()

	meter := gas.NewMeter(10_000, contracts.NewBalance(1))
	if _, err := cache.Save([]byte("garbage"), meter, &schedule); !errors.Is(err, wasm.ErrMalformedModule) {
		t.Errorf("expected malformed module error, got %v", err)
	}
	if meter.Spent() != 7 {
		t.Errorf("rejected code must still be paid for, spent %d", meter.Spent())
	}
}

func TestCache_LoadUnknownCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := contracts.NewMockCodeStore(ctrl)
	cache := newTestCache(t, store)
	schedule := contracts.DefaultSchedule()

	store.EXPECT().GetPrefabModule(contracts.Hash{1}).Return(nil, false)
	if _, err := cache.Load(contracts.Hash{1}, &schedule); !errors.Is(err, contracts.ErrCodeNotFound) {
		t.Errorf("expected code not found, got %v", err)
	}
}

func TestCache_LoadUsesCurrentModuleWithoutPreparing(t *testing.T) {
	tests := map[string]struct {
		cached, current uint32
	}{
		"same version":  {cached: 2, current: 2},
		"newer version": {cached: 3, current: 2},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := contracts.NewMockCodeStore(ctrl)
			cache := newTestCache(t, store)
			schedule := contracts.DefaultSchedule()
			schedule.Version = test.current
			prefab := &contracts.PrefabModule{ScheduleVersion: test.cached}

			store.EXPECT().GetPrefabModule(contracts.Hash{1}).Return(prefab, true).Times(1)

			for i := 0; i < 2; i++ {
				got, err := cache.Load(contracts.Hash{1}, &schedule)
				if err != nil || got != prefab {
					t.Errorf("unexpected result %v, %v", got, err)
				}
			}
		})
	}
}

func TestCache_LoadReinstrumentsOutdatedModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := contracts.NewMockCodeStore(ctrl)
	cache := newTestCache(t, store)
	schedule := contracts.DefaultSchedule()
	schedule.Version = 2
	code := contractCode(1)
	hash := CodeHash(code)

	store.EXPECT().GetPrefabModule(hash).Return(&contracts.PrefabModule{ScheduleVersion: 1}, true)
	store.EXPECT().GetPristineCode(hash).Return(code, true)
	store.EXPECT().PutPrefabModule(hash, gomock.Any()).Do(func(_ contracts.Hash, prefab *contracts.PrefabModule) {
		if prefab.ScheduleVersion != 2 {
			t.Errorf("stored module has version %d", prefab.ScheduleVersion)
		}
	})

	prefab, err := cache.Load(hash, &schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefab.ScheduleVersion != 2 || len(prefab.Code) == 0 {
		t.Errorf("unexpected module %+v", prefab)
	}

	// The upgraded module is served from memory from now on.
	if again, err := cache.Load(hash, &schedule); err != nil || again != prefab {
		t.Errorf("upgraded module not cached")
	}
}

func TestCache_LoadOutdatedModuleWithoutPristineCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := contracts.NewMockCodeStore(ctrl)
	cache := newTestCache(t, store)
	schedule := contracts.DefaultSchedule()
	schedule.Version = 2

	store.EXPECT().GetPrefabModule(contracts.Hash{1}).Return(&contracts.PrefabModule{ScheduleVersion: 1}, true)
	store.EXPECT().GetPristineCode(contracts.Hash{1}).Return(nil, false)

	if _, err := cache.Load(contracts.Hash{1}, &schedule); !errors.Is(err, contracts.ErrPristineCodeNotFound) {
		t.Errorf("expected pristine code not found, got %v", err)
	}
}

func TestCache_SaveThenLoadFromLedger(t *testing.T) {
	l := ledger.NewInMemory(contracts.NewBalance(1))
	schedule := contracts.DefaultSchedule()
	code := contractCode(42)

	writer, err := NewCache(l, noImports{}, -1)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	first, err := writer.Save(code, gas.NewMeter(10_000, contracts.NewBalance(1)), &schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := writer.Save(code, gas.NewMeter(10_000, contracts.NewBalance(1)), &schedule)
	if err != nil || first != second {
		t.Fatalf("identical code got different hashes %v and %v (%v)", first, second, err)
	}

	reader, err := NewCache(l, noImports{}, 0)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	prefab, err := reader.Load(first, &schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := prepare.Prepare(code, &schedule, noImports{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(want.Code, prefab.Code) {
		t.Errorf("loaded module differs from prepared module")
	}
	if pristine, found := l.GetPristineCode(first); !found || !bytes.Equal(pristine, code) {
		t.Errorf("pristine code not stored")
	}
}
