// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package codecache stores uploaded contract code together with its
// instrumented form, keyed by the hash of the original code.
package codecache

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/prepare"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/blake2b"
)

var (
	cacheHitCounter     = metrics.NewRegisteredCounter("contracts/codecache/hit", nil)
	cacheMissCounter    = metrics.NewRegisteredCounter("contracts/codecache/miss", nil)
	reinstrumentCounter = metrics.NewRegisteredCounter("contracts/codecache/reinstrument", nil)
	rejectedCounter     = metrics.NewRegisteredCounter("contracts/codecache/rejected", nil)
)

// defaultCacheSize is the number of prepared modules retained in memory if
// no size is configured.
const defaultCacheSize = 1024

// PutCodeToken charges for storing code of the given length in bytes.
type PutCodeToken uint64

func (t PutCodeToken) Calculate(schedule *contracts.Schedule) contracts.Gas {
	return gas.SaturatingMul(schedule.PutCodePerByteCost, contracts.Gas(t))
}

// CodeHash is the content address of a piece of original code.
func CodeHash(code []byte) contracts.Hash {
	return blake2b.Sum256(code)
}

// Cache provides the admission of new code and the loading of prepared
// modules. Prepared modules are kept in an in-memory LRU cache in front of
// the code store. Modules returned by the cache are shared and must not be
// modified.
type Cache struct {
	store   contracts.CodeStore
	env     prepare.Environment
	prefabs *lru.Cache[contracts.Hash, *contracts.PrefabModule]
}

// NewCache creates a code cache on top of the given store. If size is 0 a
// default size is used, if it is negative no modules are retained in memory.
func NewCache(store contracts.CodeStore, env prepare.Environment, size int) (*Cache, error) {
	if size == 0 {
		size = defaultCacheSize
	}
	var prefabs *lru.Cache[contracts.Hash, *contracts.PrefabModule]
	if size > 0 {
		var err error
		prefabs, err = lru.New[contracts.Hash, *contracts.PrefabModule](size)
		if err != nil {
			return nil, err
		}
	}
	return &Cache{
		store:   store,
		env:     env,
		prefabs: prefabs,
	}, nil
}

// Save charges for, prepares and stores the given code, returning its hash.
// Storing code that is already present has no effect.
func (c *Cache) Save(code []byte, meter *gas.Meter, schedule *contracts.Schedule) (contracts.Hash, error) {
	if err := gas.Charge[*contracts.Schedule](meter, schedule, PutCodeToken(len(code))); err != nil {
		return contracts.Hash{}, err
	}
	prefab, err := prepare.Prepare(code, schedule, c.env)
	if err != nil {
		rejectedCounter.Inc(1)
		log.Debug("Rejected contract code", "size", len(code), "err", err)
		return contracts.Hash{}, err
	}

	hash := CodeHash(code)
	if _, found := c.store.GetPristineCode(hash); found {
		return hash, nil
	}
	c.store.PutPristineCode(hash, code)
	c.store.PutPrefabModule(hash, prefab)
	c.remember(hash, prefab)
	log.Debug("Stored contract code", "hash", hash, "size", len(code), "prepared", len(prefab.Code))
	return hash, nil
}

// Load fetches the prepared module of the given code. If it was prepared
// under an older schedule it is prepared again from the original code and
// the stored module is replaced.
func (c *Cache) Load(hash contracts.Hash, schedule *contracts.Schedule) (*contracts.PrefabModule, error) {
	prefab, found := c.lookup(hash)
	if !found {
		return nil, contracts.ErrCodeNotFound
	}
	if prefab.ScheduleVersion >= schedule.Version {
		return prefab, nil
	}

	original, found := c.store.GetPristineCode(hash)
	if !found {
		return nil, contracts.ErrPristineCodeNotFound
	}
	prefab, err := prepare.Prepare(original, schedule, c.env)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare code %v for schedule %d: %w", hash, schedule.Version, err)
	}
	c.store.PutPrefabModule(hash, prefab)
	c.remember(hash, prefab)
	reinstrumentCounter.Inc(1)
	log.Debug("Re-instrumented contract code", "hash", hash, "version", schedule.Version)
	return prefab, nil
}

func (c *Cache) lookup(hash contracts.Hash) (*contracts.PrefabModule, bool) {
	if c.prefabs != nil {
		if prefab, found := c.prefabs.Get(hash); found {
			cacheHitCounter.Inc(1)
			return prefab, true
		}
	}
	cacheMissCounter.Inc(1)
	prefab, found := c.store.GetPrefabModule(hash)
	if found {
		c.remember(hash, prefab)
	}
	return prefab, found
}

func (c *Cache) remember(hash contracts.Hash, prefab *contracts.PrefabModule) {
	if c.prefabs != nil {
		c.prefabs.Add(hash, prefab)
	}
}
