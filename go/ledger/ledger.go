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
	"encoding/binary"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// Key layout of the ledger. Every table lives under its own prefix.
var (
	balancePrefix  = []byte("qz-balance-")  // balancePrefix + account -> balance
	lockPrefix     = []byte("qz-lock-")     // lockPrefix + account -> locked balance
	contractPrefix = []byte("qz-contract-") // contractPrefix + account -> rlp(contractRecord)
	pristinePrefix = []byte("qz-pristine-") // pristinePrefix + code hash -> pristine code
	prefabPrefix   = []byte("qz-prefab-")   // prefabPrefix + code hash -> rlp(PrefabModule)
	childPrefix    = []byte("qz-child-")    // childPrefix + blake2b(trie id) + key -> value

	accountCounterKey = []byte("qz-account-counter")
	scheduleKey       = []byte("qz-schedule")
	schemaVersionKey  = []byte("qz-schema-version")
)

// schemaVersion is bumped whenever the key layout or record encoding
// changes incompatibly.
const schemaVersion = 1

// Ledger is the persistent state of the contract system kept in a
// key/value store. It provides the Currency, ContractStore, CodeStore, and
// ChildStorage used during execution.
//
// Write failures of the underlying store are fatal.
type Ledger struct {
	db             ethdb.KeyValueStore
	minimumBalance contracts.Balance
}

// New opens a ledger on top of db. Accounts holding less than
// minimumBalance are reaped.
func New(db ethdb.KeyValueStore, minimumBalance contracts.Balance) *Ledger {
	l := &Ledger{db: db, minimumBalance: minimumBalance}
	if version, found := l.get(schemaVersionKey); !found {
		l.put(schemaVersionKey, binary.BigEndian.AppendUint32(nil, schemaVersion))
	} else if got := binary.BigEndian.Uint32(version); got != schemaVersion {
		log.Crit("Unsupported ledger schema", "want", schemaVersion, "got", got)
	}
	return l
}

// NewInMemory creates a ledger on a fresh in-memory store.
func NewInMemory(minimumBalance contracts.Balance) *Ledger {
	return New(memorydb.New(), minimumBalance)
}

func (l *Ledger) get(key []byte) ([]byte, bool) {
	if ok, err := l.db.Has(key); err != nil || !ok {
		return nil, false
	}
	value, err := l.db.Get(key)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (l *Ledger) put(key, value []byte) {
	if err := l.db.Put(key, value); err != nil {
		log.Crit("Failed to write ledger entry", "key", key, "err", err)
	}
}

func (l *Ledger) delete(key []byte) {
	if err := l.db.Delete(key); err != nil {
		log.Crit("Failed to delete ledger entry", "key", key, "err", err)
	}
}

func (l *Ledger) putRLP(key []byte, value any) {
	data, err := rlp.EncodeToBytes(value)
	if err != nil {
		log.Crit("Failed to encode ledger entry", "key", key, "err", err)
	}
	l.put(key, data)
}

func (l *Ledger) getRLP(key []byte, value any) bool {
	data, found := l.get(key)
	if !found {
		return false
	}
	if err := rlp.DecodeBytes(data, value); err != nil {
		log.Crit("Failed to decode ledger entry", "key", key, "err", err)
	}
	return true
}

func join(prefix []byte, parts ...[]byte) []byte {
	size := len(prefix)
	for _, part := range parts {
		size += len(part)
	}
	res := make([]byte, 0, size)
	res = append(res, prefix...)
	for _, part := range parts {
		res = append(res, part...)
	}
	return res
}

// Schedule returns the schedule in force, or the default schedule if none
// was stored yet.
func (l *Ledger) Schedule() contracts.Schedule {
	var schedule contracts.Schedule
	if !l.getRLP(scheduleKey, &schedule) {
		return contracts.DefaultSchedule()
	}
	return schedule
}

func (l *Ledger) SetSchedule(schedule contracts.Schedule) {
	l.putRLP(scheduleKey, &schedule)
}

// NextAccountCounter increments and returns the counter used for deriving
// trie ids.
func (l *Ledger) NextAccountCounter() uint64 {
	var counter uint64
	if data, found := l.get(accountCounterKey); found {
		counter = binary.BigEndian.Uint64(data)
	}
	if counter == ^uint64(0) {
		panic("account counter exhausted")
	}
	counter++
	l.put(accountCounterKey, binary.BigEndian.AppendUint64(nil, counter))
	return counter
}
