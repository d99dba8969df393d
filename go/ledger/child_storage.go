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
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"golang.org/x/crypto/blake2b"
)

// childNamespace is the key prefix of all entries of a storage subtree.
func childNamespace(trieId contracts.TrieId) []byte {
	id := blake2b.Sum256(trieId)
	return join(childPrefix, id[:])
}

func (l *Ledger) Get(trieId contracts.TrieId, key contracts.Hash) ([]byte, bool) {
	return l.get(join(childNamespace(trieId), key[:]))
}

func (l *Ledger) Put(trieId contracts.TrieId, key contracts.Hash, value []byte) {
	l.put(join(childNamespace(trieId), key[:]), value)
}

func (l *Ledger) Delete(trieId contracts.TrieId, key contracts.Hash) {
	l.delete(join(childNamespace(trieId), key[:]))
}

// DeleteAll removes every entry of the subtree.
func (l *Ledger) DeleteAll(trieId contracts.TrieId) {
	namespace := childNamespace(trieId)
	var keys [][]byte
	it := l.db.NewIterator(namespace, nil)
	for it.Next() {
		keys = append(keys, append([]byte(nil), it.Key()...))
	}
	it.Release()
	if err := it.Error(); err != nil {
		log.Crit("Failed to iterate child storage", "trie", trieId, "err", err)
	}

	batch := l.db.NewBatch()
	for _, key := range keys {
		if err := batch.Delete(key); err != nil {
			log.Crit("Failed to delete child storage entry", "trie", trieId, "err", err)
		}
	}
	if err := batch.Write(); err != nil {
		log.Crit("Failed to delete child storage", "trie", trieId, "err", err)
	}
}

// Root computes the Merkle-Patricia root of the subtree. Entries are fed
// to the stack trie in ascending key order as the iterator yields them.
func (l *Ledger) Root(trieId contracts.TrieId) contracts.Hash {
	namespace := childNamespace(trieId)
	stack := trie.NewStackTrie(nil)
	it := l.db.NewIterator(namespace, nil)
	defer it.Release()
	for it.Next() {
		value, err := rlp.EncodeToBytes(it.Value())
		if err != nil {
			log.Crit("Failed to encode child storage value", "trie", trieId, "err", err)
		}
		if err := stack.Update(it.Key()[len(namespace):], value); err != nil {
			log.Crit("Failed to hash child storage", "trie", trieId, "err", err)
		}
	}
	if err := it.Error(); err != nil {
		log.Crit("Failed to iterate child storage", "trie", trieId, "err", err)
	}
	return contracts.Hash(stack.Hash())
}
