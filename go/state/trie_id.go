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
	"encoding/binary"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"golang.org/x/crypto/blake2b"
)

// childStoragePrefix marks trie ids of default child storage subtrees.
const childStoragePrefix = ":child_storage:default:"

// NewTrieId derives the storage subtree id of a contract from its account
// and a globally unique counter value.
func NewTrieId(account contracts.AccountId, counter uint64) contracts.TrieId {
	seed := make([]byte, 0, len(account)+8)
	seed = append(seed, account[:]...)
	seed = binary.LittleEndian.AppendUint64(seed, counter)
	hash := blake2b.Sum256(seed)

	res := make(contracts.TrieId, 0, len(childStoragePrefix)+len(hash))
	res = append(res, childStoragePrefix...)
	return append(res, hash[:]...)
}

// HashStorageKey maps a contract storage key to its location in the
// contract's subtree.
func HashStorageKey(key contracts.StorageKey) contracts.Hash {
	return blake2b.Sum256(key[:])
}
