// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package contracts

//go:generate mockgen -source collaborators.go -destination collaborators_mock.go -package contracts

// ContractStore persists contract records by account.
type ContractStore interface {
	// GetContractInfo returns nil if there is no record for the account.
	GetContractInfo(account AccountId) ContractInfo
	SetContractInfo(account AccountId, info ContractInfo)
	RemoveContractInfo(account AccountId)
	// NextAccountCounter increments and returns the global counter used to
	// derive fresh trie ids.
	NextAccountCounter() uint64
}

// CodeStore holds the two code tables: pristine code as uploaded and the
// prepared module derived from it.
type CodeStore interface {
	GetPristineCode(hash Hash) ([]byte, bool)
	PutPristineCode(hash Hash, code []byte)
	GetPrefabModule(hash Hash) (*PrefabModule, bool)
	PutPrefabModule(hash Hash, module *PrefabModule)
}

// ChildStorage is the keyed store of per-contract storage subtrees. Keys
// are already hashed by the caller.
type ChildStorage interface {
	Get(trieId TrieId, key Hash) ([]byte, bool)
	Put(trieId TrieId, key Hash, value []byte)
	Delete(trieId TrieId, key Hash)
	// DeleteAll removes the whole subtree.
	DeleteAll(trieId TrieId)
	// Root returns a digest committing to the subtree's content.
	Root(trieId TrieId) Hash
}

// BlockContext exposes the block a transaction is executed in.
type BlockContext interface {
	BlockNumber() BlockNumber
	Timestamp() Moment
	// Random returns a seed derived from the block's randomness and the
	// given subject.
	Random(subject []byte) Hash
}

// EventSink records events emitted by the contract system.
type EventSink interface {
	DepositEvent(topics []Hash, event Event)
}

// Dispatcher runs ledger calls requested by contracts once their
// transaction has completed.
type Dispatcher interface {
	// Weight returns the gas fee for the given encoded call or an error if
	// the call cannot be decoded.
	Weight(call []byte) (Gas, error)
	// Dispatch executes the call on behalf of origin.
	Dispatch(origin AccountId, call []byte) error
}
