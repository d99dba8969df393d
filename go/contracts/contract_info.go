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

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// ContractInfo is the per-account contract record. It is either an
// *AliveContractInfo or a TombstoneContractInfo.
type ContractInfo interface {
	isContractInfo()
}

// AliveContractInfo describes a live contract.
type AliveContractInfo struct {
	// TrieId identifies the contract's storage subtree.
	TrieId TrieId
	// StorageSize is the approximate number of bytes of storage the
	// contract pays rent for.
	StorageSize uint32
	CodeHash    Hash
	// RentAllowance is the remaining budget rent may be drawn from.
	RentAllowance Balance
	// DeductBlock is the last block rent was paid for.
	DeductBlock BlockNumber
	// LastWrite is the last block the contract's storage was changed in,
	// zero if it was never written.
	LastWrite BlockNumber
}

func (*AliveContractInfo) isContractInfo() {}

// Clone returns a deep copy of the record.
func (a *AliveContractInfo) Clone() *AliveContractInfo {
	res := *a
	res.TrieId = append(TrieId(nil), a.TrieId...)
	return &res
}

// Equal compares two records field by field.
func (a *AliveContractInfo) Equal(o *AliveContractInfo) bool {
	if a == nil || o == nil {
		return a == o
	}
	return string(a.TrieId) == string(o.TrieId) &&
		a.StorageSize == o.StorageSize &&
		a.CodeHash == o.CodeHash &&
		a.RentAllowance == o.RentAllowance &&
		a.DeductBlock == o.DeductBlock &&
		a.LastWrite == o.LastWrite
}

// TombstoneContractInfo is the fingerprint left behind by an evicted
// contract. A tombstone is terminal, its account can no longer be called
// nor can a contract be created at its address.
type TombstoneContractInfo struct {
	Hash Hash
}

func (TombstoneContractInfo) isContractInfo() {}

// NewTombstone computes the fingerprint of an evicted contract from its
// storage root, storage size, and code hash.
func NewTombstone(storageRoot Hash, storageSize uint32, codeHash Hash) TombstoneContractInfo {
	buffer := make([]byte, 0, 2*len(Hash{})+4)
	buffer = append(buffer, storageRoot[:]...)
	buffer = binary.LittleEndian.AppendUint32(buffer, storageSize)
	buffer = append(buffer, codeHash[:]...)
	return TombstoneContractInfo{Hash: blake2b.Sum256(buffer)}
}

// AsAlive returns the alive record or nil if info is absent or a tombstone.
func AsAlive(info ContractInfo) *AliveContractInfo {
	alive, _ := info.(*AliveContractInfo)
	return alive
}

// IsTombstone reports whether info is a tombstone.
func IsTombstone(info ContractInfo) bool {
	_, ok := info.(TombstoneContractInfo)
	return ok
}

// PrefabModule is instrumented code ready to be handed to a sandbox.
type PrefabModule struct {
	// ScheduleVersion is the version of the schedule the code was
	// instrumented with.
	ScheduleVersion uint32
	// Initial and Maximum are the page limits of the imported memory.
	Initial uint32
	Maximum uint32
	Code    []byte
}
