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
)

// contractRecord is the stored form of a ContractInfo.
type contractRecord struct {
	Tombstone     bool
	TombstoneHash contracts.Hash
	TrieId        []byte
	StorageSize   uint32
	CodeHash      contracts.Hash
	RentAllowance contracts.Balance
	DeductBlock   uint64
	LastWrite     uint64
}

func (l *Ledger) GetContractInfo(account contracts.AccountId) contracts.ContractInfo {
	var record contractRecord
	if !l.getRLP(join(contractPrefix, account[:]), &record) {
		return nil
	}
	if record.Tombstone {
		return contracts.TombstoneContractInfo{Hash: record.TombstoneHash}
	}
	return &contracts.AliveContractInfo{
		TrieId:        record.TrieId,
		StorageSize:   record.StorageSize,
		CodeHash:      record.CodeHash,
		RentAllowance: record.RentAllowance,
		DeductBlock:   contracts.BlockNumber(record.DeductBlock),
		LastWrite:     contracts.BlockNumber(record.LastWrite),
	}
}

func (l *Ledger) SetContractInfo(account contracts.AccountId, info contracts.ContractInfo) {
	var record contractRecord
	switch info := info.(type) {
	case contracts.TombstoneContractInfo:
		record.Tombstone = true
		record.TombstoneHash = info.Hash
	case *contracts.AliveContractInfo:
		record.TrieId = info.TrieId
		record.StorageSize = info.StorageSize
		record.CodeHash = info.CodeHash
		record.RentAllowance = info.RentAllowance
		record.DeductBlock = uint64(info.DeductBlock)
		record.LastWrite = uint64(info.LastWrite)
	default:
		panic("unsupported contract info")
	}
	l.putRLP(join(contractPrefix, account[:]), &record)
}

func (l *Ledger) RemoveContractInfo(account contracts.AccountId) {
	l.delete(join(contractPrefix, account[:]))
}
