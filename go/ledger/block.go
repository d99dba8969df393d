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
	"golang.org/x/crypto/blake2b"
)

// Block is a plain BlockContext.
type Block struct {
	Number contracts.BlockNumber
	Time   contracts.Moment
	// Seed is the block's source of randomness.
	Seed contracts.Hash
}

func (b *Block) BlockNumber() contracts.BlockNumber {
	return b.Number
}

func (b *Block) Timestamp() contracts.Moment {
	return b.Time
}

func (b *Block) Random(subject []byte) contracts.Hash {
	buffer := make([]byte, 0, len(b.Seed)+len(subject))
	buffer = append(buffer, b.Seed[:]...)
	buffer = append(buffer, subject...)
	return blake2b.Sum256(buffer)
}
