// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package exec

import (
	"github.com/Fantom-foundation/Quartz/go/contracts"
	"golang.org/x/crypto/blake2b"
)

// ContractAddress derives the address of a contract instantiated by creator
// from the given code and input.
func ContractAddress(codeHash contracts.Hash, input []byte, creator contracts.AccountId) contracts.AccountId {
	inputHash := blake2b.Sum256(input)
	buf := make([]byte, 0, len(codeHash)+len(inputHash)+len(creator))
	buf = append(buf, codeHash[:]...)
	buf = append(buf, inputHash[:]...)
	buf = append(buf, creator[:]...)
	return contracts.AccountId(blake2b.Sum256(buf))
}
