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

import "fmt"

// Config holds the chain constants governing contract execution and rent.
// Unlike the Schedule it is not versioned and not stored on the ledger.
type Config struct {
	// MaxDepth is the maximum nesting of calls and instantiations.
	MaxDepth uint32
	// MaxValueSize is the largest storage value a contract may write.
	MaxValueSize uint32
	// BlockGasLimit bounds the gas bought by all transactions of a block.
	BlockGasLimit Gas
	// GasPrice is the balance charged per unit of gas.
	GasPrice Balance

	// StorageSizeOffset is the storage size a freshly created contract is
	// charged for before writing any value.
	StorageSizeOffset uint32
	// RentByteFee is the price per byte of storage per block.
	RentByteFee Balance
	// RentDepositOffset is the balance that buys one byte of rent-free
	// storage. Must not be zero.
	RentDepositOffset Balance
	// TombstoneDeposit is the balance a contract must hold on top of the
	// minimum balance to be able to leave a tombstone.
	TombstoneDeposit Balance
	// SurchargeReward is paid to whoever triggers an eviction.
	SurchargeReward Balance
	// SignedClaimHandicap is the number of blocks subtracted from the
	// current block when a signed surcharge claim is checked.
	SignedClaimHandicap BlockNumber
}

// DefaultConfig returns the configuration used by tests and tooling when no
// explicit configuration is given.
func DefaultConfig() Config {
	return Config{
		MaxDepth:            32,
		MaxValueSize:        16_384,
		BlockGasLimit:       10_000_000,
		GasPrice:            NewBalance(1),
		StorageSizeOffset:   8,
		RentByteFee:         NewBalance(4),
		RentDepositOffset:   NewBalance(1000),
		TombstoneDeposit:    NewBalance(16),
		SurchargeReward:     NewBalance(150),
		SignedClaimHandicap: 2,
	}
}

// Validate checks the configuration for values that would break rent or
// execution invariants.
func (c *Config) Validate() error {
	if c.RentDepositOffset.IsZero() {
		return fmt.Errorf("%w: rent deposit offset must not be zero", ErrInvalidConfig)
	}
	if c.MaxDepth == 0 {
		return fmt.Errorf("%w: max depth must be positive", ErrInvalidConfig)
	}
	if c.BlockGasLimit == 0 {
		return fmt.Errorf("%w: block gas limit must be positive", ErrInvalidConfig)
	}
	return nil
}
