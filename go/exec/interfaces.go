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
	"github.com/Fantom-foundation/Quartz/go/gas"
)

//go:generate mockgen -source interfaces.go -destination interfaces_mock.go -package exec

// Ext is the view a running contract has on the chain. Every instance is
// bound to a single frame: the contract's own account, its caller and the
// value transferred with the current invocation.
type Ext interface {
	// GetStorage returns the value stored under key in the contract's
	// storage, or false if there is none.
	GetStorage(key contracts.StorageKey) ([]byte, bool)
	// SetStorage writes value under key. A nil value removes the entry.
	// Values longer than MaxValueSize are rejected.
	SetStorage(key contracts.StorageKey, value []byte) error

	// Call invokes the contract at to, transferring value, in a nested
	// frame using meter.
	Call(to contracts.AccountId, value contracts.Balance, meter *gas.Meter, input []byte) ([]byte, error)
	// Instantiate creates a contract from the given code in a nested frame
	// and returns its address together with the deploy output.
	Instantiate(codeHash contracts.Hash, endowment contracts.Balance, meter *gas.Meter, input []byte) (contracts.AccountId, []byte, error)

	// NoteDispatchCall schedules call for dispatch on behalf of this
	// contract once the transaction completes successfully.
	NoteDispatchCall(call []byte)
	// DispatchWeight returns the fee for dispatching the given call.
	DispatchWeight(call []byte) (contracts.Gas, error)
	// DepositEvent records an event emitted by this contract.
	DepositEvent(topics []contracts.Hash, data []byte)

	Caller() contracts.AccountId
	Address() contracts.AccountId
	Balance() contracts.Balance
	ValueTransferred() contracts.Balance
	Now() contracts.Moment
	BlockNumber() contracts.BlockNumber
	MinimumBalance() contracts.Balance
	TombstoneDeposit() contracts.Balance
	Random(subject []byte) contracts.Hash
	MaxValueSize() uint32

	SetRentAllowance(allowance contracts.Balance)
	RentAllowance() contracts.Balance
}

// Executable is loaded code ready to be run at one of its entrypoints.
type Executable struct {
	Entrypoint string
	Module     *contracts.PrefabModule
}

// Vm runs executables against an Ext.
type Vm interface {
	// Execute runs exec with the given input. A successful run returns the
	// output of the contract. Any error discards the effects of the frame.
	Execute(exec *Executable, ext Ext, input []byte, meter *gas.Meter) ([]byte, error)
}

// Loader resolves code hashes to executables.
type Loader interface {
	LoadInit(codeHash contracts.Hash) (*Executable, error)
	LoadMain(codeHash contracts.Hash) (*Executable, error)
}

// RentCollector settles the rent of a contract before it gets called.
type RentCollector interface {
	// CollectRent charges outstanding rent, possibly evicting the contract,
	// and returns its resulting record. The result is nil for accounts
	// without a contract.
	CollectRent(account contracts.AccountId) contracts.ContractInfo
}
