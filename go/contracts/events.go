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

// Event is an event emitted by the contract system.
type Event interface {
	EventName() string
}

// TransferEvent is emitted for every value transfer between two distinct
// accounts made by a successful call or instantiation.
type TransferEvent struct {
	From, To AccountId
	Value    Balance
}

// InstantiatedEvent is emitted when a contract is created.
type InstantiatedEvent struct {
	Owner, Contract AccountId
}

// CodeStoredEvent is emitted when code passes admission.
type CodeStoredEvent struct {
	CodeHash Hash
}

// ScheduleUpdatedEvent is emitted when a new schedule is installed.
type ScheduleUpdatedEvent struct {
	Version uint32
}

// DispatchedEvent reports the outcome of a call dispatched by a contract.
type DispatchedEvent struct {
	Origin  AccountId
	Success bool
}

// ContractExecutionEvent is an event deposited by a contract.
type ContractExecutionEvent struct {
	Contract AccountId
	Data     []byte
}

// EvictedEvent is emitted when a contract is evicted for not paying rent.
// Tombstone tells whether a tombstone was left behind.
type EvictedEvent struct {
	Contract  AccountId
	Tombstone bool
}

func (TransferEvent) EventName() string          { return "Transfer" }
func (InstantiatedEvent) EventName() string      { return "Instantiated" }
func (CodeStoredEvent) EventName() string        { return "CodeStored" }
func (ScheduleUpdatedEvent) EventName() string   { return "ScheduleUpdated" }
func (DispatchedEvent) EventName() string        { return "Dispatched" }
func (ContractExecutionEvent) EventName() string { return "ContractExecution" }
func (EvictedEvent) EventName() string           { return "Evicted" }
