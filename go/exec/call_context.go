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

// callContext implements Ext for the frame of a single contract
// invocation.
type callContext struct {
	ctx              *Context
	caller           contracts.AccountId
	valueTransferred contracts.Balance
}

func (c *Context) callContext(caller contracts.AccountId, value contracts.Balance) *callContext {
	return &callContext{
		ctx:              c,
		caller:           caller,
		valueTransferred: value,
	}
}

func (c *callContext) GetStorage(key contracts.StorageKey) ([]byte, bool) {
	return c.ctx.overlay.GetStorage(c.ctx.self, c.ctx.selfTrieId, key)
}

func (c *callContext) SetStorage(key contracts.StorageKey, value []byte) error {
	if value == nil {
		c.ctx.overlay.ClearStorage(c.ctx.self, key)
		return nil
	}
	if uint64(len(value)) > uint64(c.ctx.config.MaxValueSize) {
		return contracts.ErrValueTooLarge
	}
	c.ctx.overlay.SetStorage(c.ctx.self, key, value)
	return nil
}

func (c *callContext) Call(to contracts.AccountId, value contracts.Balance, meter *gas.Meter, input []byte) ([]byte, error) {
	return c.ctx.Call(to, value, meter, input)
}

func (c *callContext) Instantiate(codeHash contracts.Hash, endowment contracts.Balance, meter *gas.Meter, input []byte) (contracts.AccountId, []byte, error) {
	return c.ctx.Instantiate(endowment, meter, codeHash, input)
}

func (c *callContext) NoteDispatchCall(call []byte) {
	c.ctx.deferred = append(c.ctx.deferred, DispatchRuntimeCall{
		Origin: c.ctx.self,
		Call:   call,
	})
}

func (c *callContext) DispatchWeight(call []byte) (contracts.Gas, error) {
	return c.ctx.deps.Dispatcher.Weight(call)
}

func (c *callContext) DepositEvent(topics []contracts.Hash, data []byte) {
	c.ctx.deferred = append(c.ctx.deferred, DepositEvent{
		Topics: topics,
		Event:  contracts.ContractExecutionEvent{Contract: c.ctx.self, Data: data},
	})
}

func (c *callContext) Caller() contracts.AccountId {
	return c.caller
}

func (c *callContext) Address() contracts.AccountId {
	return c.ctx.self
}

func (c *callContext) Balance() contracts.Balance {
	return c.ctx.overlay.GetBalance(c.ctx.self)
}

func (c *callContext) ValueTransferred() contracts.Balance {
	return c.valueTransferred
}

func (c *callContext) Now() contracts.Moment {
	return c.ctx.deps.Block.Timestamp()
}

func (c *callContext) BlockNumber() contracts.BlockNumber {
	return c.ctx.deps.Block.BlockNumber()
}

func (c *callContext) MinimumBalance() contracts.Balance {
	return c.ctx.config.ExistentialDeposit
}

func (c *callContext) TombstoneDeposit() contracts.Balance {
	return c.ctx.config.TombstoneDeposit
}

func (c *callContext) Random(subject []byte) contracts.Hash {
	return c.ctx.deps.Block.Random(subject)
}

func (c *callContext) MaxValueSize() uint32 {
	return c.ctx.config.MaxValueSize
}

func (c *callContext) SetRentAllowance(allowance contracts.Balance) {
	c.ctx.overlay.SetRentAllowance(c.ctx.self, allowance)
}

// RentAllowance is unlimited for contracts without a record, which is the
// allowance new records are created with.
func (c *callContext) RentAllowance() contracts.Balance {
	if allowance, found := c.ctx.overlay.GetRentAllowance(c.ctx.self); found {
		return allowance
	}
	return contracts.MaxBalance
}
