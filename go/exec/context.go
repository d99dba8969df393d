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
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/state"
)

// Config holds the parameters in force for one transaction.
type Config struct {
	Schedule           contracts.Schedule
	ExistentialDeposit contracts.Balance
	TombstoneDeposit   contracts.Balance
	MaxDepth           uint32
	MaxValueSize       uint32
}

// NewConfig combines the current schedule and chain configuration.
func NewConfig(schedule contracts.Schedule, config *contracts.Config, currency contracts.Currency) *Config {
	return &Config{
		Schedule:           schedule,
		ExistentialDeposit: currency.MinimumBalance(),
		TombstoneDeposit:   config.TombstoneDeposit,
		MaxDepth:           config.MaxDepth,
		MaxValueSize:       config.MaxValueSize,
	}
}

// Dependencies are the collaborators shared by all frames of a
// transaction.
type Dependencies struct {
	Vm         Vm
	Loader     Loader
	Block      contracts.BlockContext
	Currency   contracts.Currency
	Rent       RentCollector
	Dispatcher contracts.Dispatcher
}

// Context is an execution frame. The top-level frame owns the root overlay
// of a transaction; nested frames are created for every call and
// instantiation and are merged into their parent only if they succeed.
type Context struct {
	self       contracts.AccountId
	selfTrieId contracts.TrieId
	overlay    *state.Overlay
	depth      uint32
	deferred   []DeferredAction
	config     *Config
	deps       *Dependencies
}

// NewContext creates the top-level frame of a transaction sent by origin.
func NewContext(origin contracts.AccountId, config *Config, db state.AccountDb, deps Dependencies) *Context {
	return &Context{
		self:    origin,
		overlay: state.NewOverlay(db),
		config:  config,
		deps:    &deps,
	}
}

func (c *Context) nested(dest contracts.AccountId, trieId contracts.TrieId) *Context {
	return &Context{
		self:       dest,
		selfTrieId: trieId,
		overlay:    state.NewOverlay(c.overlay),
		depth:      c.depth + 1,
		config:     c.config,
		deps:       c.deps,
	}
}

// merge folds the effects of a successful nested frame into this one.
func (c *Context) merge(nested *Context) {
	c.overlay.Commit(nested.overlay.ChangeSet())
	c.deferred = append(c.deferred, nested.deferred...)
}

// Finish returns the accumulated changes and deferred actions of a
// top-level frame.
func (c *Context) Finish() (state.ChangeSet, []DeferredAction) {
	return c.overlay.ChangeSet(), c.deferred
}

// Call invokes dest, transferring value to it, and returns the output of
// its code. Accounts without code only receive the value.
func (c *Context) Call(dest contracts.AccountId, value contracts.Balance, meter *gas.Meter, input []byte) ([]byte, error) {
	if c.depth == c.config.MaxDepth {
		return nil, contracts.ErrMaxDepthReached
	}
	if err := gas.Charge(meter, &c.config.Schedule, callToken); err != nil {
		return nil, err
	}

	var trieId contracts.TrieId
	info := c.deps.Rent.CollectRent(dest)
	if contracts.IsTombstone(info) {
		return nil, contracts.ErrContractEvicted
	}
	if alive := contracts.AsAlive(info); alive != nil {
		trieId = alive.TrieId
	}

	nested := c.nested(dest, trieId)
	if !value.IsZero() {
		if err := transfer(meter, TransferCauseCall, c.self, dest, value, nested); err != nil {
			return nil, err
		}
	}

	var output []byte
	if codeHash, found := nested.overlay.GetCodeHash(dest); found {
		executable, err := c.deps.Loader.LoadMain(codeHash)
		if err != nil {
			return nil, err
		}
		output, err = c.deps.Vm.Execute(executable, nested.callContext(c.self, value), input, meter)
		if err != nil {
			return nil, err
		}
	}

	c.merge(nested)
	return output, nil
}

// Instantiate creates a contract running the given code, endows it and
// runs its deploy entrypoint.
func (c *Context) Instantiate(endowment contracts.Balance, meter *gas.Meter, codeHash contracts.Hash, input []byte) (contracts.AccountId, []byte, error) {
	if c.depth == c.config.MaxDepth {
		return contracts.AccountId{}, nil, contracts.ErrMaxDepthReached
	}
	if err := gas.Charge(meter, &c.config.Schedule, instantiateToken); err != nil {
		return contracts.AccountId{}, nil, err
	}

	dest := ContractAddress(codeHash, input, c.self)
	nested := c.nested(dest, nil)
	if err := nested.overlay.CreateContract(dest, codeHash); err != nil {
		return contracts.AccountId{}, nil, err
	}
	if err := transfer(meter, TransferCauseInstantiate, c.self, dest, endowment, nested); err != nil {
		return contracts.AccountId{}, nil, err
	}

	executable, err := c.deps.Loader.LoadInit(codeHash)
	if err != nil {
		return contracts.AccountId{}, nil, err
	}
	output, err := c.deps.Vm.Execute(executable, nested.callContext(c.self, endowment), input, meter)
	if err != nil {
		return contracts.AccountId{}, nil, err
	}

	// The deploy code may have sent away the endowment.
	if nested.overlay.GetBalance(dest).Lt(c.config.ExistentialDeposit) {
		return contracts.AccountId{}, nil, fmt.Errorf("%w: %v holds %v after deploy", contracts.ErrInsufficientRemaining, dest, nested.overlay.GetBalance(dest))
	}

	nested.deferred = append(nested.deferred, DepositEvent{
		Event: contracts.InstantiatedEvent{Owner: c.self, Contract: dest},
	})
	c.merge(nested)
	return dest, output, nil
}
