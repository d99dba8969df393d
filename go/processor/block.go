// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package processor

import (
	"fmt"
	"time"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/exec"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/host"
	"github.com/Fantom-foundation/Quartz/go/rent"
	"github.com/Fantom-foundation/Quartz/go/state"
	"github.com/ethereum/go-ethereum/log"
)

// Block executes the transactions of a single block.
type Block struct {
	module     *Module
	context    contracts.BlockContext
	gasCounter *gas.BlockGasCounter
}

// GasSpent is the gas consumed by the transactions of the block so far.
func (b *Block) GasSpent() contracts.Gas {
	return b.gasCounter.Spent()
}

func (b *Block) rentManager() *rent.Manager {
	m := b.module
	return rent.NewManager(&m.config, m.ledger, m.ledger, m.ledger, b.context, m.events, m.rentPayments)
}

// PutCode prepares and stores code, paid by origin, and returns its hash.
func (b *Block) PutCode(origin contracts.AccountId, gasLimit contracts.Gas, code []byte) (contracts.Hash, error) {
	m := b.module
	putCodeMeter.Mark(1)
	meter, imbalance, err := gas.BuyGas(b.gasCounter, m.ledger, origin, gasLimit, m.config.GasPrice)
	if err != nil {
		return contracts.Hash{}, err
	}

	schedule := m.ledger.Schedule()
	hash, err := m.cache.Save(code, meter, &schedule)
	gas.RefundUnusedGas(b.gasCounter, m.ledger, origin, meter, imbalance, m.gasPayments)
	if err != nil {
		failureMeter.Mark(1)
		return contracts.Hash{}, err
	}
	m.events.DepositEvent(nil, contracts.CodeStoredEvent{CodeHash: hash})
	return hash, nil
}

// Call sends value from origin to dest and runs the code of dest, if any,
// with the given input. It returns the output of the code.
func (b *Block) Call(
	origin contracts.AccountId,
	dest contracts.AccountId,
	value contracts.Balance,
	gasLimit contracts.Gas,
	input []byte,
) ([]byte, error) {
	callMeter.Mark(1)
	var output []byte
	err := b.execute(origin, gasLimit, func(ctx *exec.Context, meter *gas.Meter) error {
		var err error
		output, err = ctx.Call(dest, value, meter, input)
		return err
	})
	return output, err
}

// Create instantiates a contract running the stored code with the given
// hash, endowed by origin, and returns its address.
func (b *Block) Create(
	origin contracts.AccountId,
	endowment contracts.Balance,
	gasLimit contracts.Gas,
	codeHash contracts.Hash,
	input []byte,
) (contracts.AccountId, error) {
	createMeter.Mark(1)
	var address contracts.AccountId
	err := b.execute(origin, gasLimit, func(ctx *exec.Context, meter *gas.Meter) error {
		var err error
		address, _, err = ctx.Instantiate(endowment, meter, codeHash, input)
		return err
	})
	return address, err
}

// execute runs a transaction of origin. Its effects are committed only if
// run succeeds, unused gas is refunded in any case.
func (b *Block) execute(
	origin contracts.AccountId,
	gasLimit contracts.Gas,
	run func(*exec.Context, *gas.Meter) error,
) error {
	defer executionTimer.UpdateSince(time.Now())
	m := b.module
	meter, imbalance, err := gas.BuyGas(b.gasCounter, m.ledger, origin, gasLimit, m.config.GasPrice)
	if err != nil {
		return err
	}

	schedule := m.ledger.Schedule()
	store := state.NewDirectStore(m.ledger, m.ledger, m.ledger, b.context, m.config.StorageSizeOffset)
	ctx := exec.NewContext(origin, exec.NewConfig(schedule, &m.config, m.ledger), store, exec.Dependencies{
		Vm:         host.NewWasmVm(&schedule, m.sandbox),
		Loader:     host.NewWasmLoader(m.cache, &schedule),
		Block:      b.context,
		Currency:   m.ledger,
		Rent:       b.rentManager(),
		Dispatcher: m.dispatcher,
	})

	err = run(ctx, meter)
	changes, deferred := ctx.Finish()
	if err == nil {
		store.Commit(changes)
	}
	gas.RefundUnusedGas(b.gasCounter, m.ledger, origin, meter, imbalance, m.gasPayments)
	if err != nil {
		failureMeter.Mark(1)
		log.Debug("Contract transaction failed", "origin", origin, "gas", meter.Spent(), "err", err)
		return err
	}

	for _, action := range deferred {
		switch action := action.(type) {
		case exec.DepositEvent:
			m.events.DepositEvent(action.Topics, action.Event)
		case exec.DispatchRuntimeCall:
			err := m.dispatcher.Dispatch(action.Origin, action.Call)
			if err != nil {
				log.Debug("Dispatched call failed", "origin", action.Origin, "err", err)
			}
			m.events.DepositEvent(nil, contracts.DispatchedEvent{Origin: action.Origin, Success: err == nil})
		default:
			panic(fmt.Sprintf("unknown deferred action %T", action))
		}
	}
	return nil
}

// ClaimSurcharge evicts dest if it can not pay its rent and rewards the
// claimant. A claim is either signed by origin or unsigned, naming the
// block author in auxSender. Signed claims are evaluated a few blocks in
// the past, so only clearly overdue contracts can be evicted by anyone.
func (b *Block) ClaimSurcharge(origin *contracts.AccountId, dest contracts.AccountId, auxSender *contracts.AccountId) error {
	m := b.module
	var rewarded contracts.AccountId
	var handicap contracts.BlockNumber
	switch {
	case origin != nil && auxSender == nil:
		rewarded = *origin
		handicap = m.config.SignedClaimHandicap
	case origin == nil && auxSender != nil:
		rewarded = *auxSender
	default:
		return contracts.ErrInvalidSurchargeClaim
	}

	if b.rentManager().TryEvict(dest, handicap) != rent.Evicted {
		return nil
	}
	surchargeMeter.Mark(1)
	if _, err := m.ledger.DepositIntoExisting(rewarded, m.config.SurchargeReward); err != nil {
		return fmt.Errorf("failed to reward surcharge claim of %v: %w", rewarded, err)
	}
	return nil
}
