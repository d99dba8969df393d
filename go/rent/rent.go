// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rent

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
)

var (
	paymentCounter   = metrics.NewRegisteredCounter("contracts/rent/payments", nil)
	evictionCounter  = metrics.NewRegisteredCounter("contracts/rent/evictions", nil)
	tombstoneCounter = metrics.NewRegisteredCounter("contracts/rent/tombstones", nil)
)

// Outcome is the result of settling the rent of a contract.
type Outcome int

const (
	// Exempted means no rent was due.
	Exempted Outcome = iota
	// Ok means the contract can afford its rent.
	Ok
	// Evicted means the contract was replaced by a tombstone or removed.
	Evicted
)

func (o Outcome) String() string {
	switch o {
	case Exempted:
		return "exempted"
	case Ok:
		return "ok"
	case Evicted:
		return "evicted"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Manager charges contracts for the storage they occupy. Rent is settled
// lazily whenever a contract is called, or when someone claims the
// surcharge of an overdue contract.
type Manager struct {
	config    *contracts.Config
	currency  contracts.Currency
	contracts contracts.ContractStore
	storage   contracts.ChildStorage
	block     contracts.BlockContext
	events    contracts.EventSink
	payments  contracts.ImbalanceHandler
}

// NewManager creates a rent manager. Rent payments are handed to payments.
func NewManager(
	config *contracts.Config,
	currency contracts.Currency,
	contractStore contracts.ContractStore,
	storage contracts.ChildStorage,
	block contracts.BlockContext,
	events contracts.EventSink,
	payments contracts.ImbalanceHandler,
) *Manager {
	return &Manager{
		config:    config,
		currency:  currency,
		contracts: contractStore,
		storage:   storage,
		block:     block,
		events:    events,
		payments:  payments,
	}
}

// CollectRent charges the rent due by the contract at account and returns
// its record afterwards. The result is nil if there is no contract or it
// got evicted without leaving a tombstone.
func (m *Manager) CollectRent(account contracts.AccountId) contracts.ContractInfo {
	_, info := m.TryEvictOrAndPayRent(account, 0, true)
	return info
}

// TryEvict evicts the contract at account if it cannot pay its rent,
// evaluated handicap blocks in the past. Rent is not charged otherwise.
func (m *Manager) TryEvict(account contracts.AccountId, handicap contracts.BlockNumber) Outcome {
	outcome, _ := m.TryEvictOrAndPayRent(account, handicap, false)
	return outcome
}

// TryEvictOrAndPayRent computes the rent due by the contract at account
// since it was last charged and evicts it if it cannot afford it. If
// shouldPay is set, affordable rent is withdrawn.
func (m *Manager) TryEvictOrAndPayRent(
	account contracts.AccountId,
	handicap contracts.BlockNumber,
	shouldPay bool,
) (Outcome, contracts.ContractInfo) {
	info := m.contracts.GetContractInfo(account)
	alive := contracts.AsAlive(info)
	if alive == nil {
		return Exempted, info
	}

	current := m.block.BlockNumber()
	effective := current - min(current, handicap)
	if effective <= alive.DeductBlock {
		return Exempted, info
	}
	blocksPassed := uint64(effective - alive.DeductBlock)

	balance := m.currency.FreeBalance(account)
	feePerBlock := m.feePerBlock(alive.StorageSize, balance)
	if feePerBlock.IsZero() {
		return Exempted, info
	}

	subsistence := m.currency.MinimumBalance().SaturatingAdd(m.config.TombstoneDeposit)
	if balance.Lt(subsistence) {
		// Too poor to leave a tombstone behind. The remaining funds are paid
		// like rent.
		if imbalance := m.currency.MakeFreeBalanceBe(account, contracts.Balance{}); imbalance.IsNegative() {
			m.payments.OnUnbalanced(contracts.NewNegativeImbalance(imbalance.Peek()))
		}
		m.contracts.RemoveContractInfo(account)
		m.storage.DeleteAll(alive.TrieId)
		m.evicted(account, false)
		return Evicted, nil
	}

	dues := feePerBlock.SaturatingMul(contracts.NewBalance(blocksPassed))
	budget := alive.RentAllowance.Min(balance.SaturatingSub(subsistence))
	insufficient := budget.Lt(dues)
	duesLimited := dues.Min(budget)
	canWithdraw := m.currency.EnsureCanWithdraw(account, duesLimited, contracts.WithdrawFee, balance.SaturatingSub(duesLimited)) == nil

	var paid contracts.Balance
	if canWithdraw && (insufficient || shouldPay) {
		imbalance, err := m.currency.Withdraw(account, duesLimited, contracts.WithdrawFee, contracts.KeepAlive)
		if err != nil {
			// The amount stays above the subsistence threshold and was checked.
			panic(fmt.Sprintf("failed to withdraw checked rent of %v from %v: %v", duesLimited, account, err))
		}
		paid = imbalance.Peek()
		m.payments.OnUnbalanced(imbalance)
		paymentCounter.Inc(1)
	}

	if insufficient || !canWithdraw {
		tombstone := contracts.NewTombstone(m.storage.Root(alive.TrieId), alive.StorageSize, alive.CodeHash)
		m.contracts.SetContractInfo(account, tombstone)
		m.storage.DeleteAll(alive.TrieId)
		m.evicted(account, true)
		return Evicted, tombstone
	}

	if !shouldPay {
		return Ok, info
	}
	updated := alive.Clone()
	updated.RentAllowance = updated.RentAllowance.SaturatingSub(paid)
	updated.DeductBlock = current
	m.contracts.SetContractInfo(account, updated)
	return Ok, updated
}

// feePerBlock is the rent for the part of the storage not covered by the
// balance.
func (m *Manager) feePerBlock(storageSize uint32, balance contracts.Balance) contracts.Balance {
	freeStorage, ok := balance.CheckedDiv(m.config.RentDepositOffset)
	if !ok {
		freeStorage = contracts.Balance{}
	}
	effectiveSize := contracts.NewBalance(uint64(storageSize)).SaturatingSub(freeStorage)
	fee, ok := effectiveSize.CheckedMul(m.config.RentByteFee)
	if !ok {
		return contracts.MaxBalance
	}
	return fee
}

func (m *Manager) evicted(account contracts.AccountId, tombstone bool) {
	log.Debug("Evicted contract", "account", account, "tombstone", tombstone)
	evictionCounter.Inc(1)
	if tombstone {
		tombstoneCounter.Inc(1)
	}
	m.events.DepositEvent(nil, contracts.EvictedEvent{Contract: account, Tombstone: tombstone})
}
