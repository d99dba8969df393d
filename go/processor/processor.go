// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package processor provides the entry points of the contract system:
// uploading code, calling and creating contracts, claiming surcharges for
// overdue rent, and updating the schedule.
package processor

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/codecache"
	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/host"
	"github.com/Fantom-foundation/Quartz/go/ledger"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
)

var (
	putCodeMeter   = metrics.NewRegisteredMeter("contracts/processor/putcode", nil)
	callMeter      = metrics.NewRegisteredMeter("contracts/processor/call", nil)
	createMeter    = metrics.NewRegisteredMeter("contracts/processor/create", nil)
	failureMeter   = metrics.NewRegisteredMeter("contracts/processor/failure", nil)
	surchargeMeter = metrics.NewRegisteredMeter("contracts/processor/surcharge", nil)
	executionTimer = metrics.NewRegisteredTimer("contracts/processor/execution", nil)
)

// Ledger is the persistent state the contract system operates on.
type Ledger interface {
	contracts.Currency
	contracts.ContractStore
	contracts.CodeStore
	contracts.ChildStorage
	// Schedule returns the schedule in force.
	Schedule() contracts.Schedule
	SetSchedule(contracts.Schedule)
}

// Options configure a Module. A Ledger is mandatory, and so is a sandbox,
// given either directly or by the name it is registered under.
type Options struct {
	Config  contracts.Config
	Ledger  Ledger
	Sandbox host.Sandbox
	// SandboxName selects a registered sandbox if Sandbox is nil. The
	// sandbox is created with SandboxConfig.
	SandboxName   string
	SandboxConfig any
	// Events receives all events of the contract system.
	Events contracts.EventSink
	// Dispatcher runs calls requested by contracts. Without one, contracts
	// can not dispatch calls.
	Dispatcher contracts.Dispatcher
	// GasPayments and RentPayments receive the fees paid for gas and rent.
	// Fees are burned if no handler is set.
	GasPayments  contracts.ImbalanceHandler
	RentPayments contracts.ImbalanceHandler
	// CodeCacheSize is the number of prepared modules kept in memory, see
	// codecache.NewCache.
	CodeCacheSize int
}

// Module is the contract system bound to a ledger.
type Module struct {
	config       contracts.Config
	ledger       Ledger
	sandbox      host.Sandbox
	cache        *codecache.Cache
	events       contracts.EventSink
	dispatcher   contracts.Dispatcher
	gasPayments  contracts.ImbalanceHandler
	rentPayments contracts.ImbalanceHandler
}

// NewModule creates the contract system described by options.
func NewModule(options Options) (*Module, error) {
	if err := options.Config.Validate(); err != nil {
		return nil, err
	}
	sandbox := options.Sandbox
	if sandbox == nil && options.SandboxName != "" {
		var err error
		if sandbox, err = host.NewSandbox(options.SandboxName, options.SandboxConfig); err != nil {
			return nil, err
		}
	}
	if options.Ledger == nil || sandbox == nil {
		return nil, fmt.Errorf("%w: ledger and sandbox are required", contracts.ErrInvalidConfig)
	}
	cache, err := codecache.NewCache(options.Ledger, host.Environment{}, options.CodeCacheSize)
	if err != nil {
		return nil, err
	}

	module := &Module{
		config:       options.Config,
		ledger:       options.Ledger,
		sandbox:      sandbox,
		cache:        cache,
		events:       options.Events,
		dispatcher:   options.Dispatcher,
		gasPayments:  options.GasPayments,
		rentPayments: options.RentPayments,
	}
	if module.events == nil {
		module.events = &ledger.EventLog{}
	}
	if module.dispatcher == nil {
		module.dispatcher = noDispatcher{}
	}
	if module.gasPayments == nil {
		module.gasPayments = ledger.Burn
	}
	if module.rentPayments == nil {
		module.rentPayments = ledger.Burn
	}
	return module, nil
}

// BeginBlock starts the execution of a block. Transactions of the block
// share its gas limit.
func (m *Module) BeginBlock(context contracts.BlockContext) *Block {
	counter := gas.NewBlockGasCounter(m.config.BlockGasLimit)
	counter.Reset()
	return &Block{module: m, context: context, gasCounter: counter}
}

// UpdateSchedule installs a new schedule. Its version must be greater than
// the version of the schedule in force.
func (m *Module) UpdateSchedule(schedule contracts.Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	current := m.ledger.Schedule()
	if schedule.Version <= current.Version {
		return fmt.Errorf("%w: version %d does not succeed %d", contracts.ErrInvalidScheduleVersion, schedule.Version, current.Version)
	}
	m.ledger.SetSchedule(schedule)
	m.events.DepositEvent(nil, contracts.ScheduleUpdatedEvent{Version: schedule.Version})
	log.Info("Updated contract schedule", "version", schedule.Version)
	return nil
}

var errNoDispatcher = errors.New("no dispatcher configured")

type noDispatcher struct{}

func (noDispatcher) Weight([]byte) (contracts.Gas, error) {
	return 0, errNoDispatcher
}

func (noDispatcher) Dispatch(contracts.AccountId, []byte) error {
	return errNoDispatcher
}
