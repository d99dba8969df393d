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
	"errors"
	"testing"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/gas"
	"github.com/Fantom-foundation/Quartz/go/ledger"
)

func TestTransfer_FeeDependsOnKind(t *testing.T) {
	schedule := contracts.DefaultSchedule()
	tests := map[string]struct {
		cause        TransferCause
		fundReceiver bool
		want         contracts.Gas
	}{
		"plain transfer": {
			cause:        TransferCauseCall,
			fundReceiver: true,
			want:         schedule.TransferCost,
		},
		"account creation": {
			cause: TransferCauseCall,
			want:  schedule.AccountCreateCost,
		},
		"instantiation": {
			cause: TransferCauseInstantiate,
			want:  schedule.InstantiateCost,
		},
		"instantiation of funded account": {
			cause:        TransferCauseInstantiate,
			fundReceiver: true,
			want:         schedule.InstantiateCost,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			env.ledger.Mint(alice, contracts.NewBalance(1000))
			if test.fundReceiver {
				env.ledger.Mint(bob, contracts.NewBalance(1000))
			}
			ctx := env.newContext(alice)
			meter := gas.NewMeter(1000, contracts.Balance{})
			if err := transfer(meter, test.cause, alice, bob, contracts.NewBalance(100), ctx); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want, got := test.want, meter.Spent(); want != got {
				t.Errorf("unexpected fee, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestTransfer_Failures(t *testing.T) {
	tests := map[string]struct {
		setup func(l *ledger.Ledger)
		value contracts.Balance
		gas   contracts.Gas
		want  error
	}{
		"not enough gas for fee": {
			value: contracts.NewBalance(100),
			gas:   10,
			want:  contracts.ErrOutOfGas,
		},
		"balance too low": {
			value: contracts.NewBalance(1001),
			gas:   1000,
			want:  contracts.ErrBalanceTooLow,
		},
		"value too low to create": {
			value: contracts.NewBalance(existentialDeposit - 1),
			gas:   1000,
			want:  contracts.ErrValueTooLowToCreate,
		},
		"locked funds": {
			setup: func(l *ledger.Ledger) {
				l.Lock(alice, contracts.NewBalance(950))
			},
			value: contracts.NewBalance(100),
			gas:   1000,
			want:  ledger.ErrLiquidityRestrictions,
		},
		"receiver overflows": {
			setup: func(l *ledger.Ledger) {
				l.Mint(bob, contracts.MaxBalance.SaturatingSub(contracts.NewBalance(50)))
			},
			value: contracts.NewBalance(100),
			gas:   1000,
			want:  contracts.ErrDestinationBalanceTooHigh,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			env.ledger.Mint(alice, contracts.NewBalance(1000))
			if test.setup != nil {
				test.setup(env.ledger)
			}
			ctx := env.newContext(alice)
			err := transfer(gas.NewMeter(test.gas, contracts.Balance{}), TransferCauseCall, alice, bob, test.value, ctx)
			if !errors.Is(err, test.want) {
				t.Fatalf("unexpected error, wanted %v, got %v", test.want, err)
			}
			if len(ctx.deferred) != 0 {
				t.Errorf("failed transfer recorded %v", ctx.deferred)
			}
		})
	}
}

func TestTransfer_ToSelfChangesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.ledger.Mint(alice, contracts.NewBalance(1000))
	ctx := env.newContext(alice)

	if err := transfer(gas.NewMeter(1000, contracts.Balance{}), TransferCauseCall, alice, alice, contracts.NewBalance(100), ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := contracts.NewBalance(1000), ctx.overlay.GetBalance(alice); want != got {
		t.Errorf("unexpected balance, wanted %v, got %v", want, got)
	}
	if len(ctx.deferred) != 0 {
		t.Errorf("transfer to self recorded %v", ctx.deferred)
	}
}

func TestTransferKind_String(t *testing.T) {
	tests := map[TransferKind]string{
		TransferKindTransfer:      "transfer",
		TransferKindAccountCreate: "account-create",
		TransferKindInstantiate:   "instantiate",
		TransferKind(7):           "TransferKind(7)",
	}
	for kind, want := range tests {
		if got := kind.String(); want != got {
			t.Errorf("unexpected name, wanted %s, got %s", want, got)
		}
	}
}

func TestContractAddress_DependsOnAllInputs(t *testing.T) {
	base := ContractAddress(codeA, []byte{1}, alice)
	if base != ContractAddress(codeA, []byte{1}, alice) {
		t.Errorf("address derivation is not deterministic")
	}
	variants := map[string]contracts.AccountId{
		"code":    ContractAddress(codeB, []byte{1}, alice),
		"input":   ContractAddress(codeA, []byte{2}, alice),
		"creator": ContractAddress(codeA, []byte{1}, bob),
	}
	for name, address := range variants {
		if address == base {
			t.Errorf("address does not depend on %s", name)
		}
	}
}
