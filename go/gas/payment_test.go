// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gas

import (
	"errors"
	"testing"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"go.uber.org/mock/gomock"
)

func TestBlockGasCounter_TracksRemainingGas(t *testing.T) {
	counter := NewBlockGasCounter(100)
	counter.Add(30)
	if want, got := contracts.Gas(70), counter.Remaining(); want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
	counter.Add(100)
	if counter.Remaining() != 0 {
		t.Errorf("expected no gas remaining, got %d", counter.Remaining())
	}
	counter.Reset()
	if counter.Spent() != 0 || counter.Remaining() != 100 {
		t.Errorf("reset did not clear the counter")
	}
}

func TestBuyGas_WithdrawsCostAndCreatesMeter(t *testing.T) {
	ctrl := gomock.NewController(t)
	currency := contracts.NewMockCurrency(ctrl)
	payer := contracts.AccountId{1}

	withdrawn := contracts.NewNegativeImbalance(contracts.NewBalance(200))
	currency.EXPECT().Withdraw(payer, contracts.NewBalance(200), contracts.WithdrawFee, contracts.KeepAlive).Return(withdrawn, nil)

	meter, imbalance, err := BuyGas(NewBlockGasCounter(1000), currency, payer, 100, contracts.NewBalance(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meter.Limit() != 100 || meter.GasLeft() != 100 {
		t.Errorf("unexpected meter limits")
	}
	if imbalance != withdrawn {
		t.Errorf("unexpected imbalance %v", imbalance.Peek())
	}
}

func TestBuyGas_RejectsLimitAboveBlockRemainder(t *testing.T) {
	ctrl := gomock.NewController(t)
	currency := contracts.NewMockCurrency(ctrl)

	counter := NewBlockGasCounter(1000)
	counter.Add(950)
	_, _, err := BuyGas(counter, currency, contracts.AccountId{1}, 51, contracts.NewBalance(1))
	if !errors.Is(err, contracts.ErrBlockGasLimitReached) {
		t.Errorf("expected block gas limit error, got %v", err)
	}
}

func TestBuyGas_ReportsOverflowingCost(t *testing.T) {
	ctrl := gomock.NewController(t)
	currency := contracts.NewMockCurrency(ctrl)

	_, _, err := BuyGas(NewBlockGasCounter(1000), currency, contracts.AccountId{1}, 10, contracts.MaxBalance)
	if !errors.Is(err, contracts.ErrGasCostOverflow) {
		t.Errorf("expected overflow error, got %v", err)
	}
}

func TestBuyGas_PropagatesWithdrawFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	currency := contracts.NewMockCurrency(ctrl)
	injected := errors.New("injected")
	currency.EXPECT().Withdraw(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(contracts.NegativeImbalance{}, injected)

	_, _, err := BuyGas(NewBlockGasCounter(1000), currency, contracts.AccountId{1}, 10, contracts.NewBalance(1))
	if !errors.Is(err, contracts.ErrWithdrawFailed) || !errors.Is(err, injected) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestBuyGas_ZeroPriceWithdrawsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	currency := contracts.NewMockCurrency(ctrl)
	currency.EXPECT().Withdraw(gomock.Any(), contracts.Balance{}, gomock.Any(), gomock.Any()).Return(contracts.NegativeImbalance{}, nil)

	if _, _, err := BuyGas(NewBlockGasCounter(1000), currency, contracts.AccountId{1}, 10, contracts.Balance{}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRefundUnusedGas_RefundsLeftoverAndPaysSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	currency := contracts.NewMockCurrency(ctrl)
	sink := contracts.NewMockImbalanceHandler(ctrl)
	payer := contracts.AccountId{1}

	meter := NewMeter(100, contracts.NewBalance(2))
	if err := Charge(meter, struct{}{}, constantToken(30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	currency.EXPECT().DepositCreating(payer, contracts.NewBalance(140)).Return(contracts.NewPositiveImbalance(contracts.NewBalance(140)))
	sink.EXPECT().OnUnbalanced(contracts.NewNegativeImbalance(contracts.NewBalance(60)))

	counter := NewBlockGasCounter(1000)
	RefundUnusedGas(counter, currency, payer, meter, contracts.NewNegativeImbalance(contracts.NewBalance(200)), sink)

	if want, got := contracts.Gas(30), counter.Spent(); want != got {
		t.Errorf("unexpected block gas, wanted %d, got %d", want, got)
	}
}

func TestRefundUnusedGas_FullRefundLeavesSinkUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	currency := contracts.NewMockCurrency(ctrl)
	sink := contracts.NewMockImbalanceHandler(ctrl)
	payer := contracts.AccountId{1}

	currency.EXPECT().DepositCreating(payer, contracts.NewBalance(100)).Return(contracts.NewPositiveImbalance(contracts.NewBalance(100)))

	counter := NewBlockGasCounter(1000)
	RefundUnusedGas(counter, currency, payer, NewMeter(100, contracts.NewBalance(1)), contracts.NewNegativeImbalance(contracts.NewBalance(100)), sink)
	if counter.Spent() != 0 {
		t.Errorf("unexpected block gas %d", counter.Spent())
	}
}
