// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package contracts is a generated GoMock package.
package contracts

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockCurrency is a mock of Currency interface.
type MockCurrency struct {
	ctrl     *gomock.Controller
	recorder *MockCurrencyMockRecorder
}

// MockCurrencyMockRecorder is the mock recorder for MockCurrency.
type MockCurrencyMockRecorder struct {
	mock *MockCurrency
}

// NewMockCurrency creates a new mock instance.
func NewMockCurrency(ctrl *gomock.Controller) *MockCurrency {
	mock := &MockCurrency{ctrl: ctrl}
	mock.recorder = &MockCurrencyMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCurrency) EXPECT() *MockCurrencyMockRecorder {
	return m.recorder
}

// DepositCreating mocks base method.
func (m *MockCurrency) DepositCreating(arg0 AccountId, arg1 Balance) PositiveImbalance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DepositCreating", arg0, arg1)
	ret0, _ := ret[0].(PositiveImbalance)
	return ret0
}

// DepositCreating indicates an expected call of DepositCreating.
func (mr *MockCurrencyMockRecorder) DepositCreating(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DepositCreating", reflect.TypeOf((*MockCurrency)(nil).DepositCreating), arg0, arg1)
}

// DepositIntoExisting mocks base method.
func (m *MockCurrency) DepositIntoExisting(arg0 AccountId, arg1 Balance) (PositiveImbalance, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DepositIntoExisting", arg0, arg1)
	ret0, _ := ret[0].(PositiveImbalance)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DepositIntoExisting indicates an expected call of DepositIntoExisting.
func (mr *MockCurrencyMockRecorder) DepositIntoExisting(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DepositIntoExisting", reflect.TypeOf((*MockCurrency)(nil).DepositIntoExisting), arg0, arg1)
}

// EnsureCanWithdraw mocks base method.
func (m *MockCurrency) EnsureCanWithdraw(arg0 AccountId, arg1 Balance, arg2 WithdrawReason, arg3 Balance) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnsureCanWithdraw", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(error)
	return ret0
}

// EnsureCanWithdraw indicates an expected call of EnsureCanWithdraw.
func (mr *MockCurrencyMockRecorder) EnsureCanWithdraw(arg0, arg1, arg2, arg3 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnsureCanWithdraw", reflect.TypeOf((*MockCurrency)(nil).EnsureCanWithdraw), arg0, arg1, arg2, arg3)
}

// FreeBalance mocks base method.
func (m *MockCurrency) FreeBalance(arg0 AccountId) Balance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FreeBalance", arg0)
	ret0, _ := ret[0].(Balance)
	return ret0
}

// FreeBalance indicates an expected call of FreeBalance.
func (mr *MockCurrencyMockRecorder) FreeBalance(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FreeBalance", reflect.TypeOf((*MockCurrency)(nil).FreeBalance), arg0)
}

// MakeFreeBalanceBe mocks base method.
func (m *MockCurrency) MakeFreeBalanceBe(arg0 AccountId, arg1 Balance) SignedImbalance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MakeFreeBalanceBe", arg0, arg1)
	ret0, _ := ret[0].(SignedImbalance)
	return ret0
}

// MakeFreeBalanceBe indicates an expected call of MakeFreeBalanceBe.
func (mr *MockCurrencyMockRecorder) MakeFreeBalanceBe(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MakeFreeBalanceBe", reflect.TypeOf((*MockCurrency)(nil).MakeFreeBalanceBe), arg0, arg1)
}

// MinimumBalance mocks base method.
func (m *MockCurrency) MinimumBalance() Balance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MinimumBalance")
	ret0, _ := ret[0].(Balance)
	return ret0
}

// MinimumBalance indicates an expected call of MinimumBalance.
func (mr *MockCurrencyMockRecorder) MinimumBalance() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MinimumBalance", reflect.TypeOf((*MockCurrency)(nil).MinimumBalance))
}

// Withdraw mocks base method.
func (m *MockCurrency) Withdraw(arg0 AccountId, arg1 Balance, arg2 WithdrawReason, arg3 ExistenceRequirement) (NegativeImbalance, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Withdraw", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(NegativeImbalance)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Withdraw indicates an expected call of Withdraw.
func (mr *MockCurrencyMockRecorder) Withdraw(arg0, arg1, arg2, arg3 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Withdraw", reflect.TypeOf((*MockCurrency)(nil).Withdraw), arg0, arg1, arg2, arg3)
}

// MockImbalanceHandler is a mock of ImbalanceHandler interface.
type MockImbalanceHandler struct {
	ctrl     *gomock.Controller
	recorder *MockImbalanceHandlerMockRecorder
}

// MockImbalanceHandlerMockRecorder is the mock recorder for MockImbalanceHandler.
type MockImbalanceHandlerMockRecorder struct {
	mock *MockImbalanceHandler
}

// NewMockImbalanceHandler creates a new mock instance.
func NewMockImbalanceHandler(ctrl *gomock.Controller) *MockImbalanceHandler {
	mock := &MockImbalanceHandler{ctrl: ctrl}
	mock.recorder = &MockImbalanceHandlerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockImbalanceHandler) EXPECT() *MockImbalanceHandlerMockRecorder {
	return m.recorder
}

// OnUnbalanced mocks base method.
func (m *MockImbalanceHandler) OnUnbalanced(arg0 NegativeImbalance) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "OnUnbalanced", arg0)
}

// OnUnbalanced indicates an expected call of OnUnbalanced.
func (mr *MockImbalanceHandlerMockRecorder) OnUnbalanced(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnUnbalanced", reflect.TypeOf((*MockImbalanceHandler)(nil).OnUnbalanced), arg0)
}
