// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package exec is a generated GoMock package.
package exec

import (
	reflect "reflect"

	contracts "github.com/Fantom-foundation/Quartz/go/contracts"
	gas "github.com/Fantom-foundation/Quartz/go/gas"
	gomock "go.uber.org/mock/gomock"
)

// MockExt is a mock of Ext interface.
type MockExt struct {
	ctrl     *gomock.Controller
	recorder *MockExtMockRecorder
}

// MockExtMockRecorder is the mock recorder for MockExt.
type MockExtMockRecorder struct {
	mock *MockExt
}

// NewMockExt creates a new mock instance.
func NewMockExt(ctrl *gomock.Controller) *MockExt {
	mock := &MockExt{ctrl: ctrl}
	mock.recorder = &MockExtMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockExt) EXPECT() *MockExtMockRecorder {
	return m.recorder
}

// Address mocks base method.
func (m *MockExt) Address() contracts.AccountId {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Address")
	ret0, _ := ret[0].(contracts.AccountId)
	return ret0
}

// Address indicates an expected call of Address.
func (mr *MockExtMockRecorder) Address() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Address", reflect.TypeOf((*MockExt)(nil).Address))
}

// Balance mocks base method.
func (m *MockExt) Balance() contracts.Balance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Balance")
	ret0, _ := ret[0].(contracts.Balance)
	return ret0
}

// Balance indicates an expected call of Balance.
func (mr *MockExtMockRecorder) Balance() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Balance", reflect.TypeOf((*MockExt)(nil).Balance))
}

// BlockNumber mocks base method.
func (m *MockExt) BlockNumber() contracts.BlockNumber {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockNumber")
	ret0, _ := ret[0].(contracts.BlockNumber)
	return ret0
}

// BlockNumber indicates an expected call of BlockNumber.
func (mr *MockExtMockRecorder) BlockNumber() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockNumber", reflect.TypeOf((*MockExt)(nil).BlockNumber))
}

// Call mocks base method.
func (m *MockExt) Call(arg0 contracts.AccountId, arg1 contracts.Balance, arg2 *gas.Meter, arg3 []byte) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Call", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Call indicates an expected call of Call.
func (mr *MockExtMockRecorder) Call(arg0, arg1, arg2, arg3 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Call", reflect.TypeOf((*MockExt)(nil).Call), arg0, arg1, arg2, arg3)
}

// Caller mocks base method.
func (m *MockExt) Caller() contracts.AccountId {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Caller")
	ret0, _ := ret[0].(contracts.AccountId)
	return ret0
}

// Caller indicates an expected call of Caller.
func (mr *MockExtMockRecorder) Caller() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Caller", reflect.TypeOf((*MockExt)(nil).Caller))
}

// DepositEvent mocks base method.
func (m *MockExt) DepositEvent(arg0 []contracts.Hash, arg1 []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "DepositEvent", arg0, arg1)
}

// DepositEvent indicates an expected call of DepositEvent.
func (mr *MockExtMockRecorder) DepositEvent(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DepositEvent", reflect.TypeOf((*MockExt)(nil).DepositEvent), arg0, arg1)
}

// DispatchWeight mocks base method.
func (m *MockExt) DispatchWeight(arg0 []byte) (contracts.Gas, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DispatchWeight", arg0)
	ret0, _ := ret[0].(contracts.Gas)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DispatchWeight indicates an expected call of DispatchWeight.
func (mr *MockExtMockRecorder) DispatchWeight(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DispatchWeight", reflect.TypeOf((*MockExt)(nil).DispatchWeight), arg0)
}

// GetStorage mocks base method.
func (m *MockExt) GetStorage(arg0 contracts.StorageKey) ([]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStorage", arg0)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetStorage indicates an expected call of GetStorage.
func (mr *MockExtMockRecorder) GetStorage(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStorage", reflect.TypeOf((*MockExt)(nil).GetStorage), arg0)
}

// Instantiate mocks base method.
func (m *MockExt) Instantiate(arg0 contracts.Hash, arg1 contracts.Balance, arg2 *gas.Meter, arg3 []byte) (contracts.AccountId, []byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Instantiate", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(contracts.AccountId)
	ret1, _ := ret[1].([]byte)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Instantiate indicates an expected call of Instantiate.
func (mr *MockExtMockRecorder) Instantiate(arg0, arg1, arg2, arg3 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Instantiate", reflect.TypeOf((*MockExt)(nil).Instantiate), arg0, arg1, arg2, arg3)
}

// MaxValueSize mocks base method.
func (m *MockExt) MaxValueSize() uint32 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MaxValueSize")
	ret0, _ := ret[0].(uint32)
	return ret0
}

// MaxValueSize indicates an expected call of MaxValueSize.
func (mr *MockExtMockRecorder) MaxValueSize() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MaxValueSize", reflect.TypeOf((*MockExt)(nil).MaxValueSize))
}

// MinimumBalance mocks base method.
func (m *MockExt) MinimumBalance() contracts.Balance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MinimumBalance")
	ret0, _ := ret[0].(contracts.Balance)
	return ret0
}

// MinimumBalance indicates an expected call of MinimumBalance.
func (mr *MockExtMockRecorder) MinimumBalance() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MinimumBalance", reflect.TypeOf((*MockExt)(nil).MinimumBalance))
}

// NoteDispatchCall mocks base method.
func (m *MockExt) NoteDispatchCall(arg0 []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "NoteDispatchCall", arg0)
}

// NoteDispatchCall indicates an expected call of NoteDispatchCall.
func (mr *MockExtMockRecorder) NoteDispatchCall(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NoteDispatchCall", reflect.TypeOf((*MockExt)(nil).NoteDispatchCall), arg0)
}

// Now mocks base method.
func (m *MockExt) Now() contracts.Moment {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Now")
	ret0, _ := ret[0].(contracts.Moment)
	return ret0
}

// Now indicates an expected call of Now.
func (mr *MockExtMockRecorder) Now() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Now", reflect.TypeOf((*MockExt)(nil).Now))
}

// Random mocks base method.
func (m *MockExt) Random(arg0 []byte) contracts.Hash {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Random", arg0)
	ret0, _ := ret[0].(contracts.Hash)
	return ret0
}

// Random indicates an expected call of Random.
func (mr *MockExtMockRecorder) Random(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Random", reflect.TypeOf((*MockExt)(nil).Random), arg0)
}

// RentAllowance mocks base method.
func (m *MockExt) RentAllowance() contracts.Balance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RentAllowance")
	ret0, _ := ret[0].(contracts.Balance)
	return ret0
}

// RentAllowance indicates an expected call of RentAllowance.
func (mr *MockExtMockRecorder) RentAllowance() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RentAllowance", reflect.TypeOf((*MockExt)(nil).RentAllowance))
}

// SetRentAllowance mocks base method.
func (m *MockExt) SetRentAllowance(arg0 contracts.Balance) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetRentAllowance", arg0)
}

// SetRentAllowance indicates an expected call of SetRentAllowance.
func (mr *MockExtMockRecorder) SetRentAllowance(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetRentAllowance", reflect.TypeOf((*MockExt)(nil).SetRentAllowance), arg0)
}

// SetStorage mocks base method.
func (m *MockExt) SetStorage(arg0 contracts.StorageKey, arg1 []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetStorage", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetStorage indicates an expected call of SetStorage.
func (mr *MockExtMockRecorder) SetStorage(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetStorage", reflect.TypeOf((*MockExt)(nil).SetStorage), arg0, arg1)
}

// TombstoneDeposit mocks base method.
func (m *MockExt) TombstoneDeposit() contracts.Balance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TombstoneDeposit")
	ret0, _ := ret[0].(contracts.Balance)
	return ret0
}

// TombstoneDeposit indicates an expected call of TombstoneDeposit.
func (mr *MockExtMockRecorder) TombstoneDeposit() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TombstoneDeposit", reflect.TypeOf((*MockExt)(nil).TombstoneDeposit))
}

// ValueTransferred mocks base method.
func (m *MockExt) ValueTransferred() contracts.Balance {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValueTransferred")
	ret0, _ := ret[0].(contracts.Balance)
	return ret0
}

// ValueTransferred indicates an expected call of ValueTransferred.
func (mr *MockExtMockRecorder) ValueTransferred() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValueTransferred", reflect.TypeOf((*MockExt)(nil).ValueTransferred))
}

// MockVm is a mock of Vm interface.
type MockVm struct {
	ctrl     *gomock.Controller
	recorder *MockVmMockRecorder
}

// MockVmMockRecorder is the mock recorder for MockVm.
type MockVmMockRecorder struct {
	mock *MockVm
}

// NewMockVm creates a new mock instance.
func NewMockVm(ctrl *gomock.Controller) *MockVm {
	mock := &MockVm{ctrl: ctrl}
	mock.recorder = &MockVmMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockVm) EXPECT() *MockVmMockRecorder {
	return m.recorder
}

// Execute mocks base method.
func (m *MockVm) Execute(arg0 *Executable, arg1 Ext, arg2 []byte, arg3 *gas.Meter) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Execute", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Execute indicates an expected call of Execute.
func (mr *MockVmMockRecorder) Execute(arg0, arg1, arg2, arg3 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Execute", reflect.TypeOf((*MockVm)(nil).Execute), arg0, arg1, arg2, arg3)
}

// MockLoader is a mock of Loader interface.
type MockLoader struct {
	ctrl     *gomock.Controller
	recorder *MockLoaderMockRecorder
}

// MockLoaderMockRecorder is the mock recorder for MockLoader.
type MockLoaderMockRecorder struct {
	mock *MockLoader
}

// NewMockLoader creates a new mock instance.
func NewMockLoader(ctrl *gomock.Controller) *MockLoader {
	mock := &MockLoader{ctrl: ctrl}
	mock.recorder = &MockLoaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLoader) EXPECT() *MockLoaderMockRecorder {
	return m.recorder
}

// LoadInit mocks base method.
func (m *MockLoader) LoadInit(arg0 contracts.Hash) (*Executable, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadInit", arg0)
	ret0, _ := ret[0].(*Executable)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadInit indicates an expected call of LoadInit.
func (mr *MockLoaderMockRecorder) LoadInit(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadInit", reflect.TypeOf((*MockLoader)(nil).LoadInit), arg0)
}

// LoadMain mocks base method.
func (m *MockLoader) LoadMain(arg0 contracts.Hash) (*Executable, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadMain", arg0)
	ret0, _ := ret[0].(*Executable)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadMain indicates an expected call of LoadMain.
func (mr *MockLoaderMockRecorder) LoadMain(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadMain", reflect.TypeOf((*MockLoader)(nil).LoadMain), arg0)
}

// MockRentCollector is a mock of RentCollector interface.
type MockRentCollector struct {
	ctrl     *gomock.Controller
	recorder *MockRentCollectorMockRecorder
}

// MockRentCollectorMockRecorder is the mock recorder for MockRentCollector.
type MockRentCollectorMockRecorder struct {
	mock *MockRentCollector
}

// NewMockRentCollector creates a new mock instance.
func NewMockRentCollector(ctrl *gomock.Controller) *MockRentCollector {
	mock := &MockRentCollector{ctrl: ctrl}
	mock.recorder = &MockRentCollectorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRentCollector) EXPECT() *MockRentCollectorMockRecorder {
	return m.recorder
}

// CollectRent mocks base method.
func (m *MockRentCollector) CollectRent(arg0 contracts.AccountId) contracts.ContractInfo {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CollectRent", arg0)
	ret0, _ := ret[0].(contracts.ContractInfo)
	return ret0
}

// CollectRent indicates an expected call of CollectRent.
func (mr *MockRentCollectorMockRecorder) CollectRent(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CollectRent", reflect.TypeOf((*MockRentCollector)(nil).CollectRent), arg0)
}
