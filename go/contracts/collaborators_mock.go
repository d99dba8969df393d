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

// MockContractStore is a mock of ContractStore interface.
type MockContractStore struct {
	ctrl     *gomock.Controller
	recorder *MockContractStoreMockRecorder
}

// MockContractStoreMockRecorder is the mock recorder for MockContractStore.
type MockContractStoreMockRecorder struct {
	mock *MockContractStore
}

// NewMockContractStore creates a new mock instance.
func NewMockContractStore(ctrl *gomock.Controller) *MockContractStore {
	mock := &MockContractStore{ctrl: ctrl}
	mock.recorder = &MockContractStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockContractStore) EXPECT() *MockContractStoreMockRecorder {
	return m.recorder
}

// GetContractInfo mocks base method.
func (m *MockContractStore) GetContractInfo(arg0 AccountId) ContractInfo {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetContractInfo", arg0)
	ret0, _ := ret[0].(ContractInfo)
	return ret0
}

// GetContractInfo indicates an expected call of GetContractInfo.
func (mr *MockContractStoreMockRecorder) GetContractInfo(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetContractInfo", reflect.TypeOf((*MockContractStore)(nil).GetContractInfo), arg0)
}

// NextAccountCounter mocks base method.
func (m *MockContractStore) NextAccountCounter() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NextAccountCounter")
	ret0, _ := ret[0].(uint64)
	return ret0
}

// NextAccountCounter indicates an expected call of NextAccountCounter.
func (mr *MockContractStoreMockRecorder) NextAccountCounter() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NextAccountCounter", reflect.TypeOf((*MockContractStore)(nil).NextAccountCounter))
}

// RemoveContractInfo mocks base method.
func (m *MockContractStore) RemoveContractInfo(arg0 AccountId) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RemoveContractInfo", arg0)
}

// RemoveContractInfo indicates an expected call of RemoveContractInfo.
func (mr *MockContractStoreMockRecorder) RemoveContractInfo(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveContractInfo", reflect.TypeOf((*MockContractStore)(nil).RemoveContractInfo), arg0)
}

// SetContractInfo mocks base method.
func (m *MockContractStore) SetContractInfo(arg0 AccountId, arg1 ContractInfo) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetContractInfo", arg0, arg1)
}

// SetContractInfo indicates an expected call of SetContractInfo.
func (mr *MockContractStoreMockRecorder) SetContractInfo(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetContractInfo", reflect.TypeOf((*MockContractStore)(nil).SetContractInfo), arg0, arg1)
}

// MockCodeStore is a mock of CodeStore interface.
type MockCodeStore struct {
	ctrl     *gomock.Controller
	recorder *MockCodeStoreMockRecorder
}

// MockCodeStoreMockRecorder is the mock recorder for MockCodeStore.
type MockCodeStoreMockRecorder struct {
	mock *MockCodeStore
}

// NewMockCodeStore creates a new mock instance.
func NewMockCodeStore(ctrl *gomock.Controller) *MockCodeStore {
	mock := &MockCodeStore{ctrl: ctrl}
	mock.recorder = &MockCodeStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCodeStore) EXPECT() *MockCodeStoreMockRecorder {
	return m.recorder
}

// GetPrefabModule mocks base method.
func (m *MockCodeStore) GetPrefabModule(arg0 Hash) (*PrefabModule, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPrefabModule", arg0)
	ret0, _ := ret[0].(*PrefabModule)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetPrefabModule indicates an expected call of GetPrefabModule.
func (mr *MockCodeStoreMockRecorder) GetPrefabModule(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPrefabModule", reflect.TypeOf((*MockCodeStore)(nil).GetPrefabModule), arg0)
}

// GetPristineCode mocks base method.
func (m *MockCodeStore) GetPristineCode(arg0 Hash) ([]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPristineCode", arg0)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetPristineCode indicates an expected call of GetPristineCode.
func (mr *MockCodeStoreMockRecorder) GetPristineCode(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPristineCode", reflect.TypeOf((*MockCodeStore)(nil).GetPristineCode), arg0)
}

// PutPrefabModule mocks base method.
func (m *MockCodeStore) PutPrefabModule(arg0 Hash, arg1 *PrefabModule) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "PutPrefabModule", arg0, arg1)
}

// PutPrefabModule indicates an expected call of PutPrefabModule.
func (mr *MockCodeStoreMockRecorder) PutPrefabModule(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutPrefabModule", reflect.TypeOf((*MockCodeStore)(nil).PutPrefabModule), arg0, arg1)
}

// PutPristineCode mocks base method.
func (m *MockCodeStore) PutPristineCode(arg0 Hash, arg1 []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "PutPristineCode", arg0, arg1)
}

// PutPristineCode indicates an expected call of PutPristineCode.
func (mr *MockCodeStoreMockRecorder) PutPristineCode(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutPristineCode", reflect.TypeOf((*MockCodeStore)(nil).PutPristineCode), arg0, arg1)
}

// MockChildStorage is a mock of ChildStorage interface.
type MockChildStorage struct {
	ctrl     *gomock.Controller
	recorder *MockChildStorageMockRecorder
}

// MockChildStorageMockRecorder is the mock recorder for MockChildStorage.
type MockChildStorageMockRecorder struct {
	mock *MockChildStorage
}

// NewMockChildStorage creates a new mock instance.
func NewMockChildStorage(ctrl *gomock.Controller) *MockChildStorage {
	mock := &MockChildStorage{ctrl: ctrl}
	mock.recorder = &MockChildStorageMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChildStorage) EXPECT() *MockChildStorageMockRecorder {
	return m.recorder
}

// Delete mocks base method.
func (m *MockChildStorage) Delete(arg0 TrieId, arg1 Hash) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Delete", arg0, arg1)
}

// Delete indicates an expected call of Delete.
func (mr *MockChildStorageMockRecorder) Delete(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockChildStorage)(nil).Delete), arg0, arg1)
}

// DeleteAll mocks base method.
func (m *MockChildStorage) DeleteAll(arg0 TrieId) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "DeleteAll", arg0)
}

// DeleteAll indicates an expected call of DeleteAll.
func (mr *MockChildStorageMockRecorder) DeleteAll(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteAll", reflect.TypeOf((*MockChildStorage)(nil).DeleteAll), arg0)
}

// Get mocks base method.
func (m *MockChildStorage) Get(arg0 TrieId, arg1 Hash) ([]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", arg0, arg1)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockChildStorageMockRecorder) Get(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockChildStorage)(nil).Get), arg0, arg1)
}

// Put mocks base method.
func (m *MockChildStorage) Put(arg0 TrieId, arg1 Hash, arg2 []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Put", arg0, arg1, arg2)
}

// Put indicates an expected call of Put.
func (mr *MockChildStorageMockRecorder) Put(arg0, arg1, arg2 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Put", reflect.TypeOf((*MockChildStorage)(nil).Put), arg0, arg1, arg2)
}

// Root mocks base method.
func (m *MockChildStorage) Root(arg0 TrieId) Hash {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Root", arg0)
	ret0, _ := ret[0].(Hash)
	return ret0
}

// Root indicates an expected call of Root.
func (mr *MockChildStorageMockRecorder) Root(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Root", reflect.TypeOf((*MockChildStorage)(nil).Root), arg0)
}

// MockBlockContext is a mock of BlockContext interface.
type MockBlockContext struct {
	ctrl     *gomock.Controller
	recorder *MockBlockContextMockRecorder
}

// MockBlockContextMockRecorder is the mock recorder for MockBlockContext.
type MockBlockContextMockRecorder struct {
	mock *MockBlockContext
}

// NewMockBlockContext creates a new mock instance.
func NewMockBlockContext(ctrl *gomock.Controller) *MockBlockContext {
	mock := &MockBlockContext{ctrl: ctrl}
	mock.recorder = &MockBlockContextMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBlockContext) EXPECT() *MockBlockContextMockRecorder {
	return m.recorder
}

// BlockNumber mocks base method.
func (m *MockBlockContext) BlockNumber() BlockNumber {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockNumber")
	ret0, _ := ret[0].(BlockNumber)
	return ret0
}

// BlockNumber indicates an expected call of BlockNumber.
func (mr *MockBlockContextMockRecorder) BlockNumber() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockNumber", reflect.TypeOf((*MockBlockContext)(nil).BlockNumber))
}

// Random mocks base method.
func (m *MockBlockContext) Random(arg0 []byte) Hash {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Random", arg0)
	ret0, _ := ret[0].(Hash)
	return ret0
}

// Random indicates an expected call of Random.
func (mr *MockBlockContextMockRecorder) Random(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Random", reflect.TypeOf((*MockBlockContext)(nil).Random), arg0)
}

// Timestamp mocks base method.
func (m *MockBlockContext) Timestamp() Moment {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Timestamp")
	ret0, _ := ret[0].(Moment)
	return ret0
}

// Timestamp indicates an expected call of Timestamp.
func (mr *MockBlockContextMockRecorder) Timestamp() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Timestamp", reflect.TypeOf((*MockBlockContext)(nil).Timestamp))
}

// MockEventSink is a mock of EventSink interface.
type MockEventSink struct {
	ctrl     *gomock.Controller
	recorder *MockEventSinkMockRecorder
}

// MockEventSinkMockRecorder is the mock recorder for MockEventSink.
type MockEventSinkMockRecorder struct {
	mock *MockEventSink
}

// NewMockEventSink creates a new mock instance.
func NewMockEventSink(ctrl *gomock.Controller) *MockEventSink {
	mock := &MockEventSink{ctrl: ctrl}
	mock.recorder = &MockEventSinkMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEventSink) EXPECT() *MockEventSinkMockRecorder {
	return m.recorder
}

// DepositEvent mocks base method.
func (m *MockEventSink) DepositEvent(arg0 []Hash, arg1 Event) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "DepositEvent", arg0, arg1)
}

// DepositEvent indicates an expected call of DepositEvent.
func (mr *MockEventSinkMockRecorder) DepositEvent(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DepositEvent", reflect.TypeOf((*MockEventSink)(nil).DepositEvent), arg0, arg1)
}

// MockDispatcher is a mock of Dispatcher interface.
type MockDispatcher struct {
	ctrl     *gomock.Controller
	recorder *MockDispatcherMockRecorder
}

// MockDispatcherMockRecorder is the mock recorder for MockDispatcher.
type MockDispatcherMockRecorder struct {
	mock *MockDispatcher
}

// NewMockDispatcher creates a new mock instance.
func NewMockDispatcher(ctrl *gomock.Controller) *MockDispatcher {
	mock := &MockDispatcher{ctrl: ctrl}
	mock.recorder = &MockDispatcherMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDispatcher) EXPECT() *MockDispatcherMockRecorder {
	return m.recorder
}

// Dispatch mocks base method.
func (m *MockDispatcher) Dispatch(arg0 AccountId, arg1 []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Dispatch", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// Dispatch indicates an expected call of Dispatch.
func (mr *MockDispatcherMockRecorder) Dispatch(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dispatch", reflect.TypeOf((*MockDispatcher)(nil).Dispatch), arg0, arg1)
}

// Weight mocks base method.
func (m *MockDispatcher) Weight(arg0 []byte) (Gas, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Weight", arg0)
	ret0, _ := ret[0].(Gas)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Weight indicates an expected call of Weight.
func (mr *MockDispatcherMockRecorder) Weight(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Weight", reflect.TypeOf((*MockDispatcher)(nil).Weight), arg0)
}
