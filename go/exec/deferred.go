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

import "github.com/Fantom-foundation/Quartz/go/contracts"

// DeferredAction is an effect that is only carried out once the
// transaction that caused it has completed successfully.
type DeferredAction interface {
	isDeferredAction()
}

// DepositEvent is an event waiting to be deposited into the event sink.
type DepositEvent struct {
	Topics []contracts.Hash
	Event  contracts.Event
}

// DispatchRuntimeCall is a call a contract asked to be dispatched on its
// behalf.
type DispatchRuntimeCall struct {
	Origin contracts.AccountId
	Call   []byte
}

func (DepositEvent) isDeferredAction()        {}
func (DispatchRuntimeCall) isDeferredAction() {}
