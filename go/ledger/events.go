// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"sync"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/ethereum/go-ethereum/log"
)

// EventRecord is an event together with its topics.
type EventRecord struct {
	Topics []contracts.Hash
	Event  contracts.Event
}

// EventLog is an EventSink keeping all events in memory.
type EventLog struct {
	mu     sync.Mutex
	events []EventRecord
}

func (e *EventLog) DepositEvent(topics []contracts.Hash, event contracts.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	log.Debug("Contract event", "event", event.EventName(), "topics", len(topics))
	e.events = append(e.events, EventRecord{Topics: topics, Event: event})
}

// Events returns a copy of the recorded events.
func (e *EventLog) Events() []EventRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]EventRecord(nil), e.events...)
}

// Clear drops all recorded events.
func (e *EventLog) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = nil
}
