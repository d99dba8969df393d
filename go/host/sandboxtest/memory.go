// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sandboxtest

import (
	"fmt"

	"github.com/Fantom-foundation/Quartz/go/wasm"
)

const PageSize = wasm.PageSize

// LinearMemory is a growable byte-addressed memory.
type LinearMemory struct {
	data    []byte
	maximum uint32
}

func NewLinearMemory(initial, maximum uint32) (*LinearMemory, error) {
	if initial > maximum {
		return nil, fmt.Errorf("initial size of %d pages exceeds maximum of %d", initial, maximum)
	}
	if maximum > wasm.MaxPages {
		return nil, fmt.Errorf("maximum of %d pages exceeds %d", maximum, wasm.MaxPages)
	}
	return &LinearMemory{
		data:    make([]byte, int(initial)*PageSize),
		maximum: maximum,
	}, nil
}

func (m *LinearMemory) Get(ptr uint32, buf []byte) error {
	if err := m.check(ptr, len(buf)); err != nil {
		return err
	}
	copy(buf, m.data[ptr:])
	return nil
}

func (m *LinearMemory) Set(ptr uint32, data []byte) error {
	if err := m.check(ptr, len(data)); err != nil {
		return err
	}
	copy(m.data[ptr:], data)
	return nil
}

func (m *LinearMemory) check(ptr uint32, length int) error {
	if uint64(ptr)+uint64(length) > uint64(len(m.data)) {
		return fmt.Errorf("access of %d bytes at %d exceeds memory of %d bytes", length, ptr, len(m.data))
	}
	return nil
}

// Pages is the current size of the memory.
func (m *LinearMemory) Pages() uint32 {
	return uint32(len(m.data) / PageSize)
}

// Grow adds the given number of pages and returns the previous size, or
// false if the maximum would be exceeded.
func (m *LinearMemory) Grow(pages uint32) (uint32, bool) {
	previous := m.Pages()
	if uint64(previous)+uint64(pages) > uint64(m.maximum) {
		return previous, false
	}
	m.data = append(m.data, make([]byte, int(pages)*PageSize)...)
	return previous, true
}
