// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package contracts

import (
	"errors"
	"math"
	"testing"
)

func TestConfig_DefaultIsValid(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestConfig_InvalidConfigsAreRejected(t *testing.T) {
	tests := map[string]func(*Config){
		"zero rent deposit offset": func(c *Config) { c.RentDepositOffset = Balance{} },
		"zero max depth":           func(c *Config) { c.MaxDepth = 0 },
		"zero block gas limit":     func(c *Config) { c.BlockGasLimit = 0 },
	}
	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			config := DefaultConfig()
			modify(&config)
			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected invalid config error, got %v", err)
			}
		})
	}
}

func TestSchedule_DefaultIsValid(t *testing.T) {
	schedule := DefaultSchedule()
	if err := schedule.Validate(); err != nil {
		t.Errorf("default schedule is invalid: %v", err)
	}
}

func TestSchedule_InvalidSchedulesAreRejected(t *testing.T) {
	tests := map[string]func(*Schedule){
		"too many pages":    func(s *Schedule) { s.MaxMemoryPages = 1<<16 + 1 },
		"zero stack height": func(s *Schedule) { s.MaxStackHeight = 0 },
		"huge stack height": func(s *Schedule) { s.MaxStackHeight = math.MaxInt32 + 1 },
		"huge op cost":      func(s *Schedule) { s.RegularOpCost = math.MaxInt32 + 1 },
		"huge grow cost":    func(s *Schedule) { s.GrowMemCost = math.MaxInt32 + 1 },
		"free data reads":   func(s *Schedule) { s.SandboxDataReadCost = 0 },
		"free data writes":  func(s *Schedule) { s.SandboxDataWriteCost = 0 },
	}
	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			schedule := DefaultSchedule()
			modify(&schedule)
			if err := schedule.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected invalid config error, got %v", err)
			}
		})
	}
}
