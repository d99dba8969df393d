// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Quartz/go/contracts"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestConfig_DefaultsSurviveRoundTrip(t *testing.T) {
	var buffer bytes.Buffer
	if err := writeConfig(&buffer, defaultFileConfig()); err != nil {
		t.Fatalf("failed to encode configuration: %v", err)
	}
	path := writeFile(t, "config.toml", buffer.String())

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}
	if want := defaultFileConfig(); config != want {
		t.Errorf("unexpected configuration, wanted %+v, got %+v", want, config)
	}
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", strings.Join([]string{
		"[Chain]",
		"MaxDepth = 5",
		`RentByteFee = "0x10"`,
		"",
		"[Schedule]",
		"Version = 3",
		"EnablePrintln = true",
	}, "\n"))

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("failed to load configuration: %v", err)
	}
	want := defaultFileConfig()
	want.Chain.MaxDepth = 5
	want.Chain.RentByteFee = contracts.NewBalance(16)
	want.Schedule.Version = 3
	want.Schedule.EnablePrintln = true
	if config != want {
		t.Errorf("unexpected configuration, wanted %+v, got %+v", want, config)
	}
}

func TestConfig_UnknownFieldsAreRejected(t *testing.T) {
	path := writeFile(t, "config.toml", "[Chain]\nmaxDepth = 5\n")
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "case sensitive") {
		t.Errorf("unexpected error, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		modify func(*fileConfig)
		valid  bool
	}{
		"defaults": {
			modify: func(*fileConfig) {},
			valid:  true,
		},
		"zero rent deposit offset": {
			modify: func(c *fileConfig) { c.Chain.RentDepositOffset = contracts.Balance{} },
		},
		"zero max depth": {
			modify: func(c *fileConfig) { c.Chain.MaxDepth = 0 },
		},
		"too many memory pages": {
			modify: func(c *fileConfig) { c.Schedule.MaxMemoryPages = 1<<16 + 1 },
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			config := defaultFileConfig()
			test.modify(&config)
			err := config.validate()
			if test.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !test.valid && !errors.Is(err, contracts.ErrInvalidConfig) {
				t.Errorf("unexpected error, wanted %v, got %v", contracts.ErrInvalidConfig, err)
			}
		})
	}
}
