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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

// fileConfig is the content of a configuration file.
type fileConfig struct {
	Chain    contracts.Config
	Schedule contracts.Schedule
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Chain:    contracts.DefaultConfig(),
		Schedule: contracts.DefaultSchedule(),
	}
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		if len(field) > 0 && unicode.IsLower(rune(field[0])) {
			return fmt.Errorf("field '%s' is not defined in %s, field names are case sensitive", field, rt.String())
		}
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// loadConfig reads a configuration file. Values missing in the file keep
// their defaults.
func loadConfig(path string) (fileConfig, error) {
	config := defaultFileConfig()
	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&config)
	// Add file name to errors that have a line number.
	var lineErr *toml.LineError
	if errors.As(err, &lineErr) {
		err = errors.New(path + ", " + err.Error())
	}
	return config, err
}

// writeConfig encodes config as TOML.
func writeConfig(w io.Writer, config fileConfig) error {
	out, err := tomlSettings.Marshal(&config)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (c *fileConfig) validate() error {
	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("invalid chain configuration: %w", err)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}
	return nil
}

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "TOML configuration file, defaults are used if not set",
	},
}

// Fetch loads the configured file or returns the defaults.
func (f *configFlagType) Fetch(context *cli.Context) (fileConfig, error) {
	path := context.String(f.Name)
	if path == "" {
		return defaultFileConfig(), nil
	}
	config, err := loadConfig(path)
	if err != nil {
		return fileConfig{}, err
	}
	return config, config.validate()
}
