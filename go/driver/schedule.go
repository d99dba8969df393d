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
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var ScheduleCmd = cli.Command{
	Name:  "schedule",
	Usage: "Inspect chain configurations and schedules",
	Subcommands: []*cli.Command{
		{
			Action: doPrintSchedule,
			Name:   "print",
			Usage:  "Print the effective configuration as TOML",
			Flags:  []cli.Flag{ConfigFlag},
		},
		{
			Action:    doCheckSchedule,
			Name:      "check",
			Usage:     "Validate configuration files",
			ArgsUsage: "<file>...",
		},
	},
}

func doPrintSchedule(context *cli.Context) error {
	config, err := ConfigFlag.Fetch(context)
	if err != nil {
		return err
	}
	return writeConfig(os.Stdout, config)
}

func doCheckSchedule(context *cli.Context) error {
	if context.Args().Len() == 0 {
		return fmt.Errorf("no files given")
	}
	failed := 0
	for _, path := range context.Args().Slice() {
		config, err := loadConfig(path)
		if err == nil {
			err = config.validate()
		}
		if err != nil {
			failed++
			fmt.Printf("%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: schedule version %d ok\n", path, config.Schedule.Version)
	}
	if failed > 0 {
		return fmt.Errorf("%d invalid configuration files", failed)
	}
	return nil
}
