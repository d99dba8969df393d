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
	"path/filepath"
	"runtime"

	"github.com/Fantom-foundation/Quartz/go/contracts"
	"github.com/Fantom-foundation/Quartz/go/host"
	"github.com/Fantom-foundation/Quartz/go/prepare"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var PrepareCmd = cli.Command{
	Action:    doPrepare,
	Name:      "prepare",
	Usage:     "Run code admission on WebAssembly modules",
	ArgsUsage: "<file>...",
	Flags: []cli.Flag{
		ConfigFlag,
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "number of files prepared simultaneously",
			Value:   runtime.NumCPU(),
		},
	},
}

// prepareResult is the outcome of admitting a single file.
type prepareResult struct {
	path     string
	size     int
	prepared *contracts.PrefabModule
	err      error
}

func doPrepare(context *cli.Context) error {
	if context.Args().Len() == 0 {
		return fmt.Errorf("no files given")
	}
	config, err := ConfigFlag.Fetch(context)
	if err != nil {
		return err
	}

	results, err := prepareFiles(context.Args().Slice(), &config.Schedule, context.Int("jobs"))
	if err != nil {
		return err
	}

	rejected := 0
	for _, result := range results {
		if result.err != nil {
			rejected++
			fmt.Printf("%s: rejected: %v\n", result.path, result.err)
			continue
		}
		fmt.Printf("%s: %sB -> %sB, memory %d..%d pages\n",
			result.path,
			unitconv.FormatPrefix(float64(result.size), unitconv.IEC, 1),
			unitconv.FormatPrefix(float64(len(result.prepared.Code)), unitconv.IEC, 1),
			result.prepared.Initial, result.prepared.Maximum,
		)
	}
	if rejected > 0 {
		return fmt.Errorf("%d of %d modules rejected", rejected, len(results))
	}
	return nil
}

// prepareFiles admits the given files using up to jobs goroutines. Results
// are in the order of paths. Failing to read a file aborts the run.
func prepareFiles(paths []string, schedule *contracts.Schedule, jobs int) ([]prepareResult, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]prepareResult, len(paths))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			code, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
			}
			prepared, err := prepare.Prepare(code, schedule, host.Environment{})
			results[i] = prepareResult{path: path, size: len(code), prepared: prepared, err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
