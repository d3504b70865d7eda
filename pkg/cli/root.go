// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/version-checker/pkg/logging"
)

const (
	name           = "vercheck"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// newRootCmd builds the vercheck command tree.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Compare dot-delimited numeric versions",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `vercheck compares versions such as 1.2 and 1.2.1 and reports whether the
first is before, after or equal to the second, or error if either is not a
dot-delimited list of non-negative integers. Trailing zero components are
insignificant: 1.2 equals 1.2.0.

Comparisons run locally unless --server points at a vercheckd instance.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging, same as --log-level=debug",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			if cmd.Bool("debug") {
				level = "debug"
			}
			logging.SetDefaultCLILogger(level)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			compareCmd(),
			batchCmd(),
			imageCmd(),
		},
	}
}

// Execute runs the CLI and exits non-zero on error. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
