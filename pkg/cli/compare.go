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
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/version-checker/pkg/api"
	"github.com/NVIDIA/version-checker/pkg/client"
	"github.com/NVIDIA/version-checker/pkg/defaults"
	"github.com/NVIDIA/version-checker/pkg/vercmp"
)

// comparer compares one pair, locally or on a server.
type comparer func(ctx context.Context, version1, version2 string) (*api.CompareResponse, error)

func localComparer(_ context.Context, version1, version2 string) (*api.CompareResponse, error) {
	resp := api.NewCompareResponse(version1, version2)
	return &resp, nil
}

// newClient returns a client for serverURL whose every call is bounded by
// timeout.
func newClient(serverURL string, timeout time.Duration) (*client.Client, error) {
	c, err := client.New(serverURL,
		client.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
		client.WithTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}
	slog.Debug("using remote comparisons", "server", serverURL, "timeout", timeout)
	return c, nil
}

// newComparer returns a remote comparer when serverURL is set, otherwise a
// local one.
func newComparer(serverURL string, timeout time.Duration) (comparer, error) {
	if serverURL == "" {
		return localComparer, nil
	}
	c, err := newClient(serverURL, timeout)
	if err != nil {
		return nil, err
	}
	return c.Compare, nil
}

func compareCmd() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Compare two versions",
		ArgsUsage: "VERSION1 VERSION2",
		Description: `Compare VERSION1 against VERSION2 and print before, after, equal or error.

Examples:
  vercheck compare 1.2 1.2.1          # before
  vercheck compare 1.10 1.9           # after
  vercheck compare 1 1.0.0            # equal
  vercheck compare 1.2.a 1.0          # error

A malformed version is a valid answer, not a failure: the command exits 0
unless --fail-on-error is set.

Use --expect to gate scripts on an ordering:
  vercheck compare --expect before "$INSTALLED" "$REQUIRED" && echo "upgrade needed"`,
		Flags: []cli.Flag{
			serverFlag(),
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.HTTPClientTimeout,
				Usage: "Timeout for remote comparisons",
			},
			failOnErrorFlag(),
			&cli.StringFlag{
				Name:  "expect",
				Usage: fmt.Sprintf("Exit non-zero unless the result is this value (supported values: %s)", strings.Join(vercmp.SupportedResults(), ", ")),
			},
			outputFlag(),
			formatFlag(formatText),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("compare requires exactly two arguments: %s, got %d", cmd.ArgsUsage, cmd.NArg())
			}

			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			expect, err := parseExpectedResult(cmd)
			if err != nil {
				return err
			}

			timeout := cmd.Duration("timeout")
			cmp, err := newComparer(cmd.String("server"), timeout)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			resp, err := cmp(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			slog.Debug("compared",
				"version1", resp.Version1,
				"version2", resp.Version2,
				"result", resp.Result,
				"reason", resp.Reason)

			err = writeOutput(ctx, cmd, format, resp, func(w io.Writer) error {
				_, werr := fmt.Fprintln(w, resp.Result)
				return werr
			})
			if err != nil {
				return err
			}

			if cmd.Bool("fail-on-error") && resp.Result == vercmp.Error {
				return fmt.Errorf("%w: %s", ErrComparisonFailed, resp.Reason)
			}
			if expect != "" && resp.Result != expect {
				return fmt.Errorf("%w: got %s, want %s", ErrUnexpectedResult, resp.Result, expect)
			}
			return nil
		},
	}
}

// parseExpectedResult reads --expect. An unset flag yields "".
func parseExpectedResult(cmd *cli.Command) (vercmp.Result, error) {
	raw := cmd.String("expect")
	if raw == "" {
		return "", nil
	}
	return vercmp.ParseResult(raw)
}
