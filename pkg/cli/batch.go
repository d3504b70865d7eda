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
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/version-checker/pkg/api"
	"github.com/NVIDIA/version-checker/pkg/client"
	"github.com/NVIDIA/version-checker/pkg/defaults"
	"github.com/NVIDIA/version-checker/pkg/header"
	"github.com/NVIDIA/version-checker/pkg/serializer"
	"github.com/NVIDIA/version-checker/pkg/vercmp"
)

// BatchInput is the document read by the batch command. The header is
// optional; when present its kind must be ComparisonPairs.
type BatchInput struct {
	header.Header `json:",inline" yaml:",inline"`

	Pairs []api.CompareRequest `json:"pairs" yaml:"pairs"`
}

// Summary counts results by value.
type Summary struct {
	Total  int `json:"total" yaml:"total"`
	Before int `json:"before" yaml:"before"`
	After  int `json:"after" yaml:"after"`
	Equal  int `json:"equal" yaml:"equal"`
	Error  int `json:"error" yaml:"error"`
}

func (s *Summary) add(r vercmp.Result) {
	s.Total++
	switch r {
	case vercmp.Before:
		s.Before++
	case vercmp.After:
		s.After++
	case vercmp.Equal:
		s.Equal++
	default:
		s.Error++
	}
}

// ComparisonReport is the document written by the batch command.
type ComparisonReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Summary Summary               `json:"summary" yaml:"summary"`
	Results []api.CompareResponse `json:"results" yaml:"results"`
}

// NewComparisonReport builds a report over results, which must already be in
// input order.
func NewComparisonReport(source string, results []api.CompareResponse) *ComparisonReport {
	h := header.New(
		header.WithKind(header.KindComparisonReport),
		header.WithTimestamp(time.Now()),
		header.WithMetadata(header.MetadataVersion, version),
		header.WithMetadata(header.MetadataSource, source),
	)
	r := &ComparisonReport{
		Header:  *h,
		Results: results,
	}
	for _, res := range results {
		r.Summary.add(res.Result)
	}
	return r
}

// chunkComparer compares a chunk of pairs and returns one result per pair,
// in order.
type chunkComparer func(ctx context.Context, pairs []api.CompareRequest) ([]api.CompareResponse, error)

func localChunk(_ context.Context, pairs []api.CompareRequest) ([]api.CompareResponse, error) {
	results := make([]api.CompareResponse, len(pairs))
	for i, p := range pairs {
		results[i] = api.NewCompareResponse(p.Version1, p.Version2)
	}
	return results, nil
}

func remoteChunk(c *client.Client) chunkComparer {
	return func(ctx context.Context, pairs []api.CompareRequest) ([]api.CompareResponse, error) {
		resp, err := c.CompareBatch(ctx, pairs)
		if err != nil {
			return nil, err
		}
		return resp.Results, nil
	}
}

// newChunkComparer sends chunks to the batch endpoint of serverURL, or
// compares them in process when serverURL is empty.
func newChunkComparer(serverURL string, timeout time.Duration) (chunkComparer, error) {
	if serverURL == "" {
		return localChunk, nil
	}
	c, err := newClient(serverURL, timeout)
	if err != nil {
		return nil, err
	}
	return remoteChunk(c), nil
}

// runBatch splits pairs into chunks of at most chunkSize and compares them
// with at most concurrency chunks in flight. Results keep input order. The
// first failure cancels the remaining chunks.
func runBatch(ctx context.Context, cmp chunkComparer, pairs []api.CompareRequest, chunkSize, concurrency int) ([]api.CompareResponse, error) {
	if chunkSize < 1 {
		chunkSize = defaults.MaxBulkRequests
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]api.CompareResponse, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(pairs); start += chunkSize {
		end := min(start+chunkSize, len(pairs))
		g.Go(func() error {
			out, err := cmp(gctx, pairs[start:end])
			if err != nil {
				return fmt.Errorf("pairs %d-%d: %w", start, end-1, err)
			}
			if len(out) != end-start {
				return fmt.Errorf("pairs %d-%d: got %d results", start, end-1, len(out))
			}
			copy(results[start:end], out)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeReportText(w io.Writer, report *ComparisonReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION1\tVERSION2\tRESULT")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Version1, r.Version2, r.Result)
	}
	return tw.Flush()
}

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Compare a list of version pairs from a file or URL",
		Description: `Read version pairs from a YAML or JSON document and write a ComparisonReport
with one result per pair, in input order.

Input format:
  kind: ComparisonPairs                    # optional header
  apiVersion: vercheck.nvidia.com/v1alpha1
  pairs:
    - version1: "1.2"
      version2: "1.2.1"
    - version1: "2.0"
      version2: "1.9.9"

Examples:
  vercheck batch --input pairs.yaml
  vercheck batch --input https://example.com/pairs.json --format table
  vercheck batch --input pairs.yaml --server http://localhost:8080 --chunk-size 50 --concurrency 4

With --server, pairs are sent to /v1/compare/batch in chunks of --chunk-size.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Required: true,
				Usage:    "Path or HTTP/HTTPS URL of the pairs document (.yaml, .yml or .json)",
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Value: defaults.MaxBulkRequests,
				Usage: "Pairs per batch request; must not exceed the server's MAX_BULK_REQUESTS",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Value:   defaults.CLIBatchConcurrency,
				Usage:   "Maximum number of chunks in flight",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CLIBatchTimeout,
				Usage: "Timeout for the whole batch, including reading input",
			},
			serverFlag(),
			failOnErrorFlag(),
			outputFlag(),
			formatFlag(string(serializer.FormatYAML)),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			timeout := cmd.Duration("timeout")
			cmp, err := newChunkComparer(cmd.String("server"), timeout)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			source := cmd.String("input")
			in, err := serializer.FromFile[BatchInput](ctx, source)
			if err != nil {
				return fmt.Errorf("failed to load pairs from %q: %w", source, err)
			}
			if err := in.Validate(header.KindComparisonPairs); err != nil {
				return fmt.Errorf("invalid pairs document %q: %w", source, err)
			}
			if len(in.Pairs) == 0 {
				return fmt.Errorf("no pairs found in %q", source)
			}

			chunkSize := int(cmd.Int("chunk-size"))
			concurrency := int(cmd.Int("concurrency"))
			slog.Debug("comparing pairs",
				"source", source,
				"count", len(in.Pairs),
				"chunkSize", chunkSize,
				"concurrency", concurrency)

			results, err := runBatch(ctx, cmp, in.Pairs, chunkSize, concurrency)
			if err != nil {
				return fmt.Errorf("batch comparison failed: %w", err)
			}

			report := NewComparisonReport(source, results)

			err = writeOutput(ctx, cmd, format, report, func(w io.Writer) error {
				return writeReportText(w, report)
			})
			if err != nil {
				return err
			}

			if cmd.Bool("fail-on-error") && report.Summary.Error > 0 {
				return fmt.Errorf("%w: %d of %d pairs", ErrComparisonFailed, report.Summary.Error, report.Summary.Total)
			}
			return nil
		},
	}
}
