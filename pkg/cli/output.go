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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/version-checker/pkg/serializer"
)

// formatText prints bare results, one per line. It is CLI-only and not a
// serializer format.
const formatText = "text"

// ErrComparisonFailed is returned with --fail-on-error when a comparison
// yields the error result.
var ErrComparisonFailed = errors.New("comparison failed")

// ErrUnexpectedResult is returned with --expect when the result differs.
var ErrUnexpectedResult = errors.New("unexpected comparison result")

// Flag constructors return fresh instances: urfave/cli flags keep parsed
// state, so they cannot be shared between commands.

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func serverFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "URL of a vercheckd server to run comparisons on (default: compare locally)",
		Sources: cli.EnvVars("VERCHECK_SERVER"),
	}
}

func failOnErrorFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "fail-on-error",
		Usage: "Exit non-zero when a comparison result is error",
	}
}

func formatFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   value,
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(supportedFormats(), ", ")),
		Sources: cli.EnvVars("VERCHECK_FORMAT"),
	}
}

func supportedFormats() []string {
	return append([]string{formatText}, serializer.SupportedFormats()...)
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (string, error) {
	f := strings.ToLower(strings.TrimSpace(cmd.String("format")))
	if f == formatText {
		return f, nil
	}
	if serializer.Format(f).IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, supportedFormats())
	}
	return f, nil
}

// writeOutput writes v to --output or stdout. The text format is rendered by
// text; every other format goes through the serializer.
func writeOutput(ctx context.Context, cmd *cli.Command, format string, v any, text func(io.Writer) error) error {
	path := strings.TrimSpace(cmd.String("output"))

	if format == formatText {
		if path == "" {
			return text(cmd.Root().Writer)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file %q: %w", path, err)
		}
		if err := text(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	var w *serializer.Writer
	if path == "" {
		w = serializer.NewWriter(serializer.Format(format), cmd.Root().Writer)
	} else {
		w = serializer.NewFileWriterOrStdout(serializer.Format(format), path)
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return w.Serialize(ctx, v)
}
