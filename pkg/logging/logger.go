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

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvLogLevel is the environment variable that sets the log level.
	EnvLogLevel = "LOG_LEVEL"
)

// ParseLogLevel converts a level name into a slog.Level.
// Accepts debug, info, warn, warning and error in any case.
// Unknown or empty values default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger writing to stderr, annotated with
// the module name and version. Debug level adds source locations.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newStructuredLogger(os.Stderr, module, version, level)
}

func newStructuredLogger(w io.Writer, module, version, level string) *slog.Logger {
	lvl := ParseLogLevel(level)
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger sets the process-wide slog default using the
// level from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(EnvLogLevel))
}

// SetDefaultStructuredLoggerWithLevel sets the process-wide slog default with
// an explicit level.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// SetDefaultCLILogger sets a human-readable text logger on stderr.
// CLI output goes to stdout, so logs never mix with results.
func SetDefaultCLILogger(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	})
	slog.SetDefault(slog.New(h))
}

// NewLogLogger returns a standard library *log.Logger that forwards to the
// default slog handler at the given level.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	h := slog.Default().Handler()
	if addSource {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level, AddSource: true})
	}
	return slog.NewLogLogger(h, level)
}
