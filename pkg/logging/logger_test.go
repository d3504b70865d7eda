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
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}

func TestStructuredLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "vercheckd", "v1.2.3", "info")

	logger.Info("comparison", "result", "after")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vercheckd", entry["module"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "after", entry["result"])
	assert.NotContains(t, entry, "source")
}

func TestStructuredLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "m", "v", "warn")

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestStructuredLoggerDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "m", "v", "debug")

	logger.Debug("parsed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "source")
}

func TestSetDefaultStructuredLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv(EnvLogLevel, "error")
	SetDefaultStructuredLogger("vercheckd", "dev")

	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelError))
}

func TestNewLogLogger(t *testing.T) {
	assert.NotNil(t, NewLogLogger(slog.LevelInfo, false))
	assert.NotNil(t, NewLogLogger(slog.LevelWarn, true))
}
