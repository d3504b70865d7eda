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

package server

import (
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/version-checker/pkg/defaults"
)

func TestParseConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SHUTDOWN_TIMEOUT_SECONDS", "RATE_LIMIT", "RATE_LIMIT_BURST", "MAX_BULK_REQUESTS"} {
		t.Setenv(key, "")
	}

	cfg := parseConfig()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.RateLimit != rate.Limit(100) || cfg.RateLimitBurst != 200 {
		t.Errorf("unexpected rate limit %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
	}
	if cfg.MaxBulkRequests != defaults.MaxBulkRequests {
		t.Errorf("expected max bulk %d, got %d", defaults.MaxBulkRequests, cfg.MaxBulkRequests)
	}
	if cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
		t.Errorf("expected shutdown timeout %v, got %v", defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "45")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("RATE_LIMIT_BURST", "20")
	t.Setenv("MAX_BULK_REQUESTS", "5")

	cfg := parseConfig()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.ShutdownTimeout != 45*time.Second {
		t.Errorf("expected 45s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.RateLimit != rate.Limit(10) || cfg.RateLimitBurst != 20 {
		t.Errorf("unexpected rate limit %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
	}
	if cfg.MaxBulkRequests != 5 {
		t.Errorf("expected max bulk 5, got %d", cfg.MaxBulkRequests)
	}
}

func TestParseConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "-3")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("MAX_BULK_REQUESTS", "")

	cfg := parseConfig()

	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
	if cfg.ShutdownTimeout != defaults.ServerShutdownTimeout {
		t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.RateLimit != rate.Limit(100) {
		t.Errorf("expected default rate limit, got %v", cfg.RateLimit)
	}
}

func TestWithConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 7070

	s := New(WithConfig(cfg), WithName("custom"))

	if s.Config().Port != 7070 || s.Config().Name != "custom" {
		t.Errorf("expected options to apply on top of config, got %+v", s.Config())
	}

	if s := New(WithConfig(nil)); s.Config() == nil {
		t.Error("expected nil config to be ignored")
	}
}
