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
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/NVIDIA/version-checker/pkg/defaults"
	"golang.org/x/time/rate"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Request limits
	MaxBulkRequests     int
	MaxRequestBodyBytes int64

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns defaults overridden by environment variables
func parseConfig() *Config {
	cfg := &Config{
		Name:                "server",
		Version:             "undefined",
		Address:             "",
		Port:                8080,
		RateLimit:           100, // 100 req/s
		RateLimitBurst:      200, // burst of 200
		MaxBulkRequests:     defaults.MaxBulkRequests,
		MaxRequestBodyBytes: defaults.MaxRequestBodyBytes,
		ReadTimeout:         defaults.ServerReadTimeout,
		WriteTimeout:        defaults.ServerWriteTimeout,
		IdleTimeout:         defaults.ServerIdleTimeout,
		ShutdownTimeout:     defaults.ServerShutdownTimeout,
	}

	if port, ok := envInt("PORT"); ok && port > 0 && port < 65536 {
		cfg.Port = port
	}

	// Allow customization of shutdown timeout to match K8s eviction grace period
	if seconds, ok := envInt("SHUTDOWN_TIMEOUT_SECONDS"); ok && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	if limit, ok := envInt("RATE_LIMIT"); ok && limit > 0 {
		cfg.RateLimit = rate.Limit(limit)
	}

	if burst, ok := envInt("RATE_LIMIT_BURST"); ok && burst > 0 {
		cfg.RateLimitBurst = burst
	}

	if maxBulk, ok := envInt("MAX_BULK_REQUESTS"); ok && maxBulk > 0 {
		cfg.MaxBulkRequests = maxBulk
	}

	return cfg
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported by the root and probe endpoints.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version reported by the root and probe endpoints.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler registers application routes. Every handler is wrapped with
// the full middleware chain; system endpoints are not.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithConfig replaces the whole configuration. Apply it before other options.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}
