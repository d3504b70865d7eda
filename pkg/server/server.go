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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/version-checker/pkg/defaults"
	"github.com/NVIDIA/version-checker/pkg/logging"
)

// Server is the HTTP server with middleware, probes and graceful shutdown.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// New creates a new Server from environment defaults and the given options.
func New(opts ...Option) *Server {
	s := &Server{
		config: parseConfig(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(s.config.Address, fmt.Sprintf("%d", s.config.Port)),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}

	return s
}

// Handler returns the root HTTP handler, including system endpoints.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Config returns the effective server configuration.
func (s *Server) Config() *Config {
	return s.config
}

// SetReady sets the readiness state reported by /ready.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports the current readiness state.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves HTTP until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves HTTP on ln until ctx is canceled. On cancellation the server
// is shut down gracefully and Serve returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.SetReady(true)
	slog.Info("server listening", "address", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.WithoutCancel(ctx))
	case err := <-errChan:
		s.SetReady(false)
		return err
	}
}

// Shutdown marks the server not ready and drains in-flight requests within
// the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout.String())
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Run starts the server and blocks until SIGINT, SIGTERM or ctx cancellation.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server",
		slog.String("name", s.config.Name),
		slog.String("version", s.config.Version),
		slog.String("address", s.httpServer.Addr),
		slog.Any("rateLimit", float64(s.config.RateLimit)),
		slog.Int("rateLimitBurst", s.config.RateLimitBurst),
		slog.Int("maxBulkRequests", s.config.MaxBulkRequests),
		slog.Duration("readTimeout", s.config.ReadTimeout),
		slog.Duration("writeTimeout", s.config.WriteTimeout),
		slog.Duration("idleTimeout", s.config.IdleTimeout),
		slog.Duration("shutdownTimeout", s.config.ShutdownTimeout),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
