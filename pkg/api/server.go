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

package api

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/version-checker/pkg/logging"
	"github.com/NVIDIA/version-checker/pkg/server"
)

const (
	name           = "vercheckd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/version-checker/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	return ServeContext(context.Background())
}

// ServeContext is Serve with a caller-controlled context; canceling ctx
// triggers graceful shutdown.
func ServeContext(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := newServer()

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newServer wires the comparison routes into a server configured from the
// environment.
func newServer() *server.Server {
	cfg := server.NewConfig()
	h := NewHandler(WithMaxBulkRequests(cfg.MaxBulkRequests))

	return server.New(
		server.WithConfig(cfg),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)
}
