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
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	cnserrors "github.com/NVIDIA/version-checker/pkg/errors"
	"github.com/NVIDIA/version-checker/pkg/serializer"
)

// RootResponse describes the service on the root endpoint.
type RootResponse struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	Ready     bool     `json:"ready" yaml:"ready"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Routes    []string `json:"routes" yaml:"routes"`
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Default handler
	mux.HandleFunc("/", s.handleDefault)

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(path, handler))
	}

	return mux
}

// routes returns the registered application routes in stable order.
func (s *Server) routes() []string {
	routes := make([]string, 0, len(s.config.Handlers)+3)
	for path := range s.config.Handlers {
		routes = append(routes, path)
	}
	sort.Strings(routes)
	return append(routes, "/health", "/ready", "/metrics")
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"Resource not found", false, map[string]any{"path": r.URL.Path})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, RootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.IsReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
