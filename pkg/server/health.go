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
	"net/http"
	"time"

	cnserrors "github.com/NVIDIA/version-checker/pkg/errors"
	"github.com/NVIDIA/version-checker/pkg/serializer"
)

const (
	statusHealthy  = "healthy"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

// HealthResponse is the body of the health and readiness probes.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) probe(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Name:      s.config.Name,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
	}
}

// probeMethodAllowed answers anything but GET and HEAD with a 405.
func probeMethodAllowed(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}

// handleHealth is the liveness probe. It reports healthy for as long as the
// process can serve HTTP, including while shutting down.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !probeMethodAllowed(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.probe(statusHealthy))
}

// handleReady is the readiness probe. It fails until Serve has a listener
// and again once shutdown starts.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !probeMethodAllowed(w, r) {
		return
	}

	if !s.IsReady() {
		resp := s.probe(statusNotReady)
		resp.Reason = "service is not accepting comparisons"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, s.probe(statusReady))
}
