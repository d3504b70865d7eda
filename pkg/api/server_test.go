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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Serve blocks until shutdown, so these tests cover its wiring through
// newServer and the package build variables instead.

func TestConstants(t *testing.T) {
	if name != "vercheckd" {
		t.Errorf("name = %q, want %q", name, "vercheckd")
	}

	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}

	if version == "" || commit == "" || date == "" {
		t.Error("build variables should not be empty")
	}
}

func TestRouteConfiguration(t *testing.T) {
	routes := NewHandler().Routes()

	for _, path := range []string{
		"/v1/compare",
		"/v1/compare/batch",
		"/VersionChecker.asmx",
		"/VersionChecker.asmx/CompareVersions",
	} {
		if handler, exists := routes[path]; !exists {
			t.Errorf("expected %s route to exist", path)
		} else if handler == nil {
			t.Errorf("expected %s handler to be non-nil", path)
		}
	}

	if len(routes) != 4 {
		t.Errorf("expected exactly 4 routes, got %d", len(routes))
	}
}

func TestNewServer(t *testing.T) {
	t.Setenv("MAX_BULK_REQUESTS", "2")

	s := newServer()

	if s.Config().Name != name {
		t.Errorf("expected server name %q, got %q", name, s.Config().Name)
	}
	if s.Config().MaxBulkRequests != 2 {
		t.Errorf("expected max bulk 2, got %d", s.Config().MaxBulkRequests)
	}

	// the batch limit reaches the handler through the server config
	req := httptest.NewRequest(http.MethodPost, "/v1/compare/batch", nil)
	req.Body = http.NoBody
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/compare/batch", strings.NewReader(batchOf(3)))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected batch over the limit to be rejected, got %d", w.Code)
	}
}
