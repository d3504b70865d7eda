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
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"/test": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}

	s := New(WithHandler(routes), WithName("test-server"), WithVersion("1.0.0"))
	if s == nil {
		t.Fatal("expected server instance, got nil")
		return
	}

	if s.config == nil {
		t.Error("expected config to be initialized")
	}

	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}

	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}

	if s.config.Name != "test-server" || s.config.Version != "1.0.0" {
		t.Errorf("unexpected identity: %s %s", s.config.Name, s.config.Version)
	}

	if _, ok := s.config.Handlers["/test"]; !ok {
		t.Error("expected /test handler to be registered")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New(WithName("vercheckd"), WithVersion("v1.2.3"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	var health HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if health.Status != "healthy" || health.Name != "vercheckd" || health.Version != "v1.2.3" {
		t.Errorf("unexpected health response: %+v", health)
	}

	req = httptest.NewRequest(http.MethodPost, "/health", nil)
	w = httptest.NewRecorder()
	s.handleHealth(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
	if got := w.Header().Get("Allow"); got != "GET, HEAD" {
		t.Errorf("expected Allow header %q, got %q", "GET, HEAD", got)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Code != "METHOD_NOT_ALLOWED" {
		t.Errorf("expected code METHOD_NOT_ALLOWED, got %q", errResp.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "ready state",
			ready:          true,
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
		},
		{
			name:           "not ready state",
			ready:          false,
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetReady(tt.ready)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			s.handleReady(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var resp HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.expectedState {
				t.Errorf("expected status %q, got %q", tt.expectedState, resp.Status)
			}
		})
	}
}

func TestRootEndpoint(t *testing.T) {
	s := New(
		WithName("vercheckd"),
		WithVersion("v0.1.0"),
		WithHandler(map[string]http.HandlerFunc{
			"/v1/compare": func(w http.ResponseWriter, _ *http.Request) {},
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp RootResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Name != "vercheckd" || resp.Version != "v0.1.0" {
		t.Errorf("unexpected identity: %+v", resp)
	}
	if len(resp.Routes) == 0 || resp.Routes[0] != "/v1/compare" {
		t.Errorf("expected /v1/compare first in routes, got %v", resp.Routes)
	}
}

func TestUnknownPath(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/v1/ping": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	}))

	// generate at least one instrumented request
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "vercheck_http_requests_total") || !strings.Contains(body, `path="/v1/ping"`) {
		t.Errorf("expected request metrics in output")
	}
}

func TestServeAndShutdown(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/v1/ping": func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "pong")
		},
	}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/ready"
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become ready: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	if s.IsReady() {
		t.Error("expected server not ready after shutdown")
	}
}
