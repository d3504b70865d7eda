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

// Package server provides the HTTP server shared by the version-checker API.
//
// The server is stateless and carries the production concerns every route
// needs, so handlers only implement request semantics:
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking via the X-Request-Id header
//   - API version negotiation via Accept: application/vnd.nvidia.vercheck.v1+json
//   - Panic recovery
//   - Request body size limits
//   - Prometheus RED metrics on /metrics
//   - Health and readiness probes for Kubernetes
//   - Graceful shutdown on SIGINT/SIGTERM
//
// # Usage
//
//	s := server.New(
//	    server.WithName("vercheckd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/compare": handleCompare,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// Defaults can be overridden with environment variables:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//	RATE_LIMIT                requests per second (default 100)
//	RATE_LIMIT_BURST          token bucket burst (default 200)
//	MAX_BULK_REQUESTS         maximum pairs per batch request (default 100)
//
// # Errors
//
// Every error from a wrapped handler is a JSON ErrorResponse carrying the
// request ID, a code from pkg/errors, and whether the client may retry.
// Use WriteError or WriteErrorFromErr from handlers for the same shape.
package server
