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

package defaults

import "time"

// Handler timeouts for HTTP request processing.
const (
	// CompareHandlerTimeout is the timeout for a single comparison request.
	CompareHandlerTimeout = 5 * time.Second

	// BatchHandlerTimeout is the timeout for a batch comparison request.
	BatchHandlerTimeout = 30 * time.Second

	// CompareCacheTTL is the Cache-Control max-age for GET comparison
	// responses. Results depend only on the query, so they never go stale.
	CompareCacheTTL = 24 * time.Hour
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Server request limits.
const (
	// MaxBulkRequests is the default maximum number of pairs in one batch request.
	MaxBulkRequests = 100

	// MaxRequestBodyBytes caps the size of POST bodies.
	MaxRequestBodyBytes = 1 << 20
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// CLI settings.
const (
	// CLIBatchTimeout bounds a whole batch command, including reading input.
	CLIBatchTimeout = 5 * time.Minute

	// CLIBatchConcurrency is the default number of concurrent comparisons
	// in a batch run.
	CLIBatchConcurrency = 8
)
