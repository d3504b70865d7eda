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

// Package api provides the HTTP API layer of the version-checker service.
//
// It binds the version comparator in pkg/vercmp to HTTP and delegates the
// server lifecycle to pkg/server.
//
// # Usage
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/version-checker/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET /v1/compare?version1=A&version2=B - Compare two versions
//   - POST /v1/compare - Compare two versions from a JSON or YAML body
//   - POST /v1/compare/batch - Compare a list of pairs
//   - GET|POST /VersionChecker.asmx/CompareVersions - Legacy HTTP binding (XML)
//   - POST /VersionChecker.asmx - Legacy SOAP 1.1 binding
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Results
//
// A comparison always answers with one of "before", "after", "equal" or
// "error". An unparseable version is not a failed request: the JSON API
// returns 200 with result "error" and a reason. Requests are rejected with a
// structured 400 only when a parameter is missing or the body cannot be
// decoded.
//
// Example:
//
//	curl "http://localhost:8080/v1/compare?version1=1.2&version2=1.2.1"
//	{"version1":"1.2","version2":"1.2.1","result":"before"}
//
//	curl -X POST http://localhost:8080/v1/compare/batch \
//	  -H "Content-Type: application/yaml" \
//	  --data-binary @pairs.yaml
//
// # Legacy Bindings
//
// The /VersionChecker.asmx routes keep clients of the original web service
// working unchanged. The HTTP binding answers with
//
//	<string xmlns="http://tempuri.org/">before</string>
//
// and the SOAP binding with a CompareVersionsResponse envelope, or a
// soap:Client fault for malformed requests.
//
// # Configuration
//
// The server is configured via environment variables, see pkg/server.
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/version-checker/pkg/api.version=1.0.0'"
package api
