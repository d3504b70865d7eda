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
	"strings"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	// vendorMediaPrefix is the vendor MIME type prefix used for negotiation,
	// e.g. application/vnd.nvidia.vercheck.v1+json
	vendorMediaPrefix = "application/vnd.nvidia.vercheck."
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion extracts the API version from the Accept header.
// Unknown or missing versions fall back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, accept := range strings.Split(r.Header.Get("Accept"), ",") {
		accept = strings.TrimSpace(accept)
		rest, ok := strings.CutPrefix(accept, vendorMediaPrefix)
		if !ok {
			continue
		}
		// "v1+json;q=0.9" -> "v1"
		version, _, _ := strings.Cut(rest, "+")
		version, _, _ = strings.Cut(version, ";")
		if isValidAPIVersion(version) {
			return version
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(version string) bool {
	return supportedAPIVersions[version]
}

// SetAPIVersionHeader sets the API version header in the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
