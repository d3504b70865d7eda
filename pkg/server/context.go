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

import "context"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// contextKeyRequestID is the context key for request ID
	contextKeyRequestID contextKey = "requestID"
	// contextKeyAPIVersion is the context key for API version
	contextKeyAPIVersion contextKey = "apiVersion"
)

// RequestIDFromContext returns the request ID set by the request ID
// middleware, or an empty string outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// APIVersionFromContext returns the negotiated API version, or DefaultAPIVersion.
func APIVersionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyAPIVersion).(string); ok && v != "" {
		return v
	}
	return DefaultAPIVersion
}
