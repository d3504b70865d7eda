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
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	cnserrors "github.com/NVIDIA/version-checker/pkg/errors"
	"github.com/NVIDIA/version-checker/pkg/serializer"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cnserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as a structured error response. A
// *StructuredError in the chain determines status, code and retryability;
// any other error is reported as INTERNAL with the given fallback message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *cnserrors.StructuredError
	if !stderrors.As(err, &se) {
		WriteError(w, r, http.StatusInternalServerError, cnserrors.ErrCodeInternal,
			fallbackMessage, true, mergeDetails(map[string]any{"error": err.Error()}, extraDetails))
		return
	}

	details := mergeDetails(se.Context, extraDetails)
	if se.Cause != nil {
		details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
	}

	WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code cnserrors.ErrorCode) int {
	switch code {
	case cnserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cnserrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case cnserrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code cnserrors.ErrorCode) bool {
	switch code {
	case cnserrors.ErrCodeTimeout, cnserrors.ErrCodeUnavailable,
		cnserrors.ErrCodeRateLimitExceeded, cnserrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b's entries overriding a's, or nil if
// both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
