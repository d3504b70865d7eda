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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/NVIDIA/version-checker/pkg/defaults"
	cnserrors "github.com/NVIDIA/version-checker/pkg/errors"
	"github.com/NVIDIA/version-checker/pkg/serializer"
	"github.com/NVIDIA/version-checker/pkg/server"
	"github.com/NVIDIA/version-checker/pkg/vercmp"
)

// compareCacheTTL can be overridden for testing
var compareCacheTTL = defaults.CompareCacheTTL

// Handler serves the comparison endpoints.
type Handler struct {
	maxBulkRequests int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxBulkRequests caps the number of pairs accepted by the batch endpoint.
func WithMaxBulkRequests(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBulkRequests = n
		}
	}
}

// NewHandler returns a Handler with defaults applied.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		maxBulkRequests: defaults.MaxBulkRequests,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns every endpoint served by the Handler keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/compare":                          h.HandleCompare,
		"/v1/compare/batch":                    h.HandleBatch,
		"/VersionChecker.asmx":                 h.HandleSOAP,
		"/VersionChecker.asmx/CompareVersions": h.HandleCompareVersions,
	}
}

// HandleCompare compares one pair given as query parameters (GET) or as a
// JSON/YAML body (POST). A malformed version is not a request error: it is
// reported with status 200 and result "error".
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.CompareHandlerTimeout)
	defer cancel()

	var body *compareBody
	var err error

	switch r.Method {
	case http.MethodGet:
		body = compareBodyFromQuery(r)
	case http.MethodPost:
		defer r.Body.Close()
		body, err = serializer.DecodeBody[compareBody](r.Body, r.Header.Get("Content-Type"))
	default:
		writeMethodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return
	}

	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid compare request", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	if missing := body.missing(); missing != "" {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("Missing parameter: %s", missing), false, map[string]any{
				"param": missing,
			})
		return
	}

	if ctx.Err() != nil {
		server.WriteError(w, r, http.StatusGatewayTimeout, cnserrors.ErrCodeTimeout,
			"Request timed out", true, nil)
		return
	}

	resp := compare(r, bindingJSON, *body.Version1, *body.Version2)

	// Comparisons are deterministic, so GET results can be cached freely.
	if r.Method == http.MethodGet {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(compareCacheTTL.Seconds())))
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleBatch compares up to maxBulkRequests pairs from a JSON/YAML body and
// returns the results in request order. A pair missing either version
// rejects the whole batch, as it would on HandleCompare.
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.BatchHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, r, http.MethodPost)
		return
	}
	defer r.Body.Close()

	req, err := serializer.DecodeBody[batchBody](r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid batch request", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	if len(req.Pairs) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Batch request must contain at least one pair", false, nil)
		return
	}

	if len(req.Pairs) > h.maxBulkRequests {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Too many pairs in batch request", false, map[string]any{
				"count": len(req.Pairs),
				"max":   h.maxBulkRequests,
			})
		return
	}

	for i := range req.Pairs {
		if missing := req.Pairs[i].missing(); missing != "" {
			server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("Missing parameter: %s in pair %d", missing, i), false, map[string]any{
					"param": missing,
					"pair":  i,
				})
			return
		}
	}

	batchSize.Observe(float64(len(req.Pairs)))

	resp := BatchResponse{
		Results: make([]CompareResponse, 0, len(req.Pairs)),
	}
	for _, p := range req.Pairs {
		if ctx.Err() != nil {
			server.WriteError(w, r, http.StatusGatewayTimeout, cnserrors.ErrCodeTimeout,
				"Batch comparison timed out", true, map[string]any{
					"completed": len(resp.Results),
				})
			return
		}
		resp.Results = append(resp.Results, compare(r, bindingBatch, *p.Version1, *p.Version2))
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// compare runs one comparison and records it.
func compare(r *http.Request, binding, version1, version2 string) CompareResponse {
	resp := NewCompareResponse(version1, version2)
	comparisonsTotal.WithLabelValues(binding, resp.Result.String()).Inc()

	if resp.Result == vercmp.Error {
		slog.Debug("comparison failed",
			"requestID", server.RequestIDFromContext(r.Context()),
			"binding", binding,
			"reason", resp.Reason,
		)
	}
	return resp
}

func compareBodyFromQuery(r *http.Request) *compareBody {
	q := r.URL.Query()
	body := &compareBody{}
	if q.Has("version1") {
		v := q.Get("version1")
		body.Version1 = &v
	}
	if q.Has("version2") {
		v := q.Get("version2")
		body.Version2 = &v
	}
	return body
}

// missing returns the name of the first absent parameter, or "".
func (b *compareBody) missing() string {
	switch {
	case b == nil || b.Version1 == nil:
		return "version1"
	case b.Version2 == nil:
		return "version2"
	default:
		return ""
	}
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": allowed,
		})
}
