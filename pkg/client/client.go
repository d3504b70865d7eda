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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NVIDIA/version-checker/pkg/api"
	cnserrors "github.com/NVIDIA/version-checker/pkg/errors"
	"github.com/NVIDIA/version-checker/pkg/serializer"
	"github.com/NVIDIA/version-checker/pkg/server"
)

const (
	// DefaultUserAgent identifies the client to the server.
	DefaultUserAgent = "vercheck-client/1.0"

	comparePath = "/v1/compare"
	batchPath   = "/v1/compare/batch"

	// maxErrorBodyBytes bounds how much of an error response is read.
	maxErrorBodyBytes = 64 << 10
)

// Client is a vercheckd API client. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the total timeout of every call. A non-positive timeout
// keeps the default.
func WithTimeout(timeout time.Duration) Option {
	return WithHTTPClient(serializer.NewHTTPClient(timeout))
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New returns a Client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "invalid server URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"server URL must use http or https", map[string]any{"url": baseURL})
	}
	if u.Host == "" {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"server URL has no host", map[string]any{"url": baseURL})
	}

	c := &Client{
		baseURL:    u,
		httpClient: serializer.NewHTTPClient(0),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Compare asks the server to compare version1 against version2. A malformed
// version is not an error: the response carries result "error" and a reason.
func (c *Client) Compare(ctx context.Context, version1, version2 string) (*api.CompareResponse, error) {
	var resp api.CompareResponse
	req := api.CompareRequest{Version1: version1, Version2: version2}
	if err := c.post(ctx, comparePath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompareBatch compares several pairs in one call. Results are in input order.
func (c *Client) CompareBatch(ctx context.Context, pairs []api.CompareRequest) (*api.BatchResponse, error) {
	var resp api.BatchResponse
	if err := c.post(ctx, batchPath, api.BatchRequest{Pairs: pairs}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) != len(pairs) {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInternal,
			"server returned an incomplete batch", map[string]any{
				"expected": len(pairs),
				"received": len(resp.Results),
			})
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to encode request", err)
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.nvidia.vercheck.v1+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
			return cnserrors.WrapWithContext(cnserrors.ErrCodeTimeout, "request to server timed out", err,
				map[string]any{"url": endpoint})
		}
		return cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, "failed to reach server", err,
			map[string]any{"url": endpoint})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeInternal, "failed to decode server response", err,
			map[string]any{"url": endpoint})
	}
	return nil
}

// decodeError turns a non-2xx response into a StructuredError, keeping the
// server's code when the body is a structured error response.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var er server.ErrorResponse
	if err := json.Unmarshal(data, &er); err != nil || er.Code == "" {
		return cnserrors.NewWithContext(codeFromStatus(resp.StatusCode),
			fmt.Sprintf("server returned %s", resp.Status), map[string]any{
				"status": resp.StatusCode,
				"body":   strings.TrimSpace(string(data)),
			})
	}

	ctx := map[string]any{
		"status":    resp.StatusCode,
		"requestId": er.RequestID,
		"retryable": er.Retryable,
	}
	for k, v := range er.Details {
		ctx[k] = v
	}
	return cnserrors.NewWithContext(cnserrors.ErrorCode(er.Code), er.Message, ctx)
}

func codeFromStatus(status int) cnserrors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return cnserrors.ErrCodeInvalidRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return cnserrors.ErrCodeUnauthorized
	case http.StatusNotFound:
		return cnserrors.ErrCodeNotFound
	case http.StatusMethodNotAllowed:
		return cnserrors.ErrCodeMethodNotAllowed
	case http.StatusTooManyRequests:
		return cnserrors.ErrCodeRateLimitExceeded
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return cnserrors.ErrCodeUnavailable
	case http.StatusGatewayTimeout:
		return cnserrors.ErrCodeTimeout
	default:
		return cnserrors.ErrCodeInternal
	}
}
