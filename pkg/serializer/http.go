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

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/NVIDIA/version-checker/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Serialize first to detect errors before writing headers
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

// RespondXML writes an XML document, including the XML declaration, with the
// given status code and content type. Like RespondJSON it encodes before
// writing any header.
func RespondXML(w http.ResponseWriter, statusCode int, contentType string, data any) {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("xml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

const (
	HttpReaderUserAgent = "vercheck-serializer/1.0"
)

// NewHTTPClient returns an http.Client with pooled connections, TLS 1.2+ and
// the package default timeouts. A non-positive timeout uses defaults.HTTPClientTimeout.
// A timeout longer than defaults.HTTPResponseHeaderTimeout also extends the
// wait for response headers, so the total timeout is never cut short.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaults.HTTPClientTimeout
	}
	transport := newDefaultHTTPTransport()
	if timeout > transport.ResponseHeaderTimeout {
		transport.ResponseHeaderTimeout = timeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		// Connection pooling
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,

		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,

		IdleConnTimeout:   defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2: true,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// HttpReaderOption defines a configuration option for HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches documents over HTTP.
type HttpReader struct {
	UserAgent string
	Client    *http.Client
}

func WithUserAgent(userAgent string) HttpReaderOption {
	return func(r *HttpReader) {
		r.UserAgent = userAgent
	}
}

func WithTotalTimeout(timeout time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		r.Client = NewHTTPClient(timeout)
	}
}

func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		r.Client = client
	}
}

// NewHttpReader creates a new HttpReader with the specified options.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent: HttpReaderUserAgent,
		Client:    NewHTTPClient(defaults.HTTPClientTimeout),
	}

	for _, opt := range options {
		opt(r)
	}

	if r.UserAgent == "" {
		r.UserAgent = HttpReaderUserAgent
	}
	if r.Client == nil {
		r.Client = NewHTTPClient(defaults.HTTPClientTimeout)
	}
	return r
}

// ReadWithContext fetches data from the specified URL and returns it as a byte slice.
// The request is bound to the provided context for cancellation and deadlines.
func (r *HttpReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", r.UserAgent)

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
