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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyInput is returned when there is nothing to deserialize.
var ErrEmptyInput = errors.New("input is empty")

// Reader handles deserialization of structured data from JSON or YAML.
// Close must be called when the Reader was created with NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a new Reader for deserializing data from an io.Reader source.
// Returns an error for unknown formats and for FormatTable, which is write-only.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}

	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}

	return r, nil
}

// NewFileReader creates a new Reader that reads from a local file path or an
// http(s) URL. Remote content is fetched into memory with the default HttpReader.
func NewFileReader(ctx context.Context, format Format, path string) (*Reader, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		data, err := NewHttpReader().ReadWithContext(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return NewReader(format, bytes.NewReader(data))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReader(format, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Deserialize reads data from the input source and unmarshals it into v,
// which must be a pointer. An empty input returns ErrEmptyInput.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}

	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	var err error
	switch r.format {
	case FormatJSON:
		err = json.NewDecoder(r.input).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r.input).Decode(v)
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}

	if errors.Is(err, io.EOF) {
		return ErrEmptyInput
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", strings.ToUpper(string(r.format)), err)
	}
	return nil
}

// Close releases the underlying file, if any. Safe to call multiple times.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}

	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil // Prevent double-close
		return err
	}
	return nil
}

// FromFile loads a file path or http(s) URL and deserializes it into T.
// The format is detected from the path extension.
func FromFile[T any](ctx context.Context, path string) (*T, error) {
	r, err := NewFileReader(ctx, FormatFromPath(path), path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %s: %w", path, err)
	}
	return &v, nil
}

// DecodeBody deserializes an HTTP request body into T, choosing JSON or YAML
// from the Content-Type header.
func DecodeBody[T any](body io.Reader, contentType string) (*T, error) {
	if body == nil {
		return nil, ErrEmptyInput
	}

	r, err := NewReader(FormatFromContentType(contentType), body)
	if err != nil {
		return nil, err
	}

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, err
	}
	return &v, nil
}
