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

package header

import (
	"fmt"
	"time"
)

// APIVersion is the current schema version of documents produced by vercheck.
const APIVersion = "vercheck.nvidia.com/v1alpha1"

// Kind represents the type of a vercheck document.
type Kind string

const (
	// KindComparisonPairs is a batch input file listing version pairs.
	KindComparisonPairs Kind = "ComparisonPairs"
	// KindComparisonReport is the output of a batch comparison.
	KindComparisonReport Kind = "ComparisonReport"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindComparisonPairs, KindComparisonReport:
		return true
	default:
		return false
	}
}

// Well-known metadata keys.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataSource    = "source"
)

// Header identifies a vercheck document, Kubernetes style.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithKind sets the Kind.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the APIVersion.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// WithMetadata adds a metadata key-value pair. Empty values are skipped.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if value == "" {
			return
		}
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithTimestamp records t, in UTC and RFC 3339 form, as the creation time.
func WithTimestamp(t time.Time) Option {
	return WithMetadata(MetadataTimestamp, t.UTC().Format(time.RFC3339))
}

// New creates a Header with the current APIVersion and the given options.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: APIVersion,
		Metadata:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Validate checks that a document read from outside declares the expected
// kind. An empty header is accepted so plain lists can be used as input.
func (h *Header) Validate(expected Kind) error {
	if h == nil || (h.Kind == "" && h.APIVersion == "") {
		return nil
	}
	if !h.Kind.IsValid() {
		return fmt.Errorf("unknown kind %q", h.Kind)
	}
	if h.Kind != expected {
		return fmt.Errorf("unexpected kind %q, want %q", h.Kind, expected)
	}
	if h.APIVersion != "" && h.APIVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion %q, want %q", h.APIVersion, APIVersion)
	}
	return nil
}
