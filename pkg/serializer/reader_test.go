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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testPair struct {
	Version1 string `json:"version1" yaml:"version1"`
	Version2 string `json:"version2" yaml:"version2"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"pairs.json", FormatJSON},
		{"pairs.YAML", FormatYAML},
		{"pairs.yml", FormatYAML},
		{"report.txt", FormatTable},
		{"noext", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
	}{
		{"", FormatJSON},
		{"application/json", FormatJSON},
		{"application/json; charset=utf-8", FormatJSON},
		{"application/x-yaml", FormatYAML},
		{"application/yaml", FormatYAML},
		{"text/yaml; charset=utf-8", FormatYAML},
		{"text/plain", FormatJSON},
		{";;;", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := FormatFromContentType(tt.contentType); got != tt.want {
				t.Errorf("FormatFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	if _, err := NewReader(FormatTable, strings.NewReader("")); err == nil {
		t.Error("expected error for table format")
	}
	if _, err := NewReader(Format("xml"), strings.NewReader("")); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := NewReader(FormatYAML, strings.NewReader("")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    testPair
		wantErr bool
	}{
		{"json", FormatJSON, `{"version1":"1.2","version2":"1.3"}`, testPair{"1.2", "1.3"}, false},
		{"yaml", FormatYAML, "version1: \"1.2\"\nversion2: \"1.3\"\n", testPair{"1.2", "1.3"}, false},
		{"invalid json", FormatJSON, `{invalid}`, testPair{}, true},
		{"invalid yaml", FormatYAML, "version1: [", testPair{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			var got testPair
			err = r.Deserialize(&got)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_DeserializeEmpty(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		r, err := NewReader(f, strings.NewReader(""))
		if err != nil {
			t.Fatalf("NewReader failed: %v", err)
		}
		var got testPair
		if err := r.Deserialize(&got); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("%s: expected ErrEmptyInput, got %v", f, err)
		}
	}
}

func TestReader_NilChecks(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testPair{}); err == nil {
		t.Error("expected error for nil reader")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader should be a no-op, got %v", err)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.yaml")
	content := "- version1: \"1.0\"\n  version2: \"1.0.0\"\n- version1: \"2\"\n  version2: \"1.9\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	pairs, err := FromFile[[]testPair](context.Background(), path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if len(*pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(*pairs))
	}
	if (*pairs)[1].Version1 != "2" {
		t.Errorf("unexpected second pair %+v", (*pairs)[1])
	}

	if _, err := FromFile[[]testPair](context.Background(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromFile_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"version1":"1.2","version2":"1.2.1"}]`))
	}))
	defer srv.Close()

	pairs, err := FromFile[[]testPair](context.Background(), srv.URL+"/pairs.json")
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if len(*pairs) != 1 || (*pairs)[0].Version2 != "1.2.1" {
		t.Errorf("unexpected pairs %+v", *pairs)
	}
}

func TestDecodeBody(t *testing.T) {
	got, err := DecodeBody[testPair](strings.NewReader("version1: '1'\nversion2: '2'"), "application/x-yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Version1 != "1" || got.Version2 != "2" {
		t.Errorf("unexpected result %+v", got)
	}

	if _, err := DecodeBody[testPair](strings.NewReader(""), "application/json"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := DecodeBody[testPair](nil, "application/json"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for nil body, got %v", err)
	}
}
