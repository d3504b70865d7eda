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

// Package serializer provides utilities for serializing data to various formats.
//
// The package supports three output formats:
//   - JSON: Machine-readable structured data with indentation
//   - YAML: Human-readable format, also accepted for batch input files
//   - Table: Flattened FIELD/VALUE listing for terminals
//
// Usage:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer writer.Close()
//	if err := writer.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// Reading batch input from a file or URL:
//
//	pairs, err := serializer.FromFile[[]Pair](ctx, "pairs.yaml")
//
// For HTTP handlers:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//	req, err := serializer.DecodeBody[CompareRequest](r.Body, r.Header.Get("Content-Type"))
package serializer
