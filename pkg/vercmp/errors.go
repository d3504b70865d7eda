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

package vercmp

import (
	"errors"
	"fmt"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion   = errors.New("version has no components")
	ErrEmptyComponent = errors.New("version component is empty")
	ErrNonNumeric     = errors.New("version component is not numeric")
	ErrOutOfRange     = errors.New("version component is out of range")
)

// ParseError describes why a version string could not be parsed.
type ParseError struct {
	// Input is the full version string that failed to parse.
	Input string
	// Segment is the offending dot-delimited segment.
	Segment string
	// Index is the zero-based position of Segment in Input.
	Index int
	// Err is one of the package sentinel errors.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: component %d (%q): %v", e.Input, e.Index, e.Segment, e.Err)
}

// Unwrap returns the sentinel error for errors.Is support.
func (e *ParseError) Unwrap() error {
	return e.Err
}
