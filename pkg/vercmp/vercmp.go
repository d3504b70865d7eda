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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Separator delimits version components.
const Separator = "."

// MaxComponent is the largest value a single version component may hold.
const MaxComponent = math.MaxInt32

// Result is the outcome of comparing version1 against version2.
type Result string

const (
	// Before means version1 sorts before version2.
	Before Result = "before"
	// After means version1 sorts after version2.
	After Result = "after"
	// Equal means both versions are equivalent, ignoring trailing zero components.
	Equal Result = "equal"
	// Error means at least one of the inputs is not a valid version string.
	Error Result = "error"
)

// String returns the string representation of the Result.
func (r Result) String() string {
	return string(r)
}

// IsValid checks if the Result is one of the four recognized values.
func (r Result) IsValid() bool {
	switch r {
	case Before, After, Equal, Error:
		return true
	default:
		return false
	}
}

// Invert returns the result of the same comparison with the arguments swapped.
// Equal and Error are unchanged.
func (r Result) Invert() Result {
	switch r {
	case Before:
		return After
	case After:
		return Before
	default:
		return r
	}
}

// ResultFromSign maps a three-way comparison value to a Result:
// negative is Before, zero is Equal and positive is After.
func ResultFromSign(n int) Result {
	switch {
	case n < 0:
		return Before
	case n > 0:
		return After
	default:
		return Equal
	}
}

// ParseResult converts a result string such as "before" into a Result.
func ParseResult(s string) (Result, error) {
	r := Result(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown comparison result %q, supported values: %v", s, SupportedResults())
	}
	return r, nil
}

// SupportedResults returns all result values in display order.
func SupportedResults() []string {
	return []string{
		string(Before),
		string(Equal),
		string(After),
		string(Error),
	}
}

// Vector is a parsed version: one non-negative integer per component.
type Vector []int

// String joins the components with the separator, e.g. "1.4.2".
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, Separator)
}

// Parse splits s on '.' and parses every segment as an integer.
// The empty string yields a single empty segment and therefore fails.
// The returned error is always a *ParseError.
func Parse(s string) (Vector, error) {
	segments := strings.Split(s, Separator)
	v := make(Vector, 0, len(segments))

	for i, seg := range segments {
		n, err := parseComponent(seg)
		if err != nil {
			return nil, &ParseError{
				Input:   s,
				Segment: seg,
				Index:   i,
				Err:     err,
			}
		}
		v = append(v, n)
	}

	return v, nil
}

func parseComponent(seg string) (int, error) {
	if seg == "" {
		return 0, ErrEmptyComponent
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return 0, ErrNonNumeric
		}
	}
	// only digits remain, so the sole failure mode is overflow
	n, err := strconv.ParseInt(seg, 10, 32)
	if err != nil {
		return 0, ErrOutOfRange
	}
	return int(n), nil
}

// CompareVectors returns -1 if a sorts before b, 1 if after and 0 if they are
// equal. Trailing zero components are insignificant, so 1.2 equals 1.2.0.
// Returns ErrEmptyVersion if either vector has no components.
func CompareVectors(a, b Vector) (int, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyVersion
	}

	// Walk the shorter vector against the longer one and flip the sign back
	// if a was the longer.
	if len(a) > len(b) {
		return -beforeOrAfter(b, a), nil
	}
	return beforeOrAfter(a, b), nil
}

// beforeOrAfter requires len(short) <= len(long).
func beforeOrAfter(short, long Vector) int {
	i := 0
	for ; i < len(short); i++ {
		if short[i] > long[i] {
			return 1
		}
		if short[i] < long[i] {
			return -1
		}
	}

	for ; i < len(long); i++ {
		if long[i] != 0 {
			return -1
		}
	}

	return 0
}

// CompareDetailed compares version1 against version2. When either input is
// malformed it returns Error together with the *ParseError (or
// ErrEmptyVersion) that caused it; otherwise the error is nil.
func CompareDetailed(version1, version2 string) (Result, error) {
	v1, err := Parse(version1)
	if err != nil {
		return Error, err
	}
	v2, err := Parse(version2)
	if err != nil {
		return Error, err
	}

	n, err := CompareVectors(v1, v2)
	if err != nil {
		return Error, err
	}
	return ResultFromSign(n), nil
}

// Compare reports how version1 orders relative to version2: Before, After,
// Equal, or Error when either input is not a dot-delimited list of integers.
func Compare(version1, version2 string) Result {
	r, _ := CompareDetailed(version1, version2)
	return r
}
