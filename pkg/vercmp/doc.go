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

// Package vercmp compares dot-delimited numeric version strings.
//
// A version string such as "1.4.2" is split on '.' and every segment is parsed
// as a non-negative integer. Two versions are compared component by component;
// when one version has more components than the other, the extra trailing
// components decide the ordering only if any of them is non-zero:
//
//	vercmp.Compare("1.2", "1.2.0")   // equal
//	vercmp.Compare("1.2", "1.2.1")   // before
//	vercmp.Compare("2.0", "1.9.9")   // after
//	vercmp.Compare("1.2.a", "1.0")   // error
//
// # Results
//
// Compare always returns one of four values: Before, After, Equal or Error.
// Malformed input never panics and never returns a Go error from Compare;
// it is reported as the Error result. Use CompareDetailed when the caller
// needs the underlying *ParseError, e.g. to log why a comparison failed.
//
// # Parsing Rules
//
// Segments must consist of ASCII digits only. Signs, whitespace and empty
// segments ("1..2", "1.", "") are rejected, as is any component larger than
// MaxComponent (2147483647). This is stricter than strconv.Atoi on purpose:
// components are non-negative, so "1.-1" and " 1" are errors rather than
// versions that sort before "1.0" and "1".
//
// Splitting follows strings.Split: the empty string produces a single empty
// segment, so Compare("", "1.0") fails on that segment. CompareVectors, which
// takes already-parsed vectors, rejects empty vectors with ErrEmptyVersion.
//
// All functions in this package are pure and safe for concurrent use.
package vercmp
