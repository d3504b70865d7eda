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

// Package cli implements the vercheck command-line interface.
//
// # Commands
//
//	vercheck compare VERSION1 VERSION2   compare two versions
//	vercheck batch --input FILE|URL      compare a list of pairs, write a ComparisonReport
//	vercheck image IMAGE1 IMAGE2         compare the version tags of two images
//
// Every command compares locally by default. With --server (or
// VERCHECK_SERVER) comparisons are sent to a vercheckd instance through
// pkg/client.
//
// # Output
//
// --format selects text (the bare result), json, yaml or table; --output
// writes to a file instead of stdout. The default can be set with
// VERCHECK_FORMAT.
//
// # Exit Codes
//
// A result of "error" is an answer, not a failure, and exits 0. Pass
// --fail-on-error to exit 1 instead. Invalid flags, unreadable input and
// unreachable servers always exit 1.
//
// # Global Flags
//
//	--log-level  debug, info, warn or error (env LOG_LEVEL)
//	--debug      same as --log-level=debug
package cli
