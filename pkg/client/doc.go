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

// Package client calls a remote vercheckd server.
//
// Usage:
//
//	c, err := client.New("http://localhost:8080")
//	if err != nil {
//	    return err
//	}
//	resp, err := c.Compare(ctx, "1.2", "1.2.1")
//	// resp.Result == vercmp.Before
//
// Errors returned by the client are *errors.StructuredError values: error
// responses from the server keep their code, message and details, network
// failures are reported as SERVICE_UNAVAILABLE and expired contexts as
// TIMEOUT. The client never retries; comparisons are deterministic and a
// failed call should be surfaced to the caller.
package client
