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

package api

import "github.com/NVIDIA/version-checker/pkg/vercmp"

// CompareRequest is a pair of versions to compare.
type CompareRequest struct {
	Version1 string `json:"version1" yaml:"version1"`
	Version2 string `json:"version2" yaml:"version2"`
}

// CompareResponse is the outcome of one comparison. Reason is set only when
// Result is vercmp.Error and explains which input failed to parse.
type CompareResponse struct {
	Version1 string        `json:"version1" yaml:"version1"`
	Version2 string        `json:"version2" yaml:"version2"`
	Result   vercmp.Result `json:"result" yaml:"result"`
	Reason   string        `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// BatchRequest carries several pairs compared in one call.
type BatchRequest struct {
	Pairs []CompareRequest `json:"pairs" yaml:"pairs"`
}

// BatchResponse holds one result per requested pair, in request order.
type BatchResponse struct {
	Results []CompareResponse `json:"results" yaml:"results"`
}

// compareBody distinguishes an absent field from an empty string, which is a
// valid (if malformed) version.
type compareBody struct {
	Version1 *string `json:"version1" yaml:"version1"`
	Version2 *string `json:"version2" yaml:"version2"`
}

// batchBody is BatchRequest with per-pair presence tracking.
type batchBody struct {
	Pairs []compareBody `json:"pairs" yaml:"pairs"`
}

// NewCompareResponse compares a pair and builds its response.
func NewCompareResponse(version1, version2 string) CompareResponse {
	res, err := vercmp.CompareDetailed(version1, version2)
	resp := CompareResponse{
		Version1: version1,
		Version2: version2,
		Result:   res,
	}
	if err != nil {
		resp.Reason = err.Error()
	}
	return resp
}
