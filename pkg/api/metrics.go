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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Binding labels identify which wire format served a comparison.
const (
	bindingJSON  = "json"
	bindingBatch = "batch"
	bindingASMX  = "asmx"
	bindingSOAP  = "soap"
)

var (
	comparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vercheck_comparisons_total",
			Help: "Total number of version comparisons by binding and result",
		},
		[]string{"binding", "result"},
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vercheck_batch_pairs",
			Help:    "Number of version pairs per batch request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)
)
