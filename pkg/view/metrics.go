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

package view

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Conversion metrics
	valuesAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vz_view_values_added_total",
			Help: "Total number of values added to documents, by shape",
		},
		[]string{"shape"},
	)

	tuplesProduced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vz_view_tuples_total",
			Help: "Total number of series tuples converted",
		},
	)

	documentsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vz_view_documents_rendered_total",
			Help: "Total number of documents rendered, by format",
		},
		[]string{"format"},
	)
)
