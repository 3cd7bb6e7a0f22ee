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

package series

import (
	"context"

	"github.com/volkszaehler/vzview/pkg/model"
)

// Tuple is a single time-series sample. Timestamp is in milliseconds since
// the Unix epoch; Count is the number of raw readings the sample represents.
type Tuple struct {
	Timestamp int64
	Value     float64
	Count     int64
}

// Sink receives produced tuples one at a time. The tuple is passed by value
// and must not be retained beyond the call. Returning an error stops
// production.
type Sink func(Tuple) error

// Handle is a series bound to one entity. Process drives production and
// delivers every tuple to sink synchronously and in order. The summary
// accessors report the statistics of the last completed Process call.
type Handle interface {
	Entity() *model.Entity
	Process(ctx context.Context, tuples, group string, sink Sink) error
	Min() float64
	Max() float64
	Average() float64
	Consumption() float64
}

// Source is a pull iterator over raw tuples. Next returns false once the
// source is exhausted.
type Source interface {
	Next() (Tuple, bool, error)
}

// Counter is implemented by sources that know their length up front.
type Counter interface {
	Len() int
}

// Opener creates a fresh Source positioned at the first tuple.
type Opener func() (Source, error)
