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

import "github.com/volkszaehler/vzview/pkg/number"

const (
	// RootName is the name of the document root node.
	RootName = "volkszaehler"

	// DefaultVersion is the format version stamped on the root node.
	DefaultVersion = "0.2"

	// DefaultSingular names entries whose key is numeric.
	DefaultSingular = "entry"
)

// Options configures a conversion. It is immutable for the duration of a
// request and threaded through every converter call.
type Options struct {
	// Debug gates file, line, argument and stack details of failures and
	// messages.
	Debug bool

	// Version is written to the root node's version attribute.
	Version string

	// Tuples and Group are forwarded verbatim to series production.
	Tuples string
	Group  string

	// Precision is the number of fractional digits kept when formatting.
	Precision int
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// WithDebug enables or disables debug detail.
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithVersion sets the format version of the root node.
func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

// WithSeriesParams sets the tuples and group request parameters.
func WithSeriesParams(tuples, group string) Option {
	return func(o *Options) {
		o.Tuples = tuples
		o.Group = group
	}
}

// WithPrecision sets the number of fractional digits kept when formatting.
func WithPrecision(precision int) Option {
	return func(o *Options) {
		o.Precision = precision
	}
}

// NewOptions returns Options with defaults applied and opts layered on top.
func NewOptions(opts ...Option) Options {
	o := Options{
		Version:   DefaultVersion,
		Precision: number.DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
