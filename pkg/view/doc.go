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

// Package view assembles volkszaehler response documents.
//
// A Document collects the values a request produces: entities and
// aggregators, series handles, failures, diagnostics bundles and generic
// mappings or sequences. Each Add dispatches on the value's shape to a
// converter and appends the resulting subtree under the "volkszaehler"
// root, in call order:
//
//	doc := view.NewDocument(view.WithDebug(debug))
//	if err := doc.Add(ctx, entity); err != nil {
//		doc.AddFailure(err)
//	}
//	doc.Render(ctx, w, serializer.FormatXML)
//
// Series are converted while they are produced: the handle pushes tuples
// into a sink one at a time and each becomes a "tuple" node immediately.
//
// Numbers are printed with at most Options.Precision fractional digits and
// no trailing zeros. Null values become the text "null". Leaves that have
// no textual form are rendered as "object:<type>" instead of failing.
//
// Debug details (file, line, arguments, backtraces) are only emitted when
// Options.Debug is set.
package view
