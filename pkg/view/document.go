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
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/volkszaehler/vzview/pkg/diagnostics"
	"github.com/volkszaehler/vzview/pkg/document"
	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/logging"
	"github.com/volkszaehler/vzview/pkg/model"
	"github.com/volkszaehler/vzview/pkg/serializer"
	"github.com/volkszaehler/vzview/pkg/series"
	"github.com/volkszaehler/vzview/pkg/value"
)

// Shapes recognized by Document.Add.
const (
	ShapeEntity     = "entity"
	ShapeAggregator = "aggregator"
	ShapeSeries     = "series"
	ShapeFailure    = "failure"
	ShapeBundle     = "bundle"
	ShapeMapping    = "mapping"
	ShapeSequence   = "sequence"
	ShapeNull       = "null"
)

// Document assembles the response for one request. Every Add appends one
// or more subtrees directly under the root, in call order. A Document is
// not safe for concurrent use.
type Document struct {
	conv *Converter
	root *document.Node
}

// NewDocument creates an empty document. Defaults from NewOptions apply
// unless overridden by opts.
func NewDocument(opts ...Option) *Document {
	return &Document{conv: NewConverter(opts...)}
}

// Options returns the options the document converts with.
func (d *Document) Options() Options {
	return d.conv.Options()
}

// Root returns the root node, creating it on first use.
func (d *Document) Root() *document.Node {
	if d.root == nil {
		d.root = document.New(RootName).SetAttr("version", d.conv.opts.Version)
	}
	return d.root
}

// Add converts v according to its shape and appends the result to the
// root. Accepted shapes are entities (leaf or aggregator), series handles,
// failures and errors, diagnostics bundles, value mappings and sequences,
// and plain Go maps, slices and structs. nil is a no-op. Any other shape
// yields an UNSUPPORTED_VALUE_SHAPE error and leaves the document as it was.
func (d *Document) Add(ctx context.Context, v any) error {
	nodes, shape, err := d.convert(ctx, v)
	if err != nil {
		return err
	}
	if shape == ShapeNull {
		return nil
	}

	root := d.Root()
	for _, n := range nodes {
		root.Append(n)
	}
	valuesAdded.WithLabelValues(shape).Inc()
	logging.FromContext(ctx).Debug("value added to document", "shape", shape, "nodes", len(nodes))
	return nil
}

func (d *Document) convert(ctx context.Context, v any) ([]*document.Node, string, error) {
	// Typed nil pointers count as absent, whatever interface they satisfy.
	if v == nil {
		return nil, ShapeNull, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, ShapeNull, nil
	}

	switch t := v.(type) {
	case model.Entity:
		return d.convert(ctx, &t)
	case *model.Entity:
		if t.IsAggregator() {
			n, err := d.conv.ConvertAggregator(t)
			return single(n), ShapeAggregator, err
		}
		n, err := d.conv.ConvertEntity(t)
		return single(n), ShapeEntity, err
	case series.Handle:
		n, err := d.conv.ConvertSeries(ctx, t, d.conv.opts.Tuples, d.conv.opts.Group)
		return single(n), ShapeSeries, err
	case diagnostics.Failure:
		return d.convert(ctx, &t)
	case *diagnostics.Failure:
		n, err := d.conv.ConvertFailure(t)
		return single(n), ShapeFailure, err
	case diagnostics.Bundle:
		return d.convert(ctx, &t)
	case *diagnostics.Bundle:
		n, err := d.conv.ConvertBundle(t)
		return single(n), ShapeBundle, err
	case error:
		n, err := d.conv.ConvertFailure(diagnostics.NewFailure(t))
		return single(n), ShapeFailure, err
	case value.Null:
		return nil, ShapeNull, nil
	case value.Mapping:
		nodes, err := d.entries(t)
		return nodes, ShapeMapping, err
	case value.Sequence:
		nodes, err := d.entries(t.Entries())
		return nodes, ShapeSequence, err
	case value.Value:
		return nil, "", unsupported(v)
	}

	// Plain Go containers are lifted into values first.
	switch reflect.Indirect(rv).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		switch lifted := value.From(v); lifted.(type) {
		case value.Mapping, value.Sequence, value.Null:
			return d.convert(ctx, lifted)
		}
	}
	return nil, "", unsupported(v)
}

// entries converts each top-level entry into its own subtree.
func (d *Document) entries(m value.Mapping) ([]*document.Node, error) {
	nodes := make([]*document.Node, 0, len(m))
	for _, e := range m {
		name := e.Key
		if value.IsNumeric(name) {
			name = DefaultSingular
		}
		n, err := d.conv.entry(name, e.Value)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func single(n *document.Node) []*document.Node {
	if n == nil {
		return nil
	}
	return []*document.Node{n}
}

func unsupported(v any) error {
	typeName := fmt.Sprintf("%T", v)
	return errors.NewWithContext(errors.ErrCodeUnsupportedValueShape,
		fmt.Sprintf("cannot add value of type %s to document", typeName),
		map[string]any{"type": typeName})
}

// AddFailure appends err as an exception node. It is the request boundary
// policy: whatever was already added stays in the document. If err cannot
// be converted, a bare exception carrying only code and message is used.
func (d *Document) AddFailure(err error) {
	if err == nil {
		return
	}
	f := diagnostics.NewFailure(err)
	n, cerr := d.conv.ConvertFailure(f)
	if cerr != nil {
		slog.Warn("failed to convert failure, using bare exception", "error", cerr)
		n = document.New("exception").
			SetAttr("code", f.Code).
			SetAttr("type", f.Type)
		n.Append(document.NewText("message", f.Message))
	}
	d.Root().Append(n)
	valuesAdded.WithLabelValues(ShapeFailure).Inc()
}

// Render serializes the document in the given format to w.
func (d *Document) Render(ctx context.Context, w io.Writer, format serializer.Format) error {
	if err := serializer.NewWriter(format, w).Serialize(ctx, d.Root()); err != nil {
		return err
	}
	documentsRendered.WithLabelValues(string(format)).Inc()
	return nil
}

// ContentType returns the content type of the document rendered in format.
func ContentType(format serializer.Format) string {
	return format.ContentType()
}
