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
	"strconv"
	"strings"

	"github.com/volkszaehler/vzview/pkg/document"
	"github.com/volkszaehler/vzview/pkg/number"
	"github.com/volkszaehler/vzview/pkg/value"
)

// Converter turns domain values into document nodes. It holds no state
// besides its options and is safe for concurrent use.
type Converter struct {
	opts   Options
	format number.Formatter
}

// NewConverter creates a Converter. Defaults from NewOptions apply unless
// overridden by opts.
func NewConverter(opts ...Option) *Converter {
	o := NewOptions(opts...)
	return &Converter{
		opts:   o,
		format: number.New(o.Precision),
	}
}

// Options returns the options the converter was created with.
func (c *Converter) Options() Options {
	return c.opts
}

// ConvertValue converts a generic value into a node named plural. Entries
// of mappings and sequences become children, named by their key, or by
// singular when the key is numeric. An empty singular means DefaultSingular.
func (c *Converter) ConvertValue(v value.Value, plural, singular string) (*document.Node, error) {
	if singular == "" {
		singular = DefaultSingular
	}

	var entries value.Mapping
	switch t := v.(type) {
	case value.Mapping:
		entries = t
	case value.Sequence:
		entries = t.Entries()
	default:
		return c.leaf(plural, v)
	}

	node := document.New(plural)
	for _, e := range entries {
		name := e.Key
		if value.IsNumeric(name) {
			name = singular
		}

		child, err := c.entry(name, e.Value)
		if err != nil {
			return nil, err
		}
		node.Append(child)
	}
	return node, nil
}

// entry renders one named value, recursing into containers.
func (c *Converter) entry(name string, v value.Value) (*document.Node, error) {
	switch v.(type) {
	case value.Mapping, value.Sequence:
		return c.ConvertValue(v, name, DefaultSingular)
	default:
		return c.leaf(name, v)
	}
}

// leaf renders a non-container value as a text node.
func (c *Converter) leaf(name string, v value.Value) (*document.Node, error) {
	text, err := c.text(v)
	if err != nil {
		return nil, err
	}
	return document.NewText(name, text), nil
}

// text returns the textual content of a scalar value.
func (c *Converter) text(v value.Value) (string, error) {
	switch t := v.(type) {
	case nil, value.Null:
		return "null", nil
	case value.Int:
		return number.FormatInt(int64(t)), nil
	case value.Float:
		return c.format.Format(float64(t))
	case value.String:
		return c.numericString(string(t))
	case value.Bool:
		return strconv.FormatBool(bool(t)), nil
	case value.Object:
		if s, ok := t.Text(); ok {
			return s, nil
		}
		return unrepresentable(t.TypeName()), nil
	case value.Unrepresentable:
		return unrepresentable(t.TypeName), nil
	default:
		return unrepresentable(t.Kind().String()), nil
	}
}

// numericString formats numeric-looking strings like numbers. Integers too
// large for int64 are kept verbatim so no digits are lost.
func (c *Converter) numericString(s string) (string, error) {
	if !value.IsNumeric(s) {
		return s, nil
	}
	if i, err := strconv.ParseInt(trimSpace(s), 10, 64); err == nil {
		return number.FormatInt(i), nil
	} else if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return s, nil
	}
	f, err := strconv.ParseFloat(trimSpace(s), 64)
	if err != nil {
		return s, nil
	}
	return c.format.Format(f)
}

func trimSpace(s string) string {
	return strings.TrimLeft(s, " \t\n\r\v\f")
}

func unrepresentable(typeName string) string {
	return "object:" + typeName
}
