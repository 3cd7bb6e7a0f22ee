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

package value

import (
	"encoding"
	"fmt"
	"reflect"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
	KindObject
	KindUnrepresentable
)

var kindNames = [...]string{"null", "bool", "int", "float", "string", "sequence", "mapping", "object", "unrepresentable"}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a closed set of renderable shapes. Only types in this package
// implement it.
type Value interface {
	isValue()
	Kind() Kind
}

// Null is the absent value. It renders as the literal text "null".
type Null struct{}

// Bool wraps a boolean.
type Bool bool

// Int wraps an integer.
type Int int64

// Float wraps a floating point number.
type Float float64

// String wraps a string.
type String string

// Sequence is an ordered list of values. Entries are addressed by index.
type Sequence []Value

// Entry is a key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered list of keyed entries. Iteration order is
// insertion order.
type Mapping []Entry

// Object wraps an opaque Go value that may expose a textual form.
type Object struct {
	V any
}

// Unrepresentable is a placeholder for a value with no textual form.
type Unrepresentable struct {
	TypeName string
}

func (Null) isValue()            {}
func (Bool) isValue()            {}
func (Int) isValue()             {}
func (Float) isValue()           {}
func (String) isValue()          {}
func (Sequence) isValue()        {}
func (Mapping) isValue()         {}
func (Object) isValue()          {}
func (Unrepresentable) isValue() {}

func (Null) Kind() Kind            { return KindNull }
func (Bool) Kind() Kind            { return KindBool }
func (Int) Kind() Kind             { return KindInt }
func (Float) Kind() Kind           { return KindFloat }
func (String) Kind() Kind          { return KindString }
func (Sequence) Kind() Kind        { return KindSequence }
func (Mapping) Kind() Kind         { return KindMapping }
func (Object) Kind() Kind          { return KindObject }
func (Unrepresentable) Kind() Kind { return KindUnrepresentable }

// Get returns the value stored under key and whether it exists.
func (m Mapping) Get(key string) (Value, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys of the mapping in order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the sequence as index-keyed entries.
func (s Sequence) Entries() Mapping {
	m := make(Mapping, len(s))
	for i, v := range s {
		m[i] = Entry{Key: fmt.Sprintf("%d", i), Value: v}
	}
	return m
}

// TypeName returns the dynamic Go type name of the wrapped value.
func (o Object) TypeName() string {
	return typeName(o.V)
}

// Text returns the textual representation of the wrapped value, if it has one.
func (o Object) Text() (string, bool) {
	return textOf(o.V)
}

func textOf(v any) (string, bool) {
	switch t := v.(type) {
	case fmt.Stringer:
		return t.String(), true
	case error:
		return t.Error(), true
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		return "", false
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
