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
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

var (
	stringerType      = reflect.TypeFor[fmt.Stringer]()
	errorType         = reflect.TypeFor[error]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// From lifts an arbitrary Go value into a Value.
//
// Maps become Mappings with keys in sorted order, since Go maps carry no
// order of their own. Structs become Mappings of their exported fields in
// declaration order, named by their json tag when present. Values that are
// none of the known shapes become an Object when they expose a textual form
// and Unrepresentable otherwise.
func From(v any) Value {
	if v == nil {
		return Null{}
	}
	if vv, ok := v.(Value); ok {
		return vv
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) Value {
	if !rv.IsValid() {
		return Null{}
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null{}
		}
		if isTextual(rv.Type()) {
			return Object{V: rv.Interface()}
		}
		rv = rv.Elem()
	}

	if rv.CanInterface() {
		if vv, ok := rv.Interface().(Value); ok {
			return vv
		}
	}

	//nolint:exhaustive // remaining kinds are handled by the textual/unrepresentable fallback
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float(float64(u))
		}
		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	}

	if isTextual(rv.Type()) && rv.CanInterface() {
		return Object{V: rv.Interface()}
	}

	//nolint:exhaustive // see above
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return Null{}
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(rv.Bytes())
		}
		return fromList(rv)
	case reflect.Array:
		return fromList(rv)
	case reflect.Map:
		if rv.IsNil() {
			return Null{}
		}
		return fromMap(rv)
	case reflect.Struct:
		return fromStruct(rv)
	}

	return Unrepresentable{TypeName: rv.Type().String()}
}

func isTextual(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(errorType) || t.Implements(textMarshalerType)
}

func fromList(rv reflect.Value) Value {
	seq := make(Sequence, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		seq[i] = fromReflect(rv.Index(i))
	}
	return seq
}

func fromMap(rv reflect.Value) Value {
	keys := rv.MapKeys()
	entries := make(Mapping, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{
			Key:   fmt.Sprintf("%v", k.Interface()),
			Value: fromReflect(rv.MapIndex(k)),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

func fromStruct(rv reflect.Value) Value {
	typ := rv.Type()
	m := make(Mapping, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		m = append(m, Entry{Key: name, Value: fromReflect(rv.Field(i))})
	}
	return m
}

// numericPattern matches what the original view treated as numeric:
// optional leading whitespace, sign, decimal digits with optional fraction,
// and an optional exponent.
var numericPattern = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether s looks like a number.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}
