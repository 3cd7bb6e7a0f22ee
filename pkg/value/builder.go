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

// MappingBuilder provides a fluent API for building Mapping instances.
type MappingBuilder struct {
	entries Mapping
}

// NewMapping creates a new, empty MappingBuilder.
func NewMapping() *MappingBuilder {
	return &MappingBuilder{entries: make(Mapping, 0)}
}

// Set appends a key/value pair, or replaces the value of an existing key
// without changing its position.
func (b *MappingBuilder) Set(key string, v Value) *MappingBuilder {
	if v == nil {
		v = Null{}
	}
	for i := range b.entries {
		if b.entries[i].Key == key {
			b.entries[i].Value = v
			return b
		}
	}
	b.entries = append(b.entries, Entry{Key: key, Value: v})
	return b
}

// SetString is a convenience method for adding string values.
func (b *MappingBuilder) SetString(key, v string) *MappingBuilder {
	return b.Set(key, String(v))
}

// SetInt is a convenience method for adding integer values.
func (b *MappingBuilder) SetInt(key string, v int64) *MappingBuilder {
	return b.Set(key, Int(v))
}

// SetFloat is a convenience method for adding float values.
func (b *MappingBuilder) SetFloat(key string, v float64) *MappingBuilder {
	return b.Set(key, Float(v))
}

// SetBool is a convenience method for adding boolean values.
func (b *MappingBuilder) SetBool(key string, v bool) *MappingBuilder {
	return b.Set(key, Bool(v))
}

// SetNull is a convenience method for adding a null value.
func (b *MappingBuilder) SetNull(key string) *MappingBuilder {
	return b.Set(key, Null{})
}

// SetAny lifts v with From and adds it.
func (b *MappingBuilder) SetAny(key string, v any) *MappingBuilder {
	return b.Set(key, From(v))
}

// Build returns the constructed Mapping.
func (b *MappingBuilder) Build() Mapping {
	return b.entries
}

// SequenceOf lifts each argument with From.
func SequenceOf(vs ...any) Sequence {
	seq := make(Sequence, len(vs))
	for i, v := range vs {
		seq[i] = From(v)
	}
	return seq
}

// Strings builds a Sequence of String values.
func Strings(ss []string) Sequence {
	seq := make(Sequence, len(ss))
	for i, s := range ss {
		seq[i] = String(s)
	}
	return seq
}
