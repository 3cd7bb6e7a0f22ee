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

// Package model defines the measurement entities a view renders.
//
// An Entity with a non-nil Children slice is an aggregator (a group); an
// Entity without children is a leaf channel. The hierarchy must be finite
// and acyclic; Validate checks this for trees built by callers.
package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/value"
)

// Entity types known to the catalog. Other type tags are accepted as-is.
const (
	TypeGroup   = "group"
	TypePower   = "power"
	TypeGas     = "gas"
	TypeWater   = "water"
	TypeTemp    = "temperature"
	TypeVoltage = "voltage"
)

// Property is a named scalar attribute of an entity.
type Property struct {
	Key   string
	Value value.Value
}

// Entity is a measurement entity identified by a UUID.
type Entity struct {
	UUID       string
	Type       string
	Properties []Property
	Children   []*Entity
}

// New creates a leaf entity.
func New(id, typ string, props ...Property) *Entity {
	return &Entity{UUID: id, Type: typ, Properties: props}
}

// NewAggregator creates an aggregator owning the given children.
func NewAggregator(id, typ string, props []Property, children ...*Entity) *Entity {
	if children == nil {
		children = []*Entity{}
	}
	return &Entity{UUID: id, Type: typ, Properties: props, Children: children}
}

// Prop is a convenience constructor for a Property.
func Prop(key string, v any) Property {
	return Property{Key: key, Value: value.From(v)}
}

// IsAggregator reports whether e owns a (possibly empty) list of children.
func (e *Entity) IsAggregator() bool {
	return e.Children != nil
}

// AddChild appends child, turning e into an aggregator.
func (e *Entity) AddChild(child *Entity) {
	if e.Children == nil {
		e.Children = []*Entity{}
	}
	e.Children = append(e.Children, child)
}

// Property returns the value of the named property and whether it exists.
func (e *Entity) Property(key string) (value.Value, bool) {
	for _, p := range e.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Title returns the "title" property as text, or the UUID when unset.
func (e *Entity) Title() string {
	if v, ok := e.Property("title"); ok {
		if s, ok := v.(value.String); ok {
			return string(s)
		}
	}
	return e.UUID
}

// Leaves returns the number of leaf entities in the subtree rooted at e.
func (e *Entity) Leaves() int {
	if !e.IsAggregator() {
		return 1
	}
	n := 0
	for _, c := range e.Children {
		n += c.Leaves()
	}
	return n
}

// Depth returns the number of levels in the subtree rooted at e.
func (e *Entity) Depth() int {
	max := 0
	for _, c := range e.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Find returns the entity with the given UUID in the subtree rooted at e.
func (e *Entity) Find(id string) *Entity {
	if e.UUID == id {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Validate checks that every entity in the subtree has a parseable UUID and
// a type, and that no entity is its own ancestor.
func (e *Entity) Validate() error {
	return e.validate(map[*Entity]bool{})
}

func (e *Entity) validate(path map[*Entity]bool) error {
	if e == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "entity cannot be nil")
	}
	if _, err := uuid.Parse(e.UUID); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid entity uuid", err,
			map[string]any{"uuid": e.UUID})
	}
	if e.Type == "" {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "entity type cannot be empty",
			map[string]any{"uuid": e.UUID})
	}
	if path[e] {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "entity hierarchy contains a cycle",
			map[string]any{"uuid": e.UUID})
	}

	path[e] = true
	defer delete(path, e)

	for i, c := range e.Children {
		if err := c.validate(path); err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
	}
	return nil
}
