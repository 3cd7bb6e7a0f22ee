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
	"github.com/volkszaehler/vzview/pkg/document"
	"github.com/volkszaehler/vzview/pkg/model"
)

// ConvertEntity converts an entity into an "entity" node holding its uuid,
// type and properties in that order. Children are not rendered.
func (c *Converter) ConvertEntity(e *model.Entity) (*document.Node, error) {
	node := document.New("entity")
	node.Append(document.NewText("uuid", e.UUID))
	node.Append(document.NewText("type", e.Type))

	for _, p := range e.Properties {
		child, err := c.entry(p.Key, p.Value)
		if err != nil {
			return nil, err
		}
		node.Append(child)
	}
	return node, nil
}

// ConvertAggregator converts an entity and, below a "children" node, each
// of its children: aggregators recursively, leaves as plain entities.
func (c *Converter) ConvertAggregator(e *model.Entity) (*document.Node, error) {
	node, err := c.ConvertEntity(e)
	if err != nil {
		return nil, err
	}

	children := document.New("children")
	for _, child := range e.Children {
		n, err := c.convertAny(child)
		if err != nil {
			return nil, err
		}
		children.Append(n)
	}
	node.Append(children)
	return node, nil
}

// convertAny dispatches on the shape of e.
func (c *Converter) convertAny(e *model.Entity) (*document.Node, error) {
	if e.IsAggregator() {
		return c.ConvertAggregator(e)
	}
	return c.ConvertEntity(e)
}
