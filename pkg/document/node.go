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

// Package document provides the labeled tree that views render into.
//
// A Node has a name, ordered attributes, ordered children and optional text.
// Insertion order is document order; nothing is ever sorted.
package document

// Attr is a single name/value attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of a document tree.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
	HasText  bool
}

// New creates an empty node with the given name.
func New(name string) *Node {
	return &Node{Name: name}
}

// NewText creates a node with the given name and text content.
func NewText(name, text string) *Node {
	return &Node{Name: name, Text: text, HasText: true}
}

// SetAttr sets an attribute, replacing an existing one of the same name in place.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetText sets the text content of the node.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	n.HasText = true
	return n
}

// Append adds child as the last child of n. Nil children are ignored.
func (n *Node) Append(child *Node) *Node {
	if child != nil {
		n.Children = append(n.Children, child)
	}
	return n
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the names of the direct children in order.
func (n *Node) Names() []string {
	names := make([]string, len(n.Children))
	for i, c := range n.Children {
		names[i] = c.Name
	}
	return names
}

// Depth returns the number of levels in the subtree rooted at n.
func (n *Node) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
