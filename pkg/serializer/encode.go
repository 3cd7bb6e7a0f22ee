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

package serializer

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/volkszaehler/vzview/pkg/document"
)

func encodeXML(w io.Writer, root *document.Node) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeElement(enc, root); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeElement(enc *xml.Encoder, n *document.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: xmlName(n.Name)}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: xmlName(a.Name)},
			Value: a.Value,
		})
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.HasText {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := encodeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// xmlName maps s onto a valid XML element or attribute name. Characters
// outside the name alphabet become '_' and a name that cannot start an
// element gets a '_' prefix.
func xmlName(s string) string {
	if s == "" {
		return "_"
	}

	var b strings.Builder
	for i, r := range s {
		switch {
		case i == 0 && isNameStart(r):
			b.WriteRune(r)
		case i == 0 && isNameChar(r):
			b.WriteByte('_')
			b.WriteRune(r)
		case i > 0 && isNameChar(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := b.String()
	if strings.HasPrefix(strings.ToLower(name), "xml") {
		name = "_" + name
	}
	return name
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '-' || r == '.'
}

type jsonAttr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type jsonNode struct {
	Name       string      `json:"name"`
	Attributes []jsonAttr  `json:"attributes,omitempty"`
	Text       *string     `json:"text,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

func toJSONNode(n *document.Node) *jsonNode {
	out := &jsonNode{Name: n.Name}
	for _, a := range n.Attrs {
		out.Attributes = append(out.Attributes, jsonAttr{Name: a.Name, Value: a.Value})
	}
	if n.HasText {
		text := n.Text
		out.Text = &text
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toJSONNode(c))
	}
	return out
}

func encodeJSON(w io.Writer, root *document.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSONNode(root)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

const (
	yamlAttrPrefix  = "@"
	yamlTextKey     = "#text"
	yamlChildrenKey = "#children"
)

func yamlScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// toYAMLNode renders n as a single-key mapping. Leaf elements without
// attributes collapse to a scalar.
func toYAMLNode(n *document.Node) *yaml.Node {
	var body *yaml.Node
	if len(n.Attrs) == 0 && len(n.Children) == 0 {
		body = yamlScalar(n.Text)
	} else {
		body = &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range n.Attrs {
			body.Content = append(body.Content, yamlScalar(yamlAttrPrefix+a.Name), yamlScalar(a.Value))
		}
		if n.HasText {
			body.Content = append(body.Content, yamlScalar(yamlTextKey), yamlScalar(n.Text))
		}
		if len(n.Children) > 0 {
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, c := range n.Children {
				seq.Content = append(seq.Content, toYAMLNode(c))
			}
			body.Content = append(body.Content, yamlScalar(yamlChildrenKey), seq)
		}
	}

	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{yamlScalar(n.Name), body},
	}
}

func encodeYAML(w io.Writer, root *document.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(root)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
