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

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/volkszaehler/vzview/pkg/defaults"
	"github.com/volkszaehler/vzview/pkg/errors"
	"github.com/volkszaehler/vzview/pkg/model"
	"github.com/volkszaehler/vzview/pkg/serializer"
	"github.com/volkszaehler/vzview/pkg/series"
	"github.com/volkszaehler/vzview/pkg/value"
)

// Catalog is an immutable set of entity trees with their series sources.
// It is safe for concurrent use.
type Catalog struct {
	roots   []*model.Entity
	index   map[string]*model.Entity
	openers map[string]series.Opener
}

// UserAgent identifies catalog fetches from HTTP(S) URLs.
const UserAgent = "vzview-catalog/1.0"

// Load reads and validates the catalog at path, a local file or an
// HTTP(S) URL. Files ending in .json are read as JSON, anything else as
// YAML. Relative series paths are resolved against the directory of a
// local catalog.
func Load(ctx context.Context, path string) (*Catalog, error) {
	format := serializer.FormatFromPath(path)
	if format == serializer.FormatXML {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "catalogs cannot be read from xml",
			map[string]any{"path": path})
	}

	reader, err := serializer.NewFileReaderWithContext(ctx, format, path,
		serializer.WithUserAgent(UserAgent),
		serializer.WithTotalTimeout(defaults.HTTPClientTimeout))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to open catalog", err,
			map[string]any{"path": path})
	}
	defer reader.Close()

	var f file
	if err := reader.Deserialize(&f); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse catalog", err,
			map[string]any{"path": path})
	}

	dir := ""
	if !strings.Contains(path, "://") {
		dir = filepath.Dir(path)
	}
	return build(f, dir)
}

// Parse builds a catalog from YAML content. Relative series paths are
// resolved against dir.
func Parse(data []byte, dir string) (*Catalog, error) {
	reader, err := serializer.NewReader(serializer.FormatYAML, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create catalog reader", err)
	}

	var f file
	if err := reader.Deserialize(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse catalog", err)
	}
	return build(f, dir)
}

// Entities returns the top-level entities in file order.
func (c *Catalog) Entities() []*model.Entity {
	out := make([]*model.Entity, len(c.roots))
	copy(out, c.roots)
	return out
}

// Lookup returns the entity with the given UUID, at any depth.
func (c *Catalog) Lookup(id string) (*model.Entity, error) {
	e, ok := c.index[normalize(id)]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "entity not found",
			map[string]any{"uuid": id})
	}
	return e, nil
}

// Series returns a fresh series handle for the entity with the given UUID.
// Aggregators and entities without data have no series.
func (c *Catalog) Series(id string) (series.Handle, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	if e.IsAggregator() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "aggregators have no series data",
			map[string]any{"uuid": id})
	}
	open, ok := c.openers[normalize(id)]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "entity has no series data",
			map[string]any{"uuid": id})
	}
	return series.NewInterpreter(e, open), nil
}

// Len returns the number of distinct entities in the catalog.
func (c *Catalog) Len() int {
	return len(c.index)
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// file is the on-disk catalog layout.
type file struct {
	Entities []entitySpec `yaml:"entities"`
}

// UnmarshalJSON decodes a JSON catalog with the YAML rules, which keeps
// property order. JSON documents are valid YAML.
func (f *file) UnmarshalJSON(data []byte) error {
	type plain file
	return yaml.Unmarshal(data, (*plain)(f))
}

// entitySpec defines an entity, or references one defined elsewhere in
// the file by UUID.
type entitySpec struct {
	UUID       string       `yaml:"uuid"`
	Ref        string       `yaml:"ref"`
	Type       string       `yaml:"type"`
	Properties yaml.Node    `yaml:"properties"`
	Children   []entitySpec `yaml:"children"`
	Data       string       `yaml:"data"`
	Tuples     []tupleSpec  `yaml:"tuples"`
}

// tupleSpec is a tuple written as a [timestamp, value, count] sequence.
type tupleSpec series.Tuple

func (t *tupleSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: tuple must be a sequence", n.Line)
	}
	fields := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		fields = append(fields, c.Value)
	}
	parsed, err := series.ParseRecord(fields)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*t = tupleSpec(parsed)
	return nil
}

type reference struct {
	parent *model.Entity
	index  int
	id     string
	where  string
}

type builder struct {
	dir     string
	index   map[string]*model.Entity
	openers map[string]series.Opener
	refs    []reference
}

func build(f file, dir string) (*Catalog, error) {
	b := &builder{
		dir:     dir,
		index:   map[string]*model.Entity{},
		openers: map[string]series.Opener{},
	}

	roots := make([]*model.Entity, 0, len(f.Entities))
	for i, spec := range f.Entities {
		where := fmt.Sprintf("entities[%d]", i)
		if spec.Ref != "" {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "top-level entities cannot be references",
				map[string]any{"at": where})
		}
		e, err := b.entity(spec, where)
		if err != nil {
			return nil, err
		}
		roots = append(roots, e)
	}

	for _, r := range b.refs {
		target, ok := b.index[normalize(r.id)]
		if !ok {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "reference to unknown entity",
				map[string]any{"at": r.where, "ref": r.id})
		}
		r.parent.Children[r.index] = target
	}

	for i, e := range roots {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entities[%d]: %w", i, err)
		}
	}

	return &Catalog{roots: roots, index: b.index, openers: b.openers}, nil
}

func (b *builder) entity(spec entitySpec, where string) (*model.Entity, error) {
	invalid := func(msg string) error {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, msg,
			map[string]any{"at": where, "uuid": spec.UUID})
	}

	id := normalize(spec.UUID)
	if id == "" {
		return nil, invalid("entity uuid cannot be empty")
	}
	if _, dup := b.index[id]; dup {
		return nil, invalid("duplicate entity uuid")
	}

	props, err := properties(&spec.Properties)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid properties", err,
			map[string]any{"at": where})
	}

	e := &model.Entity{UUID: id, Type: spec.Type, Properties: props}
	if spec.Children != nil || spec.Type == model.TypeGroup {
		if spec.Data != "" || spec.Tuples != nil {
			return nil, invalid("aggregators cannot have series data")
		}
		e.Children = make([]*model.Entity, 0, len(spec.Children))
	}
	b.index[id] = e

	for i, cs := range spec.Children {
		childWhere := fmt.Sprintf("%s.children[%d]", where, i)
		if cs.Ref != "" {
			if cs.UUID != "" || cs.Type != "" || cs.Children != nil {
				return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "references cannot define an entity",
					map[string]any{"at": childWhere})
			}
			e.Children = append(e.Children, nil)
			b.refs = append(b.refs, reference{parent: e, index: i, id: cs.Ref, where: childWhere})
			continue
		}
		child, err := b.entity(cs, childWhere)
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, child)
	}

	switch {
	case spec.Data != "" && spec.Tuples != nil:
		return nil, invalid("data and tuples are mutually exclusive")
	case spec.Data != "":
		path := spec.Data
		if !filepath.IsAbs(path) && b.dir != "" {
			path = filepath.Join(b.dir, path)
		}
		b.openers[id] = series.FileOpener(path)
	case spec.Tuples != nil:
		tuples := make([]series.Tuple, len(spec.Tuples))
		for i, t := range spec.Tuples {
			tuples[i] = series.Tuple(t)
		}
		b.openers[id] = series.MemoryOpener(tuples)
	}

	return e, nil
}

// reserved property keys collide with the fixed entity fields.
var reserved = map[string]bool{"uuid": true, "type": true, "children": true}

func properties(n *yaml.Node) ([]model.Property, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: properties must be a mapping", n.Line)
	}

	props := make([]model.Property, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if reserved[key] {
			return nil, fmt.Errorf("line %d: property %q is reserved", n.Content[i].Line, key)
		}
		v, err := nodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		props = append(props, model.Property{Key: key, Value: v})
	}
	return props, nil
}

// nodeValue converts a YAML node into a value, keeping mapping order.
func nodeValue(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null{}, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		seq := make(value.Sequence, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.MappingNode:
		m := make(value.Mapping, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m = append(m, value.Entry{Key: n.Content[i].Value, Value: v})
		}
		return m, nil
	default:
		var raw any
		if err := n.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return value.From(raw), nil
	}
}
