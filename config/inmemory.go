// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"
)

// scalarNode is a leaf holding a plain textual value.
type scalarNode struct {
	value string
}

// NewScalar returns a Node wrapping a plain string value.
func NewScalar(value string) Node {
	return scalarNode{value: value}
}

func (n scalarNode) IsScalar() bool                { return true }
func (n scalarNode) IsMap() bool                   { return false }
func (n scalarNode) IsSequence() bool              { return false }
func (n scalarNode) HasKey(string) bool            { return false }
func (n scalarNode) Get(key string) (Node, error)   { return nil, notFound(n, key) }
func (n scalarNode) GetIndex(int) (Node, error)     { return nil, notFound(n, "") }
func (n scalarNode) Size() int                      { return 0 }
func (n scalarNode) AsString() string               { return n.value }

// mapNode is a name-keyed mapping; iteration order is insertion order.
type mapNode struct {
	keys   []string
	values map[string]Node
}

// NewMap returns a Node wrapping a name-keyed mapping. The pairs are
// applied in order; a later value for a repeated key replaces the
// earlier one but keeps its original position.
func NewMap(pairs ...KV) Node {
	m := &mapNode{values: make(map[string]Node, len(pairs))}
	for _, p := range pairs {
		if _, ok := m.values[p.Key]; !ok {
			m.keys = append(m.keys, p.Key)
		}
		m.values[p.Key] = p.Value
	}
	return m
}

// KV is one key/value pair supplied to NewMap.
type KV struct {
	Key   string
	Value Node
}

func (n *mapNode) IsScalar() bool     { return false }
func (n *mapNode) IsMap() bool        { return true }
func (n *mapNode) IsSequence() bool   { return false }
func (n *mapNode) HasKey(key string) bool {
	_, ok := n.values[key]
	return ok
}

func (n *mapNode) Get(key string) (Node, error) {
	v, ok := n.values[key]
	if !ok {
		return nil, notFound(n, key)
	}
	return v, nil
}

func (n *mapNode) GetIndex(int) (Node, error) { return nil, notFound(n, "") }
func (n *mapNode) Size() int                  { return 0 }

func (n *mapNode) AsString() string {
	parts := make([]string, 0, len(n.keys))
	for _, k := range n.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, n.values[k].AsString()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// sequenceNode is an ordered list of nodes.
type sequenceNode struct {
	items []Node
}

// NewSequence returns a Node wrapping an ordered list of nodes.
func NewSequence(items ...Node) Node {
	return &sequenceNode{items: items}
}

func (n *sequenceNode) IsScalar() bool     { return false }
func (n *sequenceNode) IsMap() bool        { return false }
func (n *sequenceNode) IsSequence() bool   { return true }
func (n *sequenceNode) HasKey(string) bool { return false }
func (n *sequenceNode) Get(key string) (Node, error) {
	return nil, notFound(n, key)
}

func (n *sequenceNode) GetIndex(i int) (Node, error) {
	if i < 0 || i >= len(n.items) {
		return nil, notFound(n, fmt.Sprintf("[%d]", i))
	}
	return n.items[i], nil
}

func (n *sequenceNode) Size() int { return len(n.items) }

func (n *sequenceNode) AsString() string {
	parts := make([]string, 0, len(n.items))
	for _, it := range n.items {
		parts = append(parts, it.AsString())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
