// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// yamlNode adapts a *yaml.Node into the read-only Node interface. Only
// the shapes the builder needs (scalars, mappings, sequences) are
// supported; documents and aliases are resolved transparently.
type yamlNode struct {
	raw *yaml.Node
}

// ParseYAML reads one YAML document from r and returns its root as a
// configuration Node.
func ParseYAML(r io.Reader) (Node, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parse yaml configuration")
	}
	return wrapYAML(&doc), nil
}

// ParseYAMLString is a convenience wrapper around ParseYAML for
// configuration embedded as a string literal, used heavily by tests.
func ParseYAMLString(s string) (Node, error) {
	return ParseYAML(strings.NewReader(s))
}

func wrapYAML(n *yaml.Node) Node {
	for n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			break
		}
		n = n.Content[0]
	}
	return yamlNode{raw: n}
}

func (n yamlNode) IsScalar() bool   { return n.raw.Kind == yaml.ScalarNode }
func (n yamlNode) IsMap() bool      { return n.raw.Kind == yaml.MappingNode }
func (n yamlNode) IsSequence() bool { return n.raw.Kind == yaml.SequenceNode }

func (n yamlNode) HasKey(key string) bool {
	if !n.IsMap() {
		return false
	}
	_, ok := n.lookup(key)
	return ok
}

func (n yamlNode) lookup(key string) (*yaml.Node, bool) {
	content := n.raw.Content
	for i := 0; i+1 < len(content); i += 2 {
		if content[i].Value == key {
			return content[i+1], true
		}
	}
	return nil, false
}

func (n yamlNode) Get(key string) (Node, error) {
	if !n.IsMap() {
		return nil, notFound(n, key)
	}
	v, ok := n.lookup(key)
	if !ok {
		return nil, notFound(n, key)
	}
	return wrapYAML(v), nil
}

func (n yamlNode) GetIndex(i int) (Node, error) {
	if !n.IsSequence() || i < 0 || i >= len(n.raw.Content) {
		return nil, notFound(n, fmt.Sprintf("[%d]", i))
	}
	return wrapYAML(n.raw.Content[i]), nil
}

func (n yamlNode) Size() int {
	if !n.IsSequence() {
		return 0
	}
	return len(n.raw.Content)
}

func (n yamlNode) AsString() string {
	if n.IsScalar() {
		return n.raw.Value
	}
	out, err := yaml.Marshal(n.raw)
	if err != nil {
		return fmt.Sprintf("<unrenderable node: %v>", err)
	}
	return strings.TrimSpace(string(out))
}
