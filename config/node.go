// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config provides the read-only configuration-tree abstraction
// consumed by the builder: a sum of scalar, map, and sequence nodes with
// diagnostic string rendering. Two adapters are provided: a tree-text
// (YAML) adapter for real configuration files and an in-memory builder
// for tests.
package config

import (
	"fmt"

	"github.com/pkg/errors"
)

// Node is a read-only view over one position in a configuration tree.
type Node interface {
	// IsScalar reports whether this node holds a plain string value.
	IsScalar() bool
	// IsMap reports whether this node is a name-keyed mapping.
	IsMap() bool
	// IsSequence reports whether this node is an ordered list.
	IsSequence() bool
	// HasKey reports whether a map node has the given key.
	HasKey(key string) bool
	// Get looks up a key on a map node.
	Get(key string) (Node, error)
	// GetIndex looks up an index on a sequence node.
	GetIndex(i int) (Node, error)
	// Size returns the sequence length, or 0 for a scalar or map.
	Size() int
	// AsString returns the scalar's textual value, or a diagnostic
	// rendering for composite nodes.
	AsString() string
}

// NotFoundError is raised when Get/GetIndex addresses an absent key, an
// out-of-range index, or a node of the wrong shape.
type NotFoundError struct {
	Node Node
	Key  string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration node not found: %q in %s", e.Key, describe(e.Node))
	}
	return fmt.Sprintf("configuration node not found in %s", describe(e.Node))
}

func describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.AsString()
}

func notFound(n Node, key string) error {
	return errors.WithStack(&NotFoundError{Node: n, Key: key})
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
