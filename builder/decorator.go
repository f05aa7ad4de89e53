// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package builder

import (
	"github.com/cnotch/actiongraph/action"
	"github.com/cnotch/actiongraph/config"
)

// Decorate wraps built in the decorator identified by the node's
// "type" field.
type Decorate func(node config.Node, built action.Action) (action.Action, error)

// DecoratorRegistry maps a registered decorator type name to the
// function that wraps a built action in it.
type DecoratorRegistry struct {
	decorators map[string]Decorate
}

// NewDecoratorRegistry returns an empty DecoratorRegistry.
func NewDecoratorRegistry() *DecoratorRegistry {
	return &DecoratorRegistry{decorators: make(map[string]Decorate)}
}

// Register adds or replaces the decorate function for a type name.
func (r *DecoratorRegistry) Register(typeName string, decorate Decorate) {
	r.decorators[typeName] = decorate
}

// Decorate reads the action node's "decorate" sequence, left to right,
// wrapping built with each entry in turn. The first decorator in
// configuration order ends up innermost; the last ends up outermost.
func (r *DecoratorRegistry) Decorate(actionNode config.Node, built action.Action) (action.Action, error) {
	decorateNode, err := actionNode.Get("decorate")
	if err != nil {
		return built, nil // absent: pass through
	}

	for i := 0; i < decorateNode.Size(); i++ {
		entry, err := decorateNode.GetIndex(i)
		if err != nil {
			return nil, err
		}
		if !entry.HasKey("type") {
			return nil, configurationError(entry, "missing required key %q", "type")
		}
		typeNode, err := entry.Get("type")
		if err != nil {
			return nil, err
		}
		typeName := typeNode.AsString()

		decorate, ok := r.decorators[typeName]
		if !ok {
			return nil, buildError("no decorator registered for type %q", typeName)
		}

		built, err = decorate(entry, built)
		if err != nil {
			return nil, err
		}
	}
	return built, nil
}
