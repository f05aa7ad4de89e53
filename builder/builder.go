// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package builder turns configuration nodes into an action object
// graph via typed factory functions, and composes decorators around
// built actions via a second, equally pluggable registry.
package builder

import (
	"github.com/cnotch/actiongraph/action"
	"github.com/cnotch/actiongraph/config"
)

// ActionFactory builds one Action from a configuration node. The
// factory may recursively invoke the builder on nested nodes (e.g. the
// built-in composites do, for each child action entry).
type ActionFactory func(node config.Node, b *ActionBuilder) (action.Action, error)

// ActionBuilder maps a registered type name to the factory that builds
// it, and optionally applies a DecoratorRegistry after each build.
type ActionBuilder struct {
	factories    map[string]ActionFactory
	decorators   *DecoratorRegistry
	panicHandler action.PanicHandler
}

// New returns an ActionBuilder with the built-in "sequential_actions"
// and "parallel_actions" types registered. decorators may be nil, in
// which case the "decorate" field of action nodes is ignored.
// panicHandler is routed to whenever a built "parallel_actions" child
// panics; it may be nil, in which case the panic is still recovered
// silently (see action.NewParallelWithPanicHandler).
func New(decorators *DecoratorRegistry, panicHandler action.PanicHandler) *ActionBuilder {
	b := &ActionBuilder{
		factories:    make(map[string]ActionFactory),
		decorators:   decorators,
		panicHandler: panicHandler,
	}
	b.Register("sequential_actions", buildComposite(action.NewSequence))
	b.Register("parallel_actions", func(node config.Node, bb *ActionBuilder) (action.Action, error) {
		name, children, err := buildChildren(node, bb)
		if err != nil {
			return nil, err
		}
		return action.NewParallelWithPanicHandler(name, bb.panicHandler, children...), nil
	})
	return b
}

// Register adds or replaces the factory for a type name.
func (b *ActionBuilder) Register(typeName string, factory ActionFactory) {
	b.factories[typeName] = factory
}

// Build applies the builder to an "action"-shaped node (spec.md §4.5):
// it requires node.action, node.action.type, looks the type up in the
// registry, invokes its factory, then applies the decorator registry
// to node.action.decorate if present.
func (b *ActionBuilder) Build(node config.Node) (action.Action, error) {
	if !node.HasKey("action") {
		return nil, configurationError(node, "missing required key %q", "action")
	}
	actionNode, err := node.Get("action")
	if err != nil {
		return nil, err
	}
	return b.buildAction(actionNode)
}

func (b *ActionBuilder) buildAction(actionNode config.Node) (action.Action, error) {
	if !actionNode.HasKey("type") {
		return nil, configurationError(actionNode, "missing required key %q", "type")
	}
	typeNode, err := actionNode.Get("type")
	if err != nil {
		return nil, err
	}
	typeName := typeNode.AsString()
	if typeName == "" {
		return nil, configurationError(actionNode, "%q must be non-empty", "type")
	}

	factory, ok := b.factories[typeName]
	if !ok {
		return nil, buildError("no action factory registered for type %q", typeName)
	}

	built, err := factory(actionNode, b)
	if err != nil {
		return nil, err
	}

	if b.decorators != nil && actionNode.HasKey("decorate") {
		built, err = b.decorators.Decorate(actionNode, built)
		if err != nil {
			return nil, err
		}
	}
	return built, nil
}

// buildComposite adapts action.NewSequence into an ActionFactory that
// reads the node's "actions" sequence, building one child per entry
// (each entry itself being an "action"-shaped node).
func buildComposite(newComposite func(name string, children ...action.Action) action.Action) ActionFactory {
	return func(node config.Node, b *ActionBuilder) (action.Action, error) {
		name, children, err := buildChildren(node, b)
		if err != nil {
			return nil, err
		}
		return newComposite(name, children...), nil
	}
}

// buildChildren reads a composite node's own name and its "actions"
// sequence, building one child per entry (each entry itself being an
// "action"-shaped node). Shared by every composite factory so each one
// only needs to decide how to assemble the resulting Action.
func buildChildren(node config.Node, b *ActionBuilder) (string, []action.Action, error) {
	name := nodeName(node)

	if !node.HasKey("actions") {
		return "", nil, configurationError(node, "missing required key %q", "actions")
	}
	actionsNode, err := node.Get("actions")
	if err != nil {
		return "", nil, err
	}

	children := make([]action.Action, 0, actionsNode.Size())
	for i := 0; i < actionsNode.Size(); i++ {
		entry, err := actionsNode.GetIndex(i)
		if err != nil {
			return "", nil, err
		}
		child, err := b.Build(entry)
		if err != nil {
			return "", nil, err
		}
		children = append(children, child)
	}

	return name, children, nil
}

func nodeName(node config.Node) string {
	if !node.HasKey("name") {
		return ""
	}
	n, err := node.Get("name")
	if err != nil {
		return ""
	}
	return n.AsString()
}
