// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package action implements the action graph's core data model: the
// Action interface, the Sequence and Parallel composites, and the
// Observed and TimingMonitor decorators that wrap an action to add
// lifecycle callbacks and duration/period monitoring.
package action

import (
	"context"

	"github.com/pkg/errors"
)

// Action is a named unit of work. Execute may fail; a failure
// propagates up through any composite or decorator wrapping it.
type Action interface {
	// Name returns the action's immutable name.
	Name() string
	// Execute runs the action once.
	Execute(ctx context.Context) error
}

// ExecutionError wraps a failure raised by a user-supplied action body.
type ExecutionError struct {
	Action string
	Cause  error
}

func (e *ExecutionError) Error() string {
	return "action " + e.Action + ": " + e.Cause.Error()
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

func executionError(name string, cause error) error {
	return errors.WithStack(&ExecutionError{Action: name, Cause: cause})
}

// singleAction is the concrete leaf: a named user function.
type singleAction struct {
	name string
	fn   func(ctx context.Context) error
}

// NewSingleAction wraps a user function of type func(context.Context)
// error as a leaf Action.
func NewSingleAction(name string, fn func(ctx context.Context) error) Action {
	return &singleAction{name: name, fn: fn}
}

func (a *singleAction) Name() string { return a.name }

func (a *singleAction) Execute(ctx context.Context) error {
	if err := a.fn(ctx); err != nil {
		return executionError(a.name, err)
	}
	return nil
}
