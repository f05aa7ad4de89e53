// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

import "context"

// ExecutionObserver receives lifecycle callbacks around one action's
// execution. Implementations must not panic; Observed recovers from a
// panicking callback so it cannot escape the decorator.
type ExecutionObserver interface {
	// OnStarted runs before the wrapped action's Execute.
	OnStarted()
	// OnFinished runs after a successful Execute.
	OnFinished()
	// OnFailed runs instead of OnFinished when Execute fails.
	OnFailed(err error)
}

type observed struct {
	decorated
	observer ExecutionObserver
}

// NewObserved wraps inner with lifecycle callbacks: OnStarted precedes
// execution, OnFinished follows success, OnFailed(err) follows failure
// and the failure is re-propagated.
func NewObserved(inner Action, observer ExecutionObserver) Action {
	return &observed{decorated: decorated{inner: inner}, observer: observer}
}

func (o *observed) Execute(ctx context.Context) error {
	safeCall(o.observer.OnStarted)

	err := o.inner.Execute(ctx)
	if err != nil {
		safeCall(func() { o.observer.OnFailed(err) })
		return err
	}

	safeCall(o.observer.OnFinished)
	return nil
}

// safeCall runs a best-effort callback, swallowing any panic so that
// user-supplied observer/monitor callbacks can never escape a decorator.
func safeCall(fn func()) {
	defer func() { recover() }() //nolint:errcheck
	fn()
}
