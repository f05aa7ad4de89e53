// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

// decorated is embedded by every decorator: it exclusively owns one
// wrapped action and exposes it to the embedding type. A decorator's
// Name() reports the wrapped action's name, so wrapping never changes
// an action's position or identity in the graph (testable property 3,
// "decorator idempotence of shape").
type decorated struct {
	inner Action
}

func (d decorated) Name() string { return d.inner.Name() }

// Inner returns the wrapped action.
func (d decorated) Inner() Action { return d.inner }
