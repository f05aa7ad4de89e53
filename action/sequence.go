// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

import "context"

// sequence runs its children in index order; the first failure aborts
// the remaining children and is surfaced.
type sequence struct {
	name     string
	children []Action
}

// NewSequence returns an Action that executes children in index order.
// An empty sequence is legal and succeeds immediately.
func NewSequence(name string, children ...Action) Action {
	return &sequence{name: name, children: children}
}

func (s *sequence) Name() string { return s.name }

func (s *sequence) Execute(ctx context.Context) error {
	for _, child := range s.children {
		if err := child.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}
