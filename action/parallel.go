// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

import (
	"context"
	"fmt"
	"sync"
)

// PanicHandler is invoked, instead of letting a child's goroutine crash
// the process, when a parallel child panics. It may be nil, in which
// case the panic is still recovered (only silently, with no handler
// call) and surfaced as the child's failure.
type PanicHandler func(r interface{})

// parallel starts one goroutine per child and barrier-joins them all.
// If multiple children fail, one failure is surfaced after every child
// has completed; all started children are always awaited. A panicking
// child is recovered rather than crashing the process, routed to the
// panicHandler if set, and surfaced as that child's failure.
type parallel struct {
	name         string
	children     []Action
	panicHandler PanicHandler
}

// NewParallel returns an Action that fans out to its children
// concurrently and joins before returning. An empty parallel is legal
// and succeeds immediately. A panicking child is recovered silently.
func NewParallel(name string, children ...Action) Action {
	return &parallel{name: name, children: children}
}

// NewParallelWithPanicHandler is NewParallel with panicHandler routed
// to on a recovered child panic, mirroring trigger.New's panicHandler.
func NewParallelWithPanicHandler(name string, panicHandler PanicHandler, children ...Action) Action {
	return &parallel{name: name, children: children, panicHandler: panicHandler}
}

func (p *parallel) Name() string { return p.name }

func (p *parallel) Execute(ctx context.Context) error {
	if len(p.children) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(len(p.children))
	for _, child := range p.children {
		child := child
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					if p.panicHandler != nil {
						p.panicHandler(r)
					}
					recordErr(executionError(child.Name(), fmt.Errorf("panic: %v", r)))
				}
			}()
			if err := child.Execute(ctx); err != nil {
				recordErr(err)
			}
		}()
	}
	wg.Wait()

	return firstErr
}
