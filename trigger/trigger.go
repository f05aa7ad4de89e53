// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package trigger implements at-most-one-in-flight asynchronous fire
// semantics for a single callback. The GlobalTimer owns one Trigger
// per registered period and calls FireAsynchronously on every pass
// where that trigger's schedule entry is due.
package trigger

import (
	"runtime"
	"sync/atomic"
)

// PanicHandler is invoked, instead of letting the goroutine crash the
// process, when a trigger's callback panics.
type PanicHandler func(r interface{})

// Trigger owns a callback and guarantees at most one worker goroutine
// runs it at a time: a fire request issued while the previous one is
// still running is dropped, not queued.
type Trigger struct {
	callback     func()
	panicHandler PanicHandler
	isRunning    atomic.Bool
}

// New returns a Trigger wrapping callback. panicHandler may be nil, in
// which case a panicking callback is silently recovered.
func New(callback func(), panicHandler PanicHandler) *Trigger {
	return &Trigger{callback: callback, panicHandler: panicHandler}
}

// FireAsynchronously attempts to transition the trigger from idle to
// running. On success it spawns a goroutine that invokes the callback
// and clears the running flag on every exit path, including a panic.
// On failure (already running) the fire is dropped and this call
// returns immediately; it never blocks.
func (t *Trigger) FireAsynchronously() {
	if !t.isRunning.CompareAndSwap(false, true) {
		return // already running: fire is dropped, no queueing
	}

	go func() {
		defer t.isRunning.Store(false)
		defer func() {
			if r := recover(); r != nil {
				if t.panicHandler != nil {
					t.panicHandler(r)
				}
			}
		}()
		t.callback()
	}()
}

// IsRunning reports whether a worker is currently executing the
// callback.
func (t *Trigger) IsRunning() bool {
	return t.isRunning.Load()
}

// WaitUntilIdle blocks the calling goroutine until no worker is
// running. It is safe to call from any goroutine, including during
// teardown.
func (t *Trigger) WaitUntilIdle() {
	for t.isRunning.Load() {
		runtime.Gosched()
	}
}

// Close waits for the trigger to go idle before returning, mirroring
// the "destructor blocks until idle" contract.
func (t *Trigger) Close() {
	t.WaitUntilIdle()
}
