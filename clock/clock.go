// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clock provides the monotonic time source injected into every
// time-sensitive component of the action graph: the global timer, the
// timing-monitor decorator, and the trigger dispatch loop. Production
// code uses the real wall clock; tests substitute a manually advanced
// mock so that period accounting, backwards-clock recovery, and timing
// overruns can be driven deterministically.
package clock

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is the time source every scheduling component depends on
// instead of the time package directly.
type Clock interface {
	// Now returns the clock's current time.
	Now() time.Time
	// After returns a channel that fires once after d has elapsed.
	After(d time.Duration) <-chan time.Time
	// Timer returns a resettable timer, mirroring time.Timer.
	Timer(d time.Duration) *clock.Timer
	// Sleep blocks the calling goroutine for d.
	Sleep(d time.Duration)
}

// realClock wraps github.com/benbjohnson/clock's real-time clock so
// production code and tests share one Clock interface.
type realClock struct {
	clock.Clock
}

// New returns a Clock backed by the real wall clock.
func New() Clock {
	return realClock{Clock: clock.New()}
}

// Mock is a manually advanced clock for tests, re-exporting
// github.com/benbjohnson/clock's Mock so callers can Add/Set without an
// import of the underlying library.
type Mock = clock.Mock

// NewMock returns a Clock that only advances when Add or Set is called.
func NewMock() *Mock {
	return clock.NewMock()
}
