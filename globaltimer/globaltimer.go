// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package globaltimer implements the background scheduling loop: a
// single dedicated goroutine consults a schedule of (period, trigger,
// next fire time) entries against an injectable clock and fires every
// due trigger asynchronously, with at-most-one-in-flight semantics per
// trigger delegated to the trigger package.
package globaltimer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	graphclock "github.com/cnotch/actiongraph/clock"
	"github.com/cnotch/actiongraph/trigger"
)

// LogicError indicates caller misuse, such as calling WaitOneCycle on
// a timer that is no longer running.
type LogicError struct {
	Message string
}

func (e *LogicError) Error() string { return e.Message }

// maxLoopSleep bounds the loop's idle wait so WaitOneCycle latency and
// trigger-miss detection stay bounded even with a far-future next fire
// time; it replaces a hot spin without changing any ordering guarantee.
// The sleep is real wall-clock time regardless of which Clock was
// injected, so a manually advanced test clock is re-examined every
// pass instead of the loop blocking on virtual time that only a test
// goroutine can advance.
const maxLoopSleep = time.Millisecond

// scheduledTrigger is one entry of the timer's schedule: a period, the
// trigger it dispatches through, and the next time it is due.
type scheduledTrigger struct {
	period  time.Duration
	trigger *trigger.Trigger
	next    time.Time
}

// GlobalTimer runs one background loop that fires all due triggers
// from a single schedule. Each registered trigger executes its
// callback asynchronously with at most one concurrent run.
type GlobalTimer struct {
	clock        graphclock.Clock
	panicHandler trigger.PanicHandler
	running      atomic.Bool

	mu       sync.Mutex
	schedule []*scheduledTrigger

	cycleMu   sync.Mutex
	cycleCond *sync.Cond
	cycles    uint64

	previousNow time.Time
	havePrev    bool

	done chan struct{}
}

// New constructs a GlobalTimer and starts its background loop
// immediately against clk. panicHandler is routed to whenever a
// registered trigger's callback panics; it may be nil, in which case
// the panic is recovered silently (see trigger.New).
func New(clk graphclock.Clock, panicHandler trigger.PanicHandler) *GlobalTimer {
	t := &GlobalTimer{
		clock:        clk,
		panicHandler: panicHandler,
		done:         make(chan struct{}),
	}
	t.cycleCond = sync.NewCond(&t.cycleMu)
	t.running.Store(true)
	go t.loop()
	return t
}

// Register appends a new scheduled trigger with the given period and
// callback, due for its first fire at Now()+period. It is safe to call
// concurrently with the loop and with other Register calls, but never
// after Close has begun. A panicking callback is routed to the
// panicHandler passed to New.
func (t *GlobalTimer) Register(period time.Duration, callback func()) *trigger.Trigger {
	tr := trigger.New(callback, t.panicHandler)

	t.mu.Lock()
	t.schedule = append(t.schedule, &scheduledTrigger{
		period:  period,
		trigger: tr,
		next:    t.clock.Now().Add(period),
	})
	t.mu.Unlock()

	return tr
}

// WaitOneCycle blocks until the scheduling loop has completed at least
// one full pass after this call was made, and then until every
// scheduled trigger has gone idle. Two broadcasts are awaited rather
// than one, so that a broadcast racing the call's setup can never be
// mistaken for the pass this call is waiting on.
func (t *GlobalTimer) WaitOneCycle() error {
	if !t.running.Load() {
		return errors.WithStack(&LogicError{Message: "global timer is not running"})
	}

	t.cycleMu.Lock()
	start := t.cycles
	for t.cycles < start+2 {
		t.cycleCond.Wait()
	}
	t.cycleMu.Unlock()

	t.mu.Lock()
	triggers := make([]*trigger.Trigger, len(t.schedule))
	for i, e := range t.schedule {
		triggers[i] = e.trigger
	}
	t.mu.Unlock()

	for _, tr := range triggers {
		tr.WaitUntilIdle()
	}
	return nil
}

// Close stops the loop and waits for its goroutine to exit. In-flight
// trigger callbacks are not cancelled; they run to completion.
func (t *GlobalTimer) Close() {
	t.running.Store(false)
	<-t.done
}

func (t *GlobalTimer) loop() {
	defer close(t.done)

	for t.running.Load() {
		now := t.clock.Now()
		t.detectBackwardsJump(now)

		sleep := t.dispatchDue(now)

		t.cycleMu.Lock()
		t.cycles++
		t.cycleCond.Broadcast()
		t.cycleMu.Unlock()

		if sleep > maxLoopSleep {
			sleep = maxLoopSleep
		}
		if sleep > 0 {
			time.Sleep(sleep)
		}
	}
}

// dispatchDue fires every entry whose next time has arrived, advancing
// next by exactly one period regardless of whether the fire was
// accepted or dropped, and returns how long the loop may idle before
// the next entry could possibly be due.
func (t *GlobalTimer) dispatchDue(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	nextWake := maxLoopSleep
	for _, e := range t.schedule {
		if !now.Before(e.next) {
			e.trigger.FireAsynchronously()
			e.next = e.next.Add(e.period) // advances even if the fire was dropped
		}
		if until := e.next.Sub(now); until < nextWake {
			nextWake = until
		}
	}
	if nextWake < 0 {
		nextWake = 0
	}
	return nextWake
}

// detectBackwardsJump rewrites every entry's next fire time to
// now+period when the clock is observed to have moved backwards,
// preventing a flood of spurious fires.
func (t *GlobalTimer) detectBackwardsJump(now time.Time) {
	if t.havePrev && now.Before(t.previousNow) {
		t.mu.Lock()
		for _, e := range t.schedule {
			e.next = now.Add(e.period)
		}
		t.mu.Unlock()
	}
	t.previousNow = now
	t.havePrev = true
}
