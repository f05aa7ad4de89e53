// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

import (
	"context"
	"sync"
	"time"

	graphclock "github.com/cnotch/actiongraph/clock"
)

// timingMonitor decorates an action with a duration budget and a
// nominal period. Each Execute call checks whether the time since the
// previous call exceeded the period (a "trigger miss") and whether the
// inner action's own execution exceeded the duration limit.
//
// The very first call can report a trigger miss if the gap between
// construction and the first Execute exceeds the period; this mirrors
// the monitored source this type was modeled on and is intentional.
type timingMonitor struct {
	decorated
	clock graphclock.Clock

	durationLimit time.Duration
	period        time.Duration

	onDurationExceeded func()
	onTriggerMiss      func()

	mu                sync.Mutex
	lastExecutionTime time.Time
}

// NewTimingMonitor wraps inner with a duration-limit and period check.
// onDurationExceeded fires when one Execute call of inner runs longer
// than durationLimit; onTriggerMiss fires when the gap since the
// previous call exceeds period. Both callbacks are best-effort and
// never escape the decorator.
func NewTimingMonitor(clk graphclock.Clock, inner Action, durationLimit, period time.Duration, onDurationExceeded, onTriggerMiss func()) Action {
	return &timingMonitor{
		decorated:          decorated{inner: inner},
		clock:              clk,
		durationLimit:      durationLimit,
		period:             period,
		onDurationExceeded: onDurationExceeded,
		onTriggerMiss:      onTriggerMiss,
		lastExecutionTime:  clk.Now(),
	}
}

func (m *timingMonitor) Execute(ctx context.Context) error {
	now := m.clock.Now()

	m.mu.Lock()
	last := m.lastExecutionTime
	m.lastExecutionTime = now
	m.mu.Unlock()

	if now.Sub(last) > m.period {
		if m.onTriggerMiss != nil {
			safeCall(m.onTriggerMiss)
		}
	}

	start := m.clock.Now()
	err := m.inner.Execute(ctx)
	elapsed := m.clock.Now().Sub(start)

	if elapsed > m.durationLimit {
		if m.onDurationExceeded != nil {
			safeCall(m.onDurationExceeded)
		}
	}

	return err
}
