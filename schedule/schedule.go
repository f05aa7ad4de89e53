// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package schedule provides a small algebra of trigger-time
// combinators (Union, Minus, Intersect) in the style the teacher
// project used for its cron-backed job scheduler. It sits outside the
// core trigger/globaltimer contract: the action graph's own triggers
// are strictly named+period, per spec, so this package is only used by
// cmd/actiongraph-example to preview upcoming activations of the
// registered trigger periods.
package schedule

import "time"

// Schedule describes a duty cycle: Next returns the next activation
// time strictly after t, or the zero time to indicate no further
// occurrences.
type Schedule interface {
	Next(t time.Time) time.Time
}

// Func adapts an ordinary function to the Schedule interface.
type Func func(time.Time) time.Time

// Next returns the next activation time.
func (f Func) Next(t time.Time) time.Time { return f(t) }

// Periodic returns a Schedule that fires every period starting at the
// first Next call after construction.
func Periodic(period time.Duration) Schedule {
	var anchor time.Time
	anchored := false
	return Func(func(t time.Time) time.Time {
		if !anchored {
			anchor, anchored = t, true
		}
		if period <= 0 || t.Before(anchor) {
			return anchor.Add(period)
		}
		return anchor.Add((t.Sub(anchor)/period + 1) * period)
	})
}

// Union returns the schedule that fires whenever l or r would (l ∪ r).
func Union(l, r Schedule) Schedule {
	return &union{l: l, r: r}
}

type union struct {
	l, r Schedule
}

func (u *union) Next(t time.Time) time.Time {
	t1 := u.l.Next(t)
	t2 := u.r.Next(t)
	if t1.IsZero() {
		return t2
	}
	if t2.IsZero() {
		return t1
	}
	if t1.Before(t2) {
		return t1
	}
	return t2
}

// Minus returns the schedule that fires whenever l would but r would
// not at the same instant (l - r).
func Minus(l, r Schedule) Schedule {
	return &minus{l: l, r: r}
}

type minus struct {
	l, r Schedule
}

func (m *minus) Next(t time.Time) time.Time {
	t1 := m.l.Next(t)
	t2 := m.r.Next(t)

	for {
		if t1.IsZero() {
			return t1
		}
		if t2.IsZero() || t1.Before(t2) {
			return t1
		}
		if t1.Equal(t2) {
			t1 = m.l.Next(t1)
			t2 = m.r.Next(t2)
			continue
		}
		for t2.Before(t1) {
			t2 = m.r.Next(t2)
			if t2.IsZero() {
				return t1
			}
		}
	}
}

// Intersect returns the schedule that fires only at instants shared by
// both l and r (l ∩ r).
func Intersect(l, r Schedule) Schedule {
	return &intersect{l: l, r: r}
}

type intersect struct {
	l, r Schedule
}

func (i *intersect) Next(t time.Time) time.Time {
	t1 := i.l.Next(t)
	t2 := i.r.Next(t)
	for {
		if t1.IsZero() || t2.IsZero() {
			return time.Time{}
		}
		if t1.Equal(t2) {
			return t1
		}
		if t1.Before(t2) {
			t1 = i.l.Next(t1)
		} else {
			t2 = i.r.Next(t2)
		}
	}
}
