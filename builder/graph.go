// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package builder

import (
	"context"
	"time"

	"github.com/cnotch/actiongraph/action"
	"github.com/cnotch/actiongraph/config"
	"github.com/cnotch/actiongraph/duration"
	"github.com/cnotch/actiongraph/globaltimer"
)

// ScheduledAction pairs a built action with the trigger name and period
// it was registered under, so callers can keep the action graph alive,
// inspect what was built, and (e.g. an example runner) reconstruct the
// trigger's schedule for diagnostics.
type ScheduledAction struct {
	TriggerName string
	Period      time.Duration
	Action      action.Action
}

// BuildActionGraph reads a top-level sequence of {trigger: {name,
// period, action}} entries, builds each inner action with b, and
// registers (period, callback) with timer for each one. The returned
// slice keeps every built action alive for the timer's lifetime; the
// caller must not let it go out of scope before closing timer.
func BuildActionGraph(root config.Node, b *ActionBuilder, timer *globaltimer.GlobalTimer) ([]ScheduledAction, error) {
	scheduled := make([]ScheduledAction, 0, root.Size())

	for i := 0; i < root.Size(); i++ {
		entry, err := root.GetIndex(i)
		if err != nil {
			return nil, err
		}
		if !entry.HasKey("trigger") {
			return nil, configurationError(entry, "missing required key %q", "trigger")
		}
		trig, err := entry.Get("trigger")
		if err != nil {
			return nil, err
		}

		name, err := requireString(trig, "name")
		if err != nil {
			return nil, err
		}
		periodText, err := requireString(trig, "period")
		if err != nil {
			return nil, err
		}
		period, err := duration.Parse(periodText)
		if err != nil {
			return nil, err
		}

		built, err := b.Build(trig)
		if err != nil {
			return nil, err
		}

		timer.Register(period, func() { _ = built.Execute(context.Background()) })
		scheduled = append(scheduled, ScheduledAction{TriggerName: name, Period: period, Action: built})
	}

	return scheduled, nil
}

func requireString(node config.Node, key string) (string, error) {
	if !node.HasKey(key) {
		return "", configurationError(node, "missing required key %q", key)
	}
	v, err := node.Get(key)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}
