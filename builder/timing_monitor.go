// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package builder

import (
	"fmt"

	"github.com/cnotch/actiongraph/action"
	graphclock "github.com/cnotch/actiongraph/clock"
	"github.com/cnotch/actiongraph/config"
	"github.com/cnotch/actiongraph/duration"
	"github.com/cnotch/actiongraph/graphlog"
)

// RegisterTimingMonitor registers the "timing_monitor" decorator type:
// it reads duration_limit and expected_period from the decorator
// node, parses them as durations, and wraps the built action in a
// TimingMonitor whose two callbacks route to log as
// "Duration for action X exceeded the limit." and
// "The period for action X exceeded the limit."
func RegisterTimingMonitor(registry *DecoratorRegistry, clk graphclock.Clock, log graphlog.Log) {
	registry.Register("timing_monitor", func(node config.Node, built action.Action) (action.Action, error) {
		limitText, err := requireString(node, "duration_limit")
		if err != nil {
			return nil, err
		}
		periodText, err := requireString(node, "expected_period")
		if err != nil {
			return nil, err
		}

		limit, err := duration.Parse(limitText)
		if err != nil {
			return nil, err
		}
		period, err := duration.Parse(periodText)
		if err != nil {
			return nil, err
		}

		name := built.Name()
		onDurationExceeded := func() {
			log.LogError(fmt.Sprintf("Duration for action %s exceeded the limit.", name))
		}
		onTriggerMiss := func() {
			log.LogError(fmt.Sprintf("The period for action %s exceeded the limit.", name))
		}

		return action.NewTimingMonitor(clk, built, limit, period, onDurationExceeded, onTriggerMiss), nil
	})
}
