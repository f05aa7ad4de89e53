// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command actiongraph-example loads a YAML trigger-list configuration,
// builds an action graph against a GlobalTimer, and runs until
// SIGINT/SIGTERM. It is an example runner, not part of the core
// contract (spec.md §6).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cnotch/actiongraph/action"
	"github.com/cnotch/actiongraph/builder"
	graphclock "github.com/cnotch/actiongraph/clock"
	"github.com/cnotch/actiongraph/config"
	"github.com/cnotch/actiongraph/globaltimer"
	"github.com/cnotch/actiongraph/graphlog"
	"github.com/cnotch/actiongraph/schedule"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML trigger-list configuration file")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: actiongraph-example -config <file.yaml>")
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	sink := graphlog.NewZapSink(logger)
	panicHandler := func(r interface{}) {
		sink.LogError(fmt.Sprintf("recovered panic: %v", r))
	}

	f, err := os.Open(*configPath)
	if err != nil {
		logger.Fatal("open configuration", zap.Error(err))
	}
	defer f.Close()

	root, err := config.ParseYAML(f)
	if err != nil {
		logger.Fatal("parse configuration", zap.Error(err))
	}

	clk := graphclock.New()
	timer := globaltimer.New(clk, panicHandler)
	defer timer.Close()

	decorators := builder.NewDecoratorRegistry()
	builder.RegisterTimingMonitor(decorators, clk, sink)
	b := builder.New(decorators, panicHandler)
	registerLogMessageAction(b, sink)

	scheduled, err := builder.BuildActionGraph(root, b, timer)
	if err != nil {
		logger.Fatal("build action graph", zap.Error(err))
	}
	for _, s := range scheduled {
		sink.LogMessage(fmt.Sprintf("registered trigger %q (period %s)", s.TriggerName, s.Period))
	}
	logSchedulePreview(sink, clk.Now(), scheduled)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	sink.LogMessage(fmt.Sprintf("received signal %s, shutting down", s))
}

// registerLogMessageAction registers the "log_message" leaf factory:
// a trivial action that writes its configured "message" field to sink,
// mirroring original_source/src/examples/logging_builder.cpp's
// log_action leaf. Without at least one leaf factory, no YAML
// configuration built by this binary could ever produce a runnable
// action graph.
func registerLogMessageAction(b *builder.ActionBuilder, sink graphlog.Log) {
	b.Register("log_message", func(node config.Node, _ *builder.ActionBuilder) (action.Action, error) {
		name := ""
		if node.HasKey("name") {
			if n, err := node.Get("name"); err == nil {
				name = n.AsString()
			}
		}
		if !node.HasKey("message") {
			return nil, errors.Errorf("log_message action %q missing required key %q", name, "message")
		}
		messageNode, err := node.Get("message")
		if err != nil {
			return nil, err
		}
		message := messageNode.AsString()

		return action.NewSingleAction(name, func(context.Context) error {
			sink.LogMessage(message)
			return nil
		}), nil
	})
}

// logSchedulePreview demonstrates the schedule package's Union,
// Intersect, and Minus combinators over the trigger periods just
// registered: it previews the next few instants at which any trigger
// fires, and (with at least two triggers) when two of them coincide or
// fire independently of each other. This is purely diagnostic output
// for the example runner; the core trigger/timer contract never uses
// these combinators (spec.md's triggers are named+period only).
func logSchedulePreview(sink graphlog.Log, now time.Time, scheduled []builder.ScheduledAction) {
	if len(scheduled) == 0 {
		return
	}

	combined := schedule.Periodic(scheduled[0].Period)
	for _, s := range scheduled[1:] {
		combined = schedule.Union(combined, schedule.Periodic(s.Period))
	}
	t := now
	for i := 0; i < 3; i++ {
		t = combined.Next(t)
		sink.LogMessage(fmt.Sprintf("next combined trigger activation: %s", t.Format(time.RFC3339Nano)))
	}

	if len(scheduled) < 2 {
		return
	}
	first, second := scheduled[0], scheduled[1]
	shared := schedule.Intersect(schedule.Periodic(first.Period), schedule.Periodic(second.Period))
	if next := shared.Next(now); !next.IsZero() {
		sink.LogMessage(fmt.Sprintf("%q and %q next coincide at %s", first.TriggerName, second.TriggerName, next.Format(time.RFC3339Nano)))
	}
	// When first's period is a multiple of second's, every activation of
	// first coincides with one of second and there is no exclusive instant.
	if second.Period > 0 && first.Period%second.Period != 0 {
		onlyFirst := schedule.Minus(schedule.Periodic(first.Period), schedule.Periodic(second.Period))
		if next := onlyFirst.Next(now); !next.IsZero() {
			sink.LogMessage(fmt.Sprintf("%q next fires without %q at %s", first.TriggerName, second.TriggerName, next.Format(time.RFC3339Nano)))
		}
	}
}
