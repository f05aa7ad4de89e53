// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package graphlog defines the Log sink collaborator used to report
// timing-monitor overruns, panics, and build diagnostics, plus two
// implementations: a structured zap-backed sink for production use and
// a plain io.Writer sink for tests and examples.
package graphlog

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Log is the interface every component that reports diagnostics
// depends on. Implementations are free to be synchronous and
// mutex-guarded; no ordering between concurrent logs is specified.
type Log interface {
	// LogMessage records an informational message.
	LogMessage(msg string)
	// LogError records an error condition.
	LogError(msg string)
}

// zapSink routes log sink calls to a structured zap.Logger.
type zapSink struct {
	l *zap.Logger
}

// NewZapSink returns a Log backed by a *zap.Logger.
func NewZapSink(l *zap.Logger) Log {
	return zapSink{l: l}
}

func (s zapSink) LogMessage(msg string) { s.l.Info(msg) }
func (s zapSink) LogError(msg string)   { s.l.Error(msg) }

// writerSink is a dependency-free Log for tests and small examples; it
// guards the writer with a mutex since concurrent triggers and
// decorators may log at the same time.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a Log that writes each message as one line to w.
func NewWriterSink(w io.Writer) Log {
	return &writerSink{w: w}
}

func (s *writerSink) LogMessage(msg string) { s.write("INFO", msg) }
func (s *writerSink) LogError(msg string)   { s.write("ERROR", msg) }

func (s *writerSink) write(level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "[%s] %s\n", level, msg)
}
