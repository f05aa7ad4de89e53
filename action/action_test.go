// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package action

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder() (func(string), func() []string) {
	var mu sync.Mutex
	var effects []string
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		effects = append(effects, s)
	}
	snapshot := func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := make([]string, len(effects))
		copy(out, effects)
		return out
	}
	return record, snapshot
}

func recordingLeaf(name string, record func(string)) Action {
	return NewSingleAction(name, func(context.Context) error {
		record(name)
		return nil
	})
}

func TestSequence_Order(t *testing.T) {
	t.Run("Sequence.Order", func(t *testing.T) {
		record, effects := recorder()
		seq := NewSequence("root", recordingLeaf("a", record), recordingLeaf("b", record), recordingLeaf("c", record))

		require.NoError(t, seq.Execute(context.Background()))
		assert.Equal(t, []string{"a", "b", "c"}, effects())
	})
}

func TestSequence_Empty(t *testing.T) {
	t.Run("Sequence.Empty", func(t *testing.T) {
		seq := NewSequence("root")
		assert.NoError(t, seq.Execute(context.Background()))
	})
}

func TestSequence_AbortsOnFailure(t *testing.T) {
	t.Run("Sequence.AbortsOnFailure", func(t *testing.T) {
		record, effects := recorder()
		boom := errors.New("boom")
		failing := NewSingleAction("b", func(context.Context) error { return boom })

		seq := NewSequence("root", recordingLeaf("a", record), failing, recordingLeaf("c", record))
		err := seq.Execute(context.Background())

		require.Error(t, err)
		assert.Equal(t, []string{"a"}, effects())
	})
}

func TestParallel_JoinsAndUnionsEffects(t *testing.T) {
	t.Run("Parallel.JoinsAndUnionsEffects", func(t *testing.T) {
		record, effects := recorder()
		par := NewParallel("fan", recordingLeaf("b", record), recordingLeaf("c", record))

		require.NoError(t, par.Execute(context.Background()))
		assert.ElementsMatch(t, []string{"b", "c"}, effects())
	})
}

func TestParallel_AllChildrenAwaitedOnFailure(t *testing.T) {
	t.Run("Parallel.AllChildrenAwaitedOnFailure", func(t *testing.T) {
		record, effects := recorder()
		boom := errors.New("boom")
		failing := NewSingleAction("b", func(context.Context) error { return boom })

		par := NewParallel("fan", failing, recordingLeaf("c", record))
		err := par.Execute(context.Background())

		require.Error(t, err)
		assert.Contains(t, effects(), "c")
	})
}

func TestParallel_PanicIsRecoveredAndRoutedToHandler(t *testing.T) {
	t.Run("Parallel.PanicIsRecoveredAndRoutedToHandler", func(t *testing.T) {
		record, effects := recorder()
		var handled interface{}
		panicking := NewSingleAction("boom", func(context.Context) error { panic("kaboom") })

		par := NewParallelWithPanicHandler("fan", func(r interface{}) { handled = r }, panicking, recordingLeaf("c", record))
		err := par.Execute(context.Background())

		require.Error(t, err, "a panicking child must not crash the process, but must still fail the join")
		assert.Equal(t, "kaboom", handled)
		assert.Contains(t, effects(), "c", "every sibling is still awaited after one child panics")
	})
}

func TestParallel_PanicWithNoHandlerIsStillRecovered(t *testing.T) {
	t.Run("Parallel.PanicWithNoHandlerIsStillRecovered", func(t *testing.T) {
		panicking := NewSingleAction("boom", func(context.Context) error { panic("kaboom") })
		par := NewParallel("fan", panicking)

		err := par.Execute(context.Background())
		require.Error(t, err)
	})
}

func TestSequentialAndParallelComposition(t *testing.T) {
	t.Run("Action.SequentialAndParallelComposition", func(t *testing.T) {
		record, effects := recorder()
		graph := NewSequence("root",
			recordingLeaf("A", record),
			NewParallel("fan", recordingLeaf("B", record), recordingLeaf("C", record)),
			recordingLeaf("D", record),
		)

		require.NoError(t, graph.Execute(context.Background()))

		got := effects()
		require.Len(t, got, 4)
		assert.Equal(t, "A", got[0])
		assert.Equal(t, "D", got[3])
		assert.ElementsMatch(t, []string{"B", "C"}, got[1:3])
	})
}
