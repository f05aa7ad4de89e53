// Copyright (c) 2019,CAO HONGJU. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package globaltimer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphclock "github.com/cnotch/actiongraph/clock"
)

// ScenarioA: single trigger, virtual clock.
func TestGlobalTimer_SingleTriggerVirtualClock(t *testing.T) {
	t.Run("GlobalTimer.SingleTriggerVirtualClock", func(t *testing.T) {
		mc := graphclock.NewMock()
		gt := New(mc, nil)
		defer gt.Close()

		var fired int32
		var lastMessage string
		gt.Register(2*time.Millisecond, func() {
			atomic.AddInt32(&fired, 1)
			lastMessage = "two seconds executed"
		})

		for i := 0; i < 3; i++ {
			mc.Add(time.Millisecond)
			require.NoError(t, gt.WaitOneCycle())
		}

		assert.EqualValues(t, 1, atomic.LoadInt32(&fired))
		assert.Equal(t, "two seconds executed", lastMessage)
	})
}

// ScenarioB: two triggers, cumulative counts.
func TestGlobalTimer_TwoTriggersCumulativeCounts(t *testing.T) {
	t.Run("GlobalTimer.TwoTriggersCumulativeCounts", func(t *testing.T) {
		mc := graphclock.NewMock()
		gt := New(mc, nil)
		defer gt.Close()

		var fired1, fired2 int32
		gt.Register(time.Millisecond, func() { atomic.AddInt32(&fired1, 1) })
		gt.Register(2*time.Millisecond, func() { atomic.AddInt32(&fired2, 1) })

		for i := 0; i < 5; i++ {
			mc.Add(time.Millisecond)
			require.NoError(t, gt.WaitOneCycle())
		}

		assert.EqualValues(t, 5, atomic.LoadInt32(&fired1))
		assert.EqualValues(t, 2, atomic.LoadInt32(&fired2))
	})
}

// ScenarioC: backwards clock jump.
func TestGlobalTimer_BackwardsJumpRecovery(t *testing.T) {
	t.Run("GlobalTimer.BackwardsJumpRecovery", func(t *testing.T) {
		mc := graphclock.NewMock()
		origin := mc.Now()
		gt := New(mc, nil)
		defer gt.Close()

		var fired int32
		gt.Register(10*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })

		mc.Add(15 * time.Millisecond)
		require.NoError(t, gt.WaitOneCycle())
		assert.EqualValues(t, 1, atomic.LoadInt32(&fired))

		mc.Set(origin) // clock jumps backwards
		require.NoError(t, gt.WaitOneCycle())
		assert.EqualValues(t, 1, atomic.LoadInt32(&fired), "no spurious fire after a backwards jump")

		mc.Add(10 * time.Millisecond)
		require.NoError(t, gt.WaitOneCycle())
		assert.EqualValues(t, 2, atomic.LoadInt32(&fired))
	})
}

func TestGlobalTimer_DroppedFireStillAdvancesNextByExactlyOnePeriod(t *testing.T) {
	t.Run("GlobalTimer.DroppedFireAdvancesByPeriod", func(t *testing.T) {
		mc := graphclock.NewMock()
		gt := New(mc, nil)
		defer gt.Close()

		entered := make(chan struct{}, 8)
		release := make(chan struct{})
		var calls int32
		gt.Register(time.Millisecond, func() {
			atomic.AddInt32(&calls, 1)
			entered <- struct{}{}
			<-release
		})

		mc.Add(time.Millisecond) // first due time: fires and blocks inside release
		<-entered

		mc.Add(time.Millisecond) // second due time arrives while the first is still in flight: dropped

		close(release) // let the first call return so the trigger goes idle
		require.NoError(t, gt.WaitOneCycle())

		// exactly one call got through; the second due time was dropped
		// because the trigger was still running, not queued.
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})
}

func TestGlobalTimer_PanicRoutesToHandlerAndClearsIsRunning(t *testing.T) {
	t.Run("GlobalTimer.PanicRoutesToHandlerAndClearsIsRunning", func(t *testing.T) {
		var handled interface{}
		mc := graphclock.NewMock()
		gt := New(mc, func(r interface{}) { handled = r })
		defer gt.Close()

		tr := gt.Register(time.Millisecond, func() { panic("boom") })

		mc.Add(time.Millisecond)
		require.NoError(t, gt.WaitOneCycle())

		assert.Equal(t, "boom", handled)
		assert.False(t, tr.IsRunning())
	})
}

func TestGlobalTimer_WaitOneCycleFailsWhenStopped(t *testing.T) {
	t.Run("GlobalTimer.WaitOneCycleFailsWhenStopped", func(t *testing.T) {
		mc := graphclock.NewMock()
		gt := New(mc, nil)
		gt.Close()

		err := gt.WaitOneCycle()
		assert.Error(t, err)
	})
}

func TestGlobalTimer_RealClockFiresEventually(t *testing.T) {
	t.Run("GlobalTimer.RealClockFiresEventually", func(t *testing.T) {
		gt := New(graphclock.New(), nil)
		defer gt.Close()

		done := make(chan struct{})
		gt.Register(5*time.Millisecond, func() { close(done) })

		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			t.Fatal("expected trigger to fire on the real clock")
		}
	})
}
