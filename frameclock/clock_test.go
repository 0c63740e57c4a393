// This file is part of MageHost.
//
// MageHost is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// MageHost is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with MageHost.  If not, see <https://www.gnu.org/licenses/>.

package frameclock_test

import (
	"testing"
	"time"

	"github.com/circuitmage/magehost/frameclock"
	"github.com/circuitmage/magehost/test"
)

// fakeTimer stands in for the cycle counter, the wall clock and the sleep
// primitive. sleeping advances the wall clock by the requested duration
// plus the overshoot; a non-zero autoAdvance moves the wall clock forward
// on every read, which is what lets the busy-wait path terminate.
type fakeTimer struct {
	cycles      uint64
	nanos       int64
	overshoot   time.Duration
	autoAdvance int64
	slept       []time.Duration
}

func (tm *fakeTimer) cycleSource() uint64 {
	return tm.cycles
}

func (tm *fakeTimer) wallClock() int64 {
	tm.nanos += tm.autoAdvance
	return tm.nanos
}

func (tm *fakeTimer) sleep(d time.Duration) {
	tm.slept = append(tm.slept, d)
	tm.nanos += int64(d + tm.overshoot)
}

func newTestClock(refreshHint int, overshoot time.Duration) (*frameclock.Clock, *fakeTimer) {
	tm := &fakeTimer{overshoot: overshoot}
	clk := frameclock.NewClock(refreshHint)
	clk.CycleSource = tm.cycleSource
	clk.WallClock = tm.wallClock
	clk.Sleep = tm.sleep
	clk.Calibrate()
	clk.Align()
	tm.slept = tm.slept[:0]
	return clk, tm
}

func TestTargetFrameDuration(t *testing.T) {
	// twice the refresh rate. 60Hz hint targets ~8.33ms
	clk, _ := newTestClock(60, 0)
	test.ExpectEquality(t, clk.Snapshot().TargetFrameDuration, time.Duration(8333333))

	// 144Hz hint targets ~3.47ms
	clk, _ = newTestClock(144, 0)
	test.ExpectEquality(t, clk.Snapshot().TargetFrameDuration, time.Duration(3472222))

	// undetermined refresh rate assumes 60Hz
	clk, _ = newTestClock(0, 0)
	test.ExpectEquality(t, clk.Snapshot().TargetFrameDuration, time.Duration(8333333))
	clk, _ = newTestClock(-1, 0)
	test.ExpectEquality(t, clk.Snapshot().TargetFrameDuration, time.Duration(8333333))
}

func TestCycleClamp(t *testing.T) {
	clk, tm := newTestClock(60, 0)

	tm.cycles = 1000
	clk.Align()

	// a decreasing counter is reported as a delta of one, never negative
	tm.cycles = 500
	snap := clk.Tick()
	test.ExpectEquality(t, snap.CyclesElapsed, 1)

	tm.cycles = 100
	snap = clk.Tick()
	test.ExpectEquality(t, snap.CyclesElapsed, 1)

	// a stalled counter likewise
	snap = clk.Tick()
	test.ExpectEquality(t, snap.CyclesElapsed, 1)

	// normal operation
	tm.cycles += 2000000
	snap = clk.Tick()
	test.ExpectEquality(t, snap.CyclesElapsed, 2000000)
	test.ExpectEquality(t, snap.MegacyclesPerFrame, 2.0)
}

func TestDerivedFigures(t *testing.T) {
	clk, tm := newTestClock(60, 0)

	tm.nanos += int64(20 * time.Millisecond)
	tm.cycles += 4000000
	snap := clk.Tick()

	test.ExpectEquality(t, snap.MillisecondsPerFrame, 20.0)
	test.ExpectEquality(t, snap.FramesPerSecond, 50.0)
	test.ExpectEquality(t, snap.MegacyclesPerFrame, 4.0)
}

func TestPaceSleeps(t *testing.T) {
	clk, tm := newTestClock(60, 0)

	// 2ms of work leaves the remainder of the 8.33ms budget to sleep
	tm.nanos += int64(2 * time.Millisecond)
	clk.Tick()
	clk.Pace()

	test.DemandEquality(t, len(tm.slept), 1)
	test.ExpectEquality(t, tm.slept[0], time.Duration(6333333))
	test.ExpectEquality(t, clk.Snapshot().LoopCounter, 1)
}

func TestPaceNoopWhenOverBudget(t *testing.T) {
	clk, tm := newTestClock(60, 0)

	// a slow frame is allowed to overrun. no sleep, no spin
	tm.nanos += int64(10 * time.Millisecond)
	clk.Tick()
	clk.Pace()

	test.ExpectEquality(t, len(tm.slept), 0)
	test.ExpectEquality(t, clk.Snapshot().LoopCounter, 1)
}

func TestPaceSpinsWithoutGranularSleep(t *testing.T) {
	// a 10ms overshoot fails the calibration probe
	clk, tm := newTestClock(60, 10*time.Millisecond)
	test.ExpectEquality(t, clk.Snapshot().SleepIsGranular, false)

	// each counter read advances the wall clock by 1ms so the busy-wait
	// terminates after a handful of re-ticks
	tm.autoAdvance = int64(time.Millisecond)
	clk.Tick()
	clk.Pace()

	test.ExpectEquality(t, len(tm.slept), 0)
	test.ExpectSuccess(t, clk.Snapshot().Elapsed >= clk.Snapshot().TargetFrameDuration.Seconds())
}

func TestLoopCounterWrap(t *testing.T) {
	clk, _ := newTestClock(60, 0)
	clk.DisablePacing = true

	for i := 0; i < 1000; i++ {
		clk.Pace()
	}
	test.ExpectEquality(t, clk.Snapshot().LoopCounter, 1000)

	// the one thousand and first increment wraps to zero
	clk.Pace()
	test.ExpectEquality(t, clk.Snapshot().LoopCounter, 0)
}
