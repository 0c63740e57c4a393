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

package frameclock

import (
	"time"
)

// the number of wall counter ticks in one second. the wall counter is the
// Go monotonic clock so the frequency is fixed.
const perfCountFrequency = int64(time.Second / time.Nanosecond)

// a sleep of one millisecond that completes within this duration is taken
// as evidence that the sleep primitive has millisecond granularity.
const granularityThreshold = 4 * time.Millisecond

// Clock measures elapsed wall time and CPU cycles per iteration of the host
// loop and paces the loop to the target frame duration. Owned by the host
// thread; not safe for concurrent use.
type Clock struct {
	// counter sources and the sleep primitive. assigned by NewClock();
	// tests substitute deterministic implementations
	CycleSource func() uint64
	WallClock   func() int64
	Sleep       func(time.Duration)

	// pacing disabled with the "slow" startup option
	DisablePacing bool

	snapshot Snapshot
}

// NewClock is the preferred method of initialisation for the Clock type.
//
// refreshHint is the display refresh rate in Hz. The target frame duration
// is the period of twice that rate. A hint of one or less means the refresh
// rate could not be determined and 60Hz is assumed.
func NewClock(refreshHint int) *Clock {
	if refreshHint <= 1 {
		refreshHint = 60
	}

	clk := &Clock{
		CycleSource: hardwareCycles,
		Sleep:       time.Sleep,
	}

	epoch := time.Now()
	clk.WallClock = func() int64 {
		return int64(time.Since(epoch))
	}

	clk.snapshot = Snapshot{
		PerfCountFrequency:  perfCountFrequency,
		TargetFrameDuration: time.Duration(int64(time.Second) / int64(2*refreshHint)),
	}

	clk.Calibrate()
	clk.Align()

	return clk
}

// Calibrate probes the sleep granularity using the current Sleep and
// WallClock functions. NewClock() calls this once; call it again if the
// counter sources have been substituted.
func (clk *Clock) Calibrate() {
	clk.snapshot.SleepIsGranular = probeSleepGranularity(clk.Sleep, clk.WallClock)
}

// probeSleepGranularity measures one short sleep. some platform/timer
// combinations cannot sleep for small durations and overshoot badly; on
// those the pacing step must busy-wait instead.
func probeSleepGranularity(sleep func(time.Duration), wallClock func() int64) bool {
	start := wallClock()
	sleep(time.Millisecond)
	return time.Duration(wallClock()-start) < granularityThreshold
}

// Align resets the frame origin to the current counter values. Call once
// immediately before entering the host loop.
func (clk *Clock) Align() {
	clk.snapshot.LastCycleCount = clk.CycleSource()
	clk.snapshot.LastCounter = clk.WallClock()
	clk.snapshot.WorkCounter = clk.snapshot.LastCounter
	clk.snapshot.LoopCounter = 0
}

// Snapshot returns the timing state as of the most recent Tick().
func (clk *Clock) Snapshot() Snapshot {
	return clk.snapshot
}

// Tick reads both counters and updates the derived telemetry figures. The
// returned Snapshot is a copy and can be published without further locking.
func (clk *Clock) Tick() Snapshot {
	cur := clk.CycleSource()

	// the counter delta can be negative in practice. core migration and
	// virtualised counters have both been observed to produce it
	delta := int64(cur) - int64(clk.snapshot.LastCycleCount)
	if delta < 1 {
		delta = 1
	}

	clk.snapshot.CurrentCycleCount = cur
	clk.snapshot.CyclesElapsed = delta
	clk.snapshot.MegacyclesPerFrame = float64(delta) / 1e6
	clk.snapshot.LastCycleCount = cur

	clk.snapshot.WorkCounter = clk.WallClock()
	clk.snapshot.Elapsed = float64(clk.snapshot.WorkCounter-clk.snapshot.LastCounter) / float64(perfCountFrequency)
	clk.snapshot.MillisecondsPerFrame = 1000.0 * clk.snapshot.Elapsed
	clk.snapshot.FramesPerSecond = 1000.0 / clk.snapshot.MillisecondsPerFrame

	return clk.snapshot
}

// Pace stalls until the target frame duration has been reached, then starts
// the next frame. If the elapsed time is already at or over the target the
// stall is a no-op. Must be called after Tick().
func (clk *Clock) Pace() {
	target := clk.snapshot.TargetFrameDuration.Seconds()

	if !clk.DisablePacing && clk.snapshot.Elapsed < target {
		if clk.snapshot.SleepIsGranular {
			remaining := clk.snapshot.TargetFrameDuration - time.Duration(clk.snapshot.Elapsed*float64(time.Second))
			if remaining < 0 {
				remaining = 0
			}
			clk.Sleep(remaining)
		} else {
			// sleep cannot be trusted for durations this small. brute
			// force it
			for clk.snapshot.Elapsed < target {
				clk.Tick()
			}
		}
	}

	clk.snapshot.LastCounter = clk.WallClock()
	clk.snapshot.LoopCounter++
	if clk.snapshot.LoopCounter > 1000 {
		clk.snapshot.LoopCounter = 0
	}
}
