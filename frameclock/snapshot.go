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
	"fmt"
	"time"
)

// Snapshot is the timing state of the most recent tick. A copy is published
// into the shared simulation state every frame so the inspector and the
// game module can display it.
type Snapshot struct {
	// fixed at startup
	PerfCountFrequency  int64         `yaml:"perf_count_frequency"`
	TargetFrameDuration time.Duration `yaml:"target_frame_duration"`
	SleepIsGranular     bool          `yaml:"sleep_is_granular"`

	// wall counter at the start of the current frame (monotonic
	// nanoseconds)
	LastCounter int64 `yaml:"last_counter"`

	// wall counter at the most recent tick
	WorkCounter int64 `yaml:"work_counter"`

	// seconds between LastCounter and WorkCounter
	Elapsed float64 `yaml:"elapsed"`

	// cycle counter readings. CyclesElapsed is always at least one
	CurrentCycleCount uint64 `yaml:"current_cycle_count"`
	LastCycleCount    uint64 `yaml:"last_cycle_count"`
	CyclesElapsed     int64  `yaml:"cycles_elapsed"`

	// derived figures for telemetry
	MillisecondsPerFrame float64 `yaml:"milliseconds_per_frame"`
	FramesPerSecond      float64 `yaml:"frames_per_second"`
	MegacyclesPerFrame   float64 `yaml:"megacycles_per_frame"`

	// wraps to zero after one thousand. used for decimation of expensive
	// telemetry work, never as an absolute frame count
	LoopCounter int `yaml:"loop_counter"`
}

func (sn Snapshot) String() string {
	return fmt.Sprintf("%.2fms/f, %.1ff/s, %.2fmc/f",
		sn.MillisecondsPerFrame, sn.FramesPerSecond, sn.MegacyclesPerFrame)
}
