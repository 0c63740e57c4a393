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

// Package frameclock measures the work done in one iteration of the host
// loop and stalls the loop so that each iteration takes close to a target
// duration.
//
// The target duration is derived from the display refresh rate at startup.
// We target twice the refresh rate, treating it as a budget ceiling for the
// game module's update; rendering at a multiple of the refresh rate keeps
// presentation smooth even when a frame overruns.
//
// Measurement combines two counters: the monotonic wall clock, used for
// pacing decisions, and the CPU cycle counter, used for the
// megacycles-per-frame telemetry figure. The cycle counter can appear to
// move backwards (core migration, virtualised TSC) so the cycle delta is
// clamped to a minimum of one.
//
// Pacing is two-tier. If the platform sleep primitive has been probed as
// having millisecond granularity the remaining budget is slept away;
// otherwise the clock busy-waits, re-ticking until the target is met.
package frameclock
