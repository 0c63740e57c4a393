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

//go:build !amd64

package frameclock

import "time"

var cycleEpoch = time.Now()

// hardwareCycles on architectures without a readable cycle counter derives
// pseudo-cycles from the monotonic clock at a rate of one cycle per
// nanosecond. the megacycles-per-frame telemetry figure then reads as
// milliseconds-per-frame.
func hardwareCycles() uint64 {
	return uint64(time.Since(cycleEpoch))
}
