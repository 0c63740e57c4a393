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

// Package statebus distributes the shared simulation state between the host
// thread, the inspector thread and the game module.
//
// The Bus holds three independently guarded resources: the simulation
// state, the live input log, and the recording marker. Access is always
// through a scoped acquisition; the With() functions take a closure and
// guarantee the lock is released on every exit path. Acquisitions are
// strictly serialised, readers included, so no observer ever sees a
// half-updated state.
//
// Critical sections must be kept small: read or update a handful of fields
// and get out. Never acquire two bus resources from inside one closure;
// cross-resource coordination reads one resource, releases it, then
// acquires the next. This rule is what makes lock-ordering deadlocks
// impossible.
//
// A Bus is constructed once at startup and passed explicitly to everything
// that needs it, including across the game module boundary. There is no
// package-level instance.
package statebus
