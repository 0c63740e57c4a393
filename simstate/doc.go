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

// Package simstate defines the simulation state shared between the host,
// the game module and the inspector.
//
// The types in this package are plain values with no locking of their own.
// Concurrent access is always mediated by the statebus package; nothing
// outside a statebus critical section should ever hold a reference into a
// live State.
//
// State survives a hot-reload of the game module precisely because it is
// defined here, outside the module.
package simstate
