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

// Package inspector is the auxiliary window that watches the simulation
// from the side: frame timing, entity count, recording indicator and the
// tail of the central log. It runs on its own OS thread with its own SDL
// window and OpenGL 2.1 context, refreshing a handful of times a second.
//
// The inspector is strictly display-only. The SDL event queue is
// process-global and belongs to the host thread, so the inspector window
// receives no input of its own; it reads the simulation state through
// snapshots and writes nothing. It closes when the host closes it.
package inspector
