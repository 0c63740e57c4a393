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

// Package host runs the frame loop that everything else hangs off: it owns
// the SDL window and renderer, pumps the event queue, calls into the game
// module once per frame, polls the module loader for freshly built
// artifacts, reconciles the recording flag with the input recorder and
// paces the loop with the frame clock.
//
// The SDL event queue is process-global, so the host thread is the only
// thread that may pump it. Anything else that wants to show a window (the
// inspector) must get by without events of its own.
//
// The frame order is fixed: pump, clear, update-and-render, present,
// reload check, tick, recording reconcile, telemetry, pace. The timing
// snapshot published into the simulation state always describes the
// previous frame; the current one is not finished being measured.
package host
