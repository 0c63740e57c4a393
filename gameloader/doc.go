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

// Package gameloader hosts the game module: an independently compiled Go
// plugin that is rebuilt while the host is running and swapped in without
// restarting the process or losing simulation state.
//
// The module exports three entry points, looked up by name on every load:
//
//	GameInit            func(*statebus.State) bool
//	GameUpdateAndRender func(*sdl.Renderer, *statebus.State, *statebus.Input) bool
//	GameDecideInput     func(sdl.Event) userinput.Event
//
// GameInit is called exactly once per process, against the first loaded
// module, and is never re-invoked on reload. State continuity across
// reloads follows from the state living in the statebus, outside the
// module.
//
// The artifact on disk is never loaded directly. It is copied to a shadow
// path first, so the build tool can rewrite the original without fighting
// the host for the file. The shadow path carries a generation number
// because the Go runtime refuses to open a plugin path it has seen before;
// every reload is a fresh generation. The runtime also has no dlclose, so
// a replaced module's mapping stays in memory until the process exits; the
// loader simply drops its references, which is what makes the swap atomic
// from the caller's point of view.
//
// Swaps happen only between frames. Loader methods must only ever be
// called from the host thread and never while a call into the module is in
// flight.
package gameloader
