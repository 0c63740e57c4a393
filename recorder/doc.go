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

// Package recorder builds a replayable, timestamped timeline of user input.
//
// While recording is active every decoded input event is stored twice: once
// in the live input log (which always receives every event, recording or
// not) and once in the recorded timeline, tagged with the number of
// milliseconds since recording began. The timeline plus a snapshot of the
// simulation state taken at recording start forms a Session; replaying a
// Session's events with the same relative timing against its snapshot
// reproduces the original run, provided the game module's update is a pure
// function of state, input and elapsed time. Determinism is the module's
// responsibility; the recorder's job is only to preserve exact ordering and
// exact relative timing.
//
// Sessions serialize to YAML and carry a digest of the parts of the
// simulation state that the game module owns. The digest guards against a
// session file being replayed against a corrupted or hand-edited snapshot.
package recorder
