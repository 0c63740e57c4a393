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

package recorder

import (
	"time"

	"github.com/circuitmage/magehost/simstate"
	"github.com/circuitmage/magehost/statebus"
	"github.com/circuitmage/magehost/userinput"
)

// Entry pairs a decoded input event with its offset from the recording
// origin. Offsets within a session never decrease.
type Entry struct {
	Millis int64           `yaml:"ms"`
	Event  userinput.Event `yaml:"event"`
}

// Recorder appends decoded input events to the live input log and, while
// recording is active, to the recorded timeline. Owned by the host thread;
// the recording marker it shares through the bus is what the game module
// and inspector see.
type Recorder struct {
	// the time source. tests substitute a deterministic one
	Now func() time.Time

	bus     *statebus.Bus
	entries []Entry
	start   simstate.State

	// offsets are clamped so they never decrease, mirroring the cycle
	// counter treatment in the frameclock package
	lastMillis int64
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder(bus *statebus.Bus) *Recorder {
	return &Recorder{
		Now: time.Now,
		bus: bus,
	}
}

// Start recording. The current instant becomes the recording origin and a
// snapshot of the simulation state is taken as the session's starting
// point. Any previously recorded timeline is discarded: a recording is a
// self-contained run from its own origin and entries from an earlier origin
// could never be replayed meaningfully against the new snapshot.
func (rec *Recorder) Start() {
	rec.start = rec.bus.State.Snapshot()
	rec.entries = rec.entries[:0]
	rec.lastMillis = 0
	rec.bus.Marker.Set(rec.Now())
}

// Stop recording. The recorded timeline remains available for export.
func (rec *Recorder) Stop() {
	rec.bus.Marker.Clear()
}

// IsRecording returns true if a recording origin is set.
func (rec *Recorder) IsRecording() bool {
	_, active := rec.bus.Marker.Origin()
	return active
}

// OnInput passes a decoded input event to the recorder. The event is always
// appended to the live input log, whether recording or not. While recording
// is active it is also appended to the recorded timeline.
func (rec *Recorder) OnInput(ev userinput.Event) {
	rec.bus.Input.Append(ev)

	origin, active := rec.bus.Marker.Origin()
	if !active {
		return
	}

	ms := rec.Now().Sub(origin).Milliseconds()
	if ms < rec.lastMillis {
		ms = rec.lastMillis
	}
	rec.lastMillis = ms

	rec.entries = append(rec.entries, Entry{Millis: ms, Event: ev})
}

// ExportSession bundles the starting snapshot with the recorded timeline.
// Can be called during or after recording.
func (rec *Recorder) ExportSession() (Session, error) {
	digest, err := StateDigest(rec.start)
	if err != nil {
		return Session{}, err
	}

	entries := make([]Entry, len(rec.entries))
	copy(entries, rec.entries)

	return Session{
		State:   rec.start.Snapshot(),
		Digest:  digest,
		Entries: entries,
	}, nil
}
