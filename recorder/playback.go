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
	"fmt"
	"time"

	"github.com/circuitmage/magehost/simstate"
	"github.com/circuitmage/magehost/userinput"
)

// Playback replays the input timeline of a previously recorded session.
// The replay driver polls Pending() with the elapsed time since replay
// start; entries fall due in recorded order and each is returned exactly
// once.
type Playback struct {
	session Session
	seq     int
}

// NewPlayback is the preferred method of initialisation for the Playback
// type.
func NewPlayback(session Session) *Playback {
	return &Playback{session: session}
}

// LoadPlayback reads a session file and prepares it for replay.
func LoadPlayback(path string) (*Playback, error) {
	s, err := ReadSessionFile(path)
	if err != nil {
		return nil, err
	}
	return NewPlayback(s), nil
}

func (plb Playback) String() string {
	return fmt.Sprintf("%d/%d", plb.seq, len(plb.session.Entries))
}

// InitialState returns a copy of the simulation state the session started
// from. Install it with statebus.State.Replace() before the first frame of
// the replay.
func (plb *Playback) InitialState() simstate.State {
	return plb.session.State.Snapshot()
}

// Pending returns the events that have fallen due at the given elapsed time
// and have not been returned before. The slice is in recorded order.
func (plb *Playback) Pending(elapsed time.Duration) []userinput.Event {
	var due []userinput.Event
	for plb.seq < len(plb.session.Entries) {
		e := plb.session.Entries[plb.seq]
		if e.Millis > elapsed.Milliseconds() {
			break
		}
		due = append(due, e.Event)
		plb.seq++
	}
	return due
}

// EndOfSession returns true once every entry has been returned by
// Pending().
func (plb *Playback) EndOfSession() bool {
	return plb.seq >= len(plb.session.Entries)
}
