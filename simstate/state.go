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

package simstate

import (
	"github.com/circuitmage/magehost/frameclock"
)

// NumTexts is the number of diagnostic text slots in the State. Slot 0 is
// for the game module, slot 1 for the host's timing telemetry.
const NumTexts = 2

// TelemetryText is the index of the text slot the host writes its decimated
// timing diagnostic into.
const TelemetryText = 1

// Vector is a position or velocity in world space.
type Vector struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Entity is one simulated object. The host never interprets entities; they
// belong to the game module. Entity zero's Z position is sampled for the
// telemetry line, that is all.
type Entity struct {
	ID       int    `yaml:"id"`
	Label    string `yaml:"label,omitempty"`
	Position Vector `yaml:"position"`
	Velocity Vector `yaml:"velocity"`
}

// Window records the host window geometry for the game module's benefit.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// State is the world state shared by the host thread, the inspector thread
// and the game module. Created once at startup and never destroyed; the
// game module mutates it through its entry points and the host writes
// timing telemetry into it.
type State struct {
	// diagnostic text slots for display. empty string means unset
	Texts []string `yaml:"texts"`

	Entities []Entity `yaml:"entities"`

	// draw order: sort key to index into Entities
	ZMap ZMap `yaml:"zmap"`

	// copy of the most recent timing snapshot, published by the host once
	// per frame
	Timing frameclock.Snapshot `yaml:"timing"`

	Window Window `yaml:"window"`

	// set and cleared by the game module to ask the host to record input.
	// the host reconciles this flag with the recorder at the end of every
	// frame
	Recording bool `yaml:"recording"`
}

// NewState is the preferred method of initialisation for the State type.
func NewState() *State {
	return &State{
		Texts:    make([]string, NumTexts),
		Entities: make([]Entity, 0),
	}
}

// Snapshot returns a deep copy of the State. The copy shares no memory with
// the original and can be used without holding the originating critical
// section.
func (st *State) Snapshot() State {
	sn := *st

	sn.Texts = make([]string, len(st.Texts))
	copy(sn.Texts, st.Texts)

	sn.Entities = make([]Entity, len(st.Entities))
	copy(sn.Entities, st.Entities)

	sn.ZMap = st.ZMap.copy()

	return sn
}
