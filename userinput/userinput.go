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

// Package userinput defines the decoded input event type shared between the
// host and the game module.
//
// The host never decodes raw platform events itself. Decoding is the game
// module's job, through its decide-input entry point; that way the meaning
// of a key belongs to the game and not to the host. The Event type is the
// result of that decode: a closed value type suitable for the input log and
// for serialization into a recorded session.
package userinput

import "fmt"

// KeyMod identifies the modifier keys held at the time of an event.
type KeyMod uint8

// List of valid KeyMod values. Values combine as a bitmask.
const (
	KeyModNone  KeyMod = 0x00
	KeyModShift KeyMod = 0x01
	KeyModCtrl  KeyMod = 0x02
	KeyModAlt   KeyMod = 0x04
)

// Event is one decoded input occurrence. Immutable once created.
type Event struct {
	// key identity as reported by the game module's decoder. for keyboard
	// events this is the key name ("A", "Space", etc.)
	Key string `yaml:"key"`

	// true for press, false for release
	Down bool `yaml:"down"`

	Mod KeyMod `yaml:"mod,omitempty"`
}

func (ev Event) String() string {
	d := "up"
	if ev.Down {
		d = "down"
	}
	if ev.Mod == KeyModNone {
		return fmt.Sprintf("%s %s", ev.Key, d)
	}
	return fmt.Sprintf("%s %s (mod %03b)", ev.Key, d, ev.Mod)
}
