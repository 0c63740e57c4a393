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

package statebus

import (
	"sync"
	"time"

	"github.com/circuitmage/magehost/simstate"
	"github.com/circuitmage/magehost/userinput"
)

// State is the guarded simulation state. The only way at the wrapped
// simstate.State is through the With() function.
type State struct {
	crit sync.Mutex
	st   *simstate.State
}

// With gives the provided function the critical section and access to the
// simulation state. The reference must not be retained after the function
// returns.
func (bus *State) With(f func(*simstate.State)) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	f(bus.st)
}

// Snapshot returns a deep copy of the simulation state, taken under the
// critical section.
func (bus *State) Snapshot() simstate.State {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.st.Snapshot()
}

// Replace installs a new simulation state. Used when restoring a recorded
// session for replay.
func (bus *State) Replace(st simstate.State) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	sn := st.Snapshot()
	bus.st = &sn
}

// Input is the guarded live input log. Events are appended in the order
// delivered by the platform event queue and the log is never truncated
// during a run.
type Input struct {
	crit sync.Mutex
	log  []userinput.Event
}

// Append an event to the input log.
func (bus *Input) Append(ev userinput.Event) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	bus.log = append(bus.log, ev)
}

// With gives the provided function the critical section and access to the
// input log. The slice must not be retained after the function returns.
func (bus *Input) With(f func([]userinput.Event)) {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	f(bus.log)
}

// Len returns the number of events in the log.
func (bus *Input) Len() int {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return len(bus.log)
}

// Marker is the guarded recording origin. While set, input events are
// timestamped relative to it.
type Marker struct {
	crit   sync.Mutex
	origin time.Time
	active bool
}

// Set the recording origin to the given instant.
func (mk *Marker) Set(origin time.Time) {
	mk.crit.Lock()
	defer mk.crit.Unlock()
	mk.origin = origin
	mk.active = true
}

// Clear the recording origin.
func (mk *Marker) Clear() {
	mk.crit.Lock()
	defer mk.crit.Unlock()
	mk.active = false
}

// Origin returns the recording origin and whether recording is active.
func (mk *Marker) Origin() (time.Time, bool) {
	mk.crit.Lock()
	defer mk.crit.Unlock()
	return mk.origin, mk.active
}

// Bus bundles the three guarded resources. The State and Input handles are
// what cross the game module boundary; the Marker stays on the host side.
type Bus struct {
	State  *State
	Input  *Input
	Marker *Marker
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{
		State:  &State{st: simstate.NewState()},
		Input:  &Input{log: make([]userinput.Event, 0)},
		Marker: &Marker{},
	}
}
