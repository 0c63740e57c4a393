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

package host

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/circuitmage/magehost/config"
	"github.com/circuitmage/magehost/frameclock"
	"github.com/circuitmage/magehost/recorder"
	"github.com/circuitmage/magehost/simstate"
	"github.com/circuitmage/magehost/statebus"
	"github.com/circuitmage/magehost/test"
)

type closerFunc func()

func (f closerFunc) Close() { f() }

func TestShutdownJoinsInspector(t *testing.T) {
	bus := statebus.NewBus()
	hst := &Host{
		cfg: &config.Config{},
		bus: bus,
		rec: recorder.NewRecorder(bus),
		plt: &platform{},
	}

	// the inspector must be joined while the platform layer is still alive.
	// shutdown() blocks on Close() before it gets anywhere near teardown
	closed := 0
	hst.AttachInspector(closerFunc(func() { closed++ }))

	hst.shutdown()
	test.ExpectEquality(t, closed, 1)

	// winding down twice does not join twice
	hst.shutdown()
	test.ExpectEquality(t, closed, 1)
}

func TestShutdownWithoutInspector(t *testing.T) {
	bus := statebus.NewBus()
	hst := &Host{
		cfg: &config.Config{},
		bus: bus,
		rec: recorder.NewRecorder(bus),
		plt: &platform{},
	}
	hst.shutdown()
}

func TestTelemetryText(t *testing.T) {
	snap := frameclock.Snapshot{
		MillisecondsPerFrame: 8.333,
		FramesPerSecond:      120.0,
		MegacyclesPerFrame:   30.5,
	}
	test.ExpectEquality(t, telemetryText(snap, 1.5), "8.33ms/f, 120.0f/s, 30.50mc/f, z=1.50")
	test.ExpectEquality(t, telemetryText(frameclock.Snapshot{}, 0), "0.00ms/f, 0.0f/s, 0.00mc/f, z=0.00")
}

func TestDumpState(t *testing.T) {
	st := simstate.NewState()
	st.Entities = append(st.Entities, simstate.Entity{ID: 1, Label: "wisp"})

	path := filepath.Join(t.TempDir(), "state.dot")
	test.DemandSuccess(t, dumpState(path, *st))

	b, err := os.ReadFile(path)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(b), "digraph"))
}
