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
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/circuitmage/magehost/config"
	"github.com/circuitmage/magehost/curated"
	"github.com/circuitmage/magehost/frameclock"
	"github.com/circuitmage/magehost/gameloader"
	"github.com/circuitmage/magehost/logger"
	"github.com/circuitmage/magehost/recorder"
	"github.com/circuitmage/magehost/simstate"
	"github.com/circuitmage/magehost/statebus"
	"github.com/veandco/go-sdl2/sdl"
)

// how often the telemetry line in the simulation state is refreshed. the
// figures are of the previous frame either way
const telemetryFrameInterval = 10

// Closer is the part of an auxiliary window the host needs at shutdown.
type Closer interface {
	Close()
}

// Host owns the frame loop. Create with NewHost() and call Run() or
// Replay() from the main goroutine; the SDL window is bound to the OS
// thread the host was created on.
type Host struct {
	cfg    *config.Config
	bus    *statebus.Bus
	clock  *frameclock.Clock
	loader *gameloader.Loader
	rec    *recorder.Recorder
	plt    *platform
	ui     Closer

	running bool
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost(cfg *config.Config, bus *statebus.Bus) (*Host, error) {
	hst := &Host{
		cfg:    cfg,
		bus:    bus,
		loader: gameloader.NewLoader(cfg.GameDLL),
		rec:    recorder.NewRecorder(bus),
	}

	var err error

	hst.plt, err = newPlatform(cfg)
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	hst.clock = frameclock.NewClock(int(hst.plt.mode.RefreshRate))
	hst.clock.Calibrate()
	hst.clock.DisablePacing = cfg.Slow

	logger.Logf("host", "frame target: %s", hst.clock.Snapshot().TargetFrameDuration)
	logger.Logf("host", "memory budget: %d bytes permanent, %d bytes transient",
		cfg.PermanentMemoryBytes(), cfg.TransientMemoryBytes())

	hst.bus.State.With(func(st *simstate.State) {
		st.Window = simstate.Window{Width: int(cfg.Width), Height: int(cfg.Height)}
	})

	return hst, nil
}

// AttachInspector hands the host an auxiliary window to join at shutdown.
// The window reads the simulation state through the bus so it must be
// stopped before the platform layer is torn down.
func (hst *Host) AttachInspector(ui Closer) {
	hst.ui = ui
}

// Run loads the game module and runs the frame loop until the module asks
// to quit or the window is closed.
func (hst *Host) Run() error {
	defer hst.shutdown()

	err := hst.loader.Load()
	if err != nil {
		return curated.Errorf("host: %v", err)
	}

	err = hst.loader.Init(hst.bus.State)
	if err != nil {
		return curated.Errorf("host: %v", err)
	}

	hst.loop(nil)
	return nil
}

// Replay loads the game module and drives the frame loop from a recorded
// session instead of the keyboard. The simulation state is replaced with
// the session's starting snapshot; the terminal digest is logged so that
// two runs of the same session can be compared.
func (hst *Host) Replay(path string) error {
	defer hst.shutdown()

	plb, err := recorder.LoadPlayback(path)
	if err != nil {
		return curated.Errorf("host: %v", err)
	}

	err = hst.loader.Load()
	if err != nil {
		return curated.Errorf("host: %v", err)
	}

	err = hst.loader.Init(hst.bus.State)
	if err != nil {
		return curated.Errorf("host: %v", err)
	}

	hst.bus.State.Replace(plb.InitialState())
	logger.Logf("host", "replaying %s (%s)", path, plb)

	hst.loop(plb)

	digest, err := recorder.StateDigest(hst.bus.State.Snapshot())
	if err != nil {
		return curated.Errorf("host: %v", err)
	}
	logger.Logf("host", "replay done: %s, terminal digest %s", plb, digest)

	return nil
}

// loop runs frames until stopped. a non-nil playback supplies the input
// and suppresses the keyboard and the recorder.
func (hst *Host) loop(plb *recorder.Playback) {
	hst.clock.Align()

	// the first snapshot is published before the first frame so the game
	// module and the inspector never see a zero TargetFrameDuration
	snap := hst.clock.Snapshot()
	hst.bus.State.With(func(st *simstate.State) {
		st.Timing = snap
	})

	hst.running = true

	start := time.Now()
	for hst.running {
		hst.pump(plb != nil)

		if plb != nil {
			for _, ev := range plb.Pending(time.Since(start)) {
				hst.bus.Input.Append(ev)
			}
		}

		if !hst.running {
			break
		}

		hst.frame(plb == nil)

		if plb != nil && plb.EndOfSession() {
			hst.running = false
		}
	}
}

// pump drains the process-global SDL event queue. only ever called from
// the host thread.
func (hst *Host) pump(replaying bool) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			hst.running = false

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				hst.plt.setOpacity(opacityFocused)
			case sdl.WINDOWEVENT_FOCUS_LOST:
				hst.plt.setOpacity(opacityUnfocused)
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				hst.bus.State.With(func(st *simstate.State) {
					st.Window = simstate.Window{Width: int(ev.Data1), Height: int(ev.Data2)}
				})
			}

		case *sdl.KeyboardEvent:
			if replaying {
				continue
			}
			in := hst.loader.Active().DecideInput(ev)
			if in.Key != "" {
				hst.rec.OnInput(in)
			}
		}
	}
}

// frame runs one frame of the simulation and paces the loop.
func (hst *Host) frame(recording bool) {
	_ = hst.plt.renderer.SetDrawColor(0, 0, 0, 255)
	_ = hst.plt.renderer.Clear()

	if !hst.loader.Active().UpdateAndRender(hst.plt.renderer, hst.bus.State, hst.bus.Input) {
		hst.running = false
	}

	hst.plt.renderer.Present()

	// the swap point. never during a frame
	_, err := hst.loader.Check()
	if err != nil {
		logger.Logf("host", "reload: %v", err)
	}

	hst.clock.Tick()

	if recording {
		hst.reconcileRecording()
	}

	snap := hst.clock.Snapshot()
	hst.bus.State.With(func(st *simstate.State) {
		st.Timing = snap
		if snap.LoopCounter%telemetryFrameInterval == 0 {
			var z float32
			if len(st.Entities) > 0 {
				z = st.Entities[0].Position.Z
			}
			st.Texts[simstate.TelemetryText] = telemetryText(snap, z)
		}
	})

	hst.clock.Pace()
}

// reconcileRecording compares the recording flag in the simulation state,
// which belongs to the game module, with what the recorder is actually
// doing. The flag being newly set starts a recording; newly cleared stops
// it and writes the session file.
func (hst *Host) reconcileRecording() {
	var want bool
	hst.bus.State.With(func(st *simstate.State) {
		want = st.Recording
	})

	switch {
	case want && !hst.rec.IsRecording():
		hst.rec.Start()
		logger.Log("host", "recording started")

	case !want && hst.rec.IsRecording():
		hst.rec.Stop()
		s, err := hst.rec.ExportSession()
		if err == nil {
			err = s.WriteFile(hst.cfg.Session)
		}
		if err != nil {
			logger.Logf("host", "recording: %v", err)
		} else {
			logger.Logf("host", "session written to %s", hst.cfg.Session)
		}
	}
}

// shutdown winds the host down in a strict order: the auxiliary window is
// joined first, while the platform layer it draws against is still alive,
// and the platform layer is torn down last.
func (hst *Host) shutdown() {
	if hst.ui != nil {
		hst.ui.Close()
		hst.ui = nil
	}

	// an in-flight recording is worth keeping
	if hst.rec.IsRecording() {
		hst.rec.Stop()
		s, err := hst.rec.ExportSession()
		if err == nil {
			err = s.WriteFile(hst.cfg.Session)
		}
		if err != nil {
			logger.Logf("host", "recording: %v", err)
		}
	}

	if hst.cfg.DumpState != "" {
		err := dumpState(hst.cfg.DumpState, hst.bus.State.Snapshot())
		if err != nil {
			logger.Logf("host", "dumpstate: %v", err)
		}
	}

	hst.plt.destroy()
}

// telemetryText formats the previous frame's timing figures and the lead
// entity's height for display by the game module.
func telemetryText(snap frameclock.Snapshot, z float32) string {
	return fmt.Sprintf("%s, z=%.2f", snap, z)
}

// dumpState writes a graphviz rendering of the terminal simulation state.
// a debugging aid for when a session file alone is not enough.
func dumpState(path string, st simstate.State) error {
	b := &bytes.Buffer{}
	memviz.Map(b, &st)
	return os.WriteFile(path, b.Bytes(), 0644)
}
