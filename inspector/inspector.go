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

package inspector

import (
	"fmt"
	"runtime"
	"time"

	"github.com/circuitmage/magehost/curated"
	"github.com/circuitmage/magehost/logger"
	"github.com/circuitmage/magehost/statebus"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

const windowTitle = "Circuit Mage Inspector"

// how often the inspector redraws. numbers do not need more
const refreshInterval = 50 * time.Millisecond

// how many log entries the log tail shows
const logTailLength = 8

// Inspector is a running inspector thread. Create with Launch() and stop
// with Close().
type Inspector struct {
	bus  *statebus.Bus
	quit chan struct{}
	done chan struct{}
}

// Launch starts the inspector on its own OS thread. Failure to open the
// window is logged, not returned; the simulation does not need the
// inspector to run.
func Launch(bus *statebus.Bus) *Inspector {
	ins := &Inspector{
		bus:  bus,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go ins.run()
	return ins
}

// Close stops the inspector and blocks until its thread has wound down.
func (ins *Inspector) Close() {
	close(ins.quit)
	<-ins.done
}

func (ins *Inspector) run() {
	defer close(ins.done)

	// the window, the GL context and the imgui context all live and die on
	// this thread
	runtime.LockOSThread()

	plt, err := newPlatform()
	if err != nil {
		logger.Logf("inspector", "%v", err)
		return
	}
	defer plt.destroy()

	ctx := imgui.CreateContext(nil)
	defer ctx.Destroy()

	io := imgui.CurrentIO()
	io.SetIniFilename("")

	rnd := newRenderer()
	err = rnd.setup(io)
	if err != nil {
		logger.Logf("inspector", "%v", err)
		return
	}
	defer rnd.destroy()

	tick := time.NewTicker(refreshInterval)
	defer tick.Stop()

	last := time.Now()
	for {
		select {
		case <-ins.quit:
			return
		case <-tick.C:
		}

		now := time.Now()
		io.SetDeltaTime(float32(now.Sub(last).Seconds()))
		last = now

		winw, winh := plt.window.GetSize()
		io.SetDisplaySize(imgui.Vec2{X: float32(winw), Y: float32(winh)})

		imgui.NewFrame()
		ins.draw()
		imgui.Render()

		rnd.preRender()
		rnd.render(float32(winw), float32(winh), plt.framebufferSize(), imgui.RenderedDrawData())
		plt.window.GLSwap()
	}
}

// draw builds the widgets for one frame from a snapshot of the simulation
// state.
func (ins *Inspector) draw() {
	st := ins.bus.State.Snapshot()

	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.BeginV("Simulation", nil, imgui.WindowFlagsAlwaysAutoResize)

	imgui.Text(st.Timing.String())
	imgui.Text(fmt.Sprintf("%d entities, %d draw order entries", len(st.Entities), st.ZMap.Len()))
	imgui.Text(fmt.Sprintf("window %dx%d", st.Window.Width, st.Window.Height))

	if st.Recording {
		imgui.Text("RECORDING")
	}

	for _, txt := range st.Texts {
		if txt != "" {
			imgui.Text(txt)
		}
	}

	imgui.Separator()

	logger.BorrowLog(func(entries []logger.Entry) {
		n := len(entries) - logTailLength
		if n < 0 {
			n = 0
		}
		for _, e := range entries[n:] {
			imgui.Text(e.String())
		}
	})

	imgui.End()
}

type platform struct {
	window    *sdl.Window
	glContext sdl.GLContext
}

// newPlatform opens the inspector window with a 2.1 GL context. SDL itself
// has already been initialised by the host.
func newPlatform() (*platform, error) {
	err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	plt := &platform{}

	plt.window, err = sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		480, 360,
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	plt.glContext, err = plt.window.GLCreateContext()
	if err != nil {
		_ = plt.window.Destroy()
		return nil, curated.Errorf("sdl: %v", err)
	}

	err = plt.window.GLMakeCurrent(plt.glContext)
	if err != nil {
		plt.destroy()
		return nil, curated.Errorf("sdl: %v", err)
	}

	// the inspector is not paced by the frame clock so let vsync throttle
	// the buffer swap
	_ = sdl.GLSetSwapInterval(1)

	return plt, nil
}

// framebufferSize returns the dimension of the framebuffer. differs from
// the window size on high-dpi displays.
func (plt *platform) framebufferSize() [2]float32 {
	w, h := plt.window.GLGetDrawableSize()
	return [2]float32{float32(w), float32(h)}
}

func (plt *platform) destroy() {
	if plt.glContext != nil {
		sdl.GLDeleteContext(plt.glContext)
	}
	if plt.window != nil {
		_ = plt.window.Destroy()
	}
}
