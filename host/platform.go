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
	"runtime"

	"github.com/circuitmage/magehost/config"
	"github.com/circuitmage/magehost/curated"
	"github.com/circuitmage/magehost/logger"
	"github.com/veandco/go-sdl2/sdl"
)

const windowTitle = "Circuit Mage"

// window opacity depending on focus. losing focus while the build tool and
// editor are in the foreground is the normal state of affairs, so the
// window fades rather than getting in the way.
const (
	opacityFocused   = 1.0
	opacityUnfocused = 0.25
)

type platform struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	mode     sdl.DisplayMode
}

// newPlatform is the preferred method of initialisation for the platform
// type.
func newPlatform(cfg *config.Config) (*platform, error) {
	// the SDL package calls LockOSThread() but we call it here too. it
	// can't hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_TIMER)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	plt := &platform{}

	flags := uint32(sdl.WINDOW_ALLOW_HIGHDPI | sdl.WINDOW_ALWAYS_ON_TOP)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	plt.window, err = sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		cfg.Width, cfg.Height, flags)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	// no vsync. the frame clock paces the loop and vsync would fight it
	plt.renderer, err = sdl.CreateRenderer(plt.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	plt.mode, err = plt.window.GetDisplayMode()
	if err != nil {
		// not fatal. the frame clock falls back to a sensible refresh rate
		logger.Logf("sdl", "display mode: %v", err)
	}

	return plt, nil
}

func (plt *platform) setOpacity(opacity float32) {
	err := plt.window.SetWindowOpacity(opacity)
	if err != nil {
		// not every window manager supports opacity
		logger.Logf("sdl", "opacity: %v", err)
	}
}

func (plt *platform) destroy() {
	if plt.renderer != nil {
		_ = plt.renderer.Destroy()
	}
	if plt.window != nil {
		_ = plt.window.Destroy()
	}
	sdl.Quit()
}
