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

package gameloader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"plugin"
	"strings"
	"time"

	"github.com/circuitmage/magehost/curated"
	"github.com/circuitmage/magehost/logger"
	"github.com/circuitmage/magehost/statebus"
	"github.com/circuitmage/magehost/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

// names of the entry points every game module must export.
const (
	SymbolInit            = "GameInit"
	SymbolUpdateAndRender = "GameUpdateAndRender"
	SymbolDecideInput     = "GameDecideInput"
)

// InitFunc prepares the initial simulation state. It is called exactly once
// per process, never on reload.
type InitFunc func(*statebus.State) bool

// UpdateAndRenderFunc advances the simulation by one frame and draws it.
// Returning false asks the host to quit.
type UpdateAndRenderFunc func(*sdl.Renderer, *statebus.State, *statebus.Input) bool

// DecideInputFunc translates a raw platform event into the module's own
// input vocabulary.
type DecideInputFunc func(sdl.Event) userinput.Event

// ActiveModule is the currently loaded generation of the game module.
type ActiveModule struct {
	Init            InitFunc
	UpdateAndRender UpdateAndRenderFunc
	DecideInput     DecideInputFunc

	// when this generation was mapped into the process
	LoadedAt time.Time

	// modification time of the source artifact this generation was copied
	// from
	SourceModTime time.Time

	// the shadow copy this generation was opened from
	ShadowPath string
}

// Resolver is the part of plugin.Plugin the loader uses. Tests substitute
// their own implementation through the Open field of the Loader type.
type Resolver interface {
	Lookup(name string) (plugin.Symbol, error)
}

// Loader watches the game module artifact on disk and swaps in freshly
// built generations as they appear. Not safe for concurrent use; the host
// thread owns it.
type Loader struct {
	// Open maps a shadow copy into the process. The default implementation
	// uses the plugin package.
	Open func(path string) (Resolver, error)

	source     string
	generation int
	active     *ActiveModule
	initDone   bool

	// modification time of the source artifact at the last successful load.
	// deliberately not updated on a failed reload so the next Check() tries
	// again.
	modTime time.Time
}

// NewLoader is the preferred method of initialisation for the Loader type.
// The source argument is the path to the game module artifact, as produced
// by the build tool.
func NewLoader(source string) *Loader {
	return &Loader{
		Open: func(path string) (Resolver, error) {
			return plugin.Open(path)
		},
		source: source,
	}
}

// Active returns the currently loaded module. Nil until Load() has
// succeeded.
func (ld *Loader) Active() *ActiveModule {
	return ld.active
}

// Init runs the game module's one-time setup against the shared simulation
// state. The setup runs at most once for the lifetime of the process:
// repeated calls are no-ops and a swapped-in generation never runs it
// again. The state is the only thing that survives a swap.
func (ld *Loader) Init(st *statebus.State) error {
	if ld.initDone {
		return nil
	}
	if ld.active == nil {
		return curated.Errorf("gameloader: no module loaded")
	}
	if !ld.active.Init(st) {
		return curated.Errorf("gameloader: module init failed")
	}
	ld.initDone = true
	return nil
}

// Load maps the first generation of the game module. An error from Load()
// is fatal; there is nothing to fall back on.
func (ld *Loader) Load() error {
	info, err := os.Stat(ld.source)
	if err != nil {
		return curated.Errorf("gameloader: %v", err)
	}

	mod, err := ld.load()
	if err != nil {
		return err
	}

	mod.SourceModTime = info.ModTime()
	ld.active = mod
	ld.modTime = info.ModTime()

	logger.Logf("gameloader", "loaded %s", mod.ShadowPath)
	return nil
}

// Check polls the source artifact and swaps in a new generation if the
// build tool has rewritten it since the last successful load. The returned
// boolean indicates that a swap took place.
//
// A failed reload is not fatal: the active module stays in place, the
// error is returned for logging, and the next Check() tries again. A
// half-written artifact during a rebuild resolves itself this way.
func (ld *Loader) Check() (bool, error) {
	info, err := os.Stat(ld.source)
	if err != nil {
		// the build tool may have the artifact mid-rewrite
		return false, curated.Errorf("gameloader: %v", err)
	}

	if !info.ModTime().After(ld.modTime) {
		return false, nil
	}

	mod, err := ld.load()
	if err != nil {
		return false, err
	}

	mod.SourceModTime = info.ModTime()
	prev := ld.active.ShadowPath
	ld.active = mod
	ld.modTime = info.ModTime()

	// the previous generation's mapping lives on but its shadow copy is no
	// longer needed. best effort
	_ = os.Remove(prev)

	logger.Logf("gameloader", "swapped in %s", mod.ShadowPath)
	return true, nil
}

// load copies the source artifact to the next generation's shadow path and
// resolves the entry points.
func (ld *Loader) load() (*ActiveModule, error) {
	ld.generation++
	shadow := ld.shadowPath()

	err := copyFile(ld.source, shadow)
	if err != nil {
		return nil, curated.Errorf("gameloader: %v", err)
	}

	res, err := ld.Open(shadow)
	if err != nil {
		return nil, curated.Errorf("gameloader: %v", err)
	}

	mod, err := resolve(res)
	if err != nil {
		return nil, err
	}

	mod.LoadedAt = time.Now()
	mod.ShadowPath = shadow
	return mod, nil
}

// shadowPath for the current generation. "game.so" becomes
// "game.hot-0001.so" and so on.
func (ld *Loader) shadowPath() string {
	ext := filepath.Ext(ld.source)
	base := strings.TrimSuffix(ld.source, ext)
	return fmt.Sprintf("%s.hot-%04d%s", base, ld.generation, ext)
}

func resolve(res Resolver) (*ActiveModule, error) {
	mod := &ActiveModule{}

	sym, err := res.Lookup(SymbolInit)
	if err != nil {
		return nil, curated.Errorf("gameloader: %v", err)
	}
	f, ok := sym.(func(*statebus.State) bool)
	if !ok {
		return nil, curated.Errorf("gameloader: %s has the wrong signature", SymbolInit)
	}
	mod.Init = f

	sym, err = res.Lookup(SymbolUpdateAndRender)
	if err != nil {
		return nil, curated.Errorf("gameloader: %v", err)
	}
	g, ok := sym.(func(*sdl.Renderer, *statebus.State, *statebus.Input) bool)
	if !ok {
		return nil, curated.Errorf("gameloader: %s has the wrong signature", SymbolUpdateAndRender)
	}
	mod.UpdateAndRender = g

	sym, err = res.Lookup(SymbolDecideInput)
	if err != nil {
		return nil, curated.Errorf("gameloader: %v", err)
	}
	h, ok := sym.(func(sdl.Event) userinput.Event)
	if !ok {
		return nil, curated.Errorf("gameloader: %s has the wrong signature", SymbolDecideInput)
	}
	mod.DecideInput = h

	return mod, nil
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
