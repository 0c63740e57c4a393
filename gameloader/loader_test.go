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

package gameloader_test

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"testing"
	"time"

	"github.com/circuitmage/magehost/gameloader"
	"github.com/circuitmage/magehost/simstate"
	"github.com/circuitmage/magehost/statebus"
	"github.com/circuitmage/magehost/test"
	"github.com/circuitmage/magehost/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

type fakeResolver struct {
	syms map[string]plugin.Symbol
}

func (r *fakeResolver) Lookup(name string) (plugin.Symbol, error) {
	if s, ok := r.syms[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no symbol %s", name)
}

// completeResolver returns a resolver with well formed entry points.
func completeResolver() *fakeResolver {
	return &fakeResolver{
		syms: map[string]plugin.Symbol{
			gameloader.SymbolInit: func(_ *statebus.State) bool {
				return true
			},
			gameloader.SymbolUpdateAndRender: func(_ *sdl.Renderer, _ *statebus.State, _ *statebus.Input) bool {
				return true
			},
			gameloader.SymbolDecideInput: func(_ sdl.Event) userinput.Event {
				return userinput.Event{}
			},
		},
	}
}

// newTestLoader creates a loader over a real artifact file in a temporary
// directory, with an opener that records the paths it was asked to map.
func newTestLoader(t *testing.T) (*gameloader.Loader, string, *[]string) {
	t.Helper()

	source := filepath.Join(t.TempDir(), "game.so")
	err := os.WriteFile(source, []byte("generation one"), 0644)
	test.DemandSuccess(t, err)

	opened := &[]string{}
	ld := gameloader.NewLoader(source)
	ld.Open = func(path string) (gameloader.Resolver, error) {
		*opened = append(*opened, path)
		return completeResolver(), nil
	}

	return ld, source, opened
}

// touch rewrites the artifact with a modification time strictly after any
// previous write. filesystem timestamp granularity makes simply rewriting
// the file unreliable in a fast test.
func touch(t *testing.T, path string, content string, after time.Time) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0644)
	test.DemandSuccess(t, err)
	err = os.Chtimes(path, after.Add(time.Second), after.Add(time.Second))
	test.DemandSuccess(t, err)
}

func TestInitialLoad(t *testing.T) {
	ld, source, opened := newTestLoader(t)

	test.ExpectEquality(t, ld.Active() == nil, true)
	test.DemandSuccess(t, ld.Load())

	mod := ld.Active()
	test.DemandEquality(t, mod == nil, false)
	test.ExpectEquality(t, mod.Init == nil, false)
	test.ExpectEquality(t, mod.UpdateAndRender == nil, false)
	test.ExpectEquality(t, mod.DecideInput == nil, false)

	// the artifact itself is never opened, only the shadow copy
	test.DemandEquality(t, len(*opened), 1)
	test.ExpectEquality(t, (*opened)[0] == source, false)
	test.ExpectEquality(t, (*opened)[0], mod.ShadowPath)

	// the shadow copy is a faithful copy
	b, err := os.ReadFile(mod.ShadowPath)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "generation one")
}

func TestMissingSymbolIsFatal(t *testing.T) {
	ld, _, _ := newTestLoader(t)
	ld.Open = func(_ string) (gameloader.Resolver, error) {
		r := completeResolver()
		delete(r.syms, gameloader.SymbolDecideInput)
		return r, nil
	}

	test.ExpectFailure(t, ld.Load())
	test.ExpectEquality(t, ld.Active() == nil, true)
}

func TestWrongSignatureIsFatal(t *testing.T) {
	ld, _, _ := newTestLoader(t)
	ld.Open = func(_ string) (gameloader.Resolver, error) {
		r := completeResolver()
		r.syms[gameloader.SymbolInit] = func() bool { return true }
		return r, nil
	}

	test.ExpectFailure(t, ld.Load())
}

func TestNoSwapWithoutChange(t *testing.T) {
	ld, _, opened := newTestLoader(t)
	test.DemandSuccess(t, ld.Load())
	before := ld.Active()

	for i := 0; i < 3; i++ {
		swapped, err := ld.Check()
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, swapped, false)
	}

	test.ExpectEquality(t, ld.Active(), before)
	test.ExpectEquality(t, len(*opened), 1)
}

func TestSwapOnNewerArtifact(t *testing.T) {
	ld, source, opened := newTestLoader(t)
	test.DemandSuccess(t, ld.Load())
	before := ld.Active()

	touch(t, source, "generation two", before.SourceModTime)

	swapped, err := ld.Check()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, swapped, true)

	after := ld.Active()
	test.ExpectEquality(t, after == before, false)
	test.ExpectEquality(t, after.ShadowPath == before.ShadowPath, false)
	test.DemandEquality(t, len(*opened), 2)

	b, err := os.ReadFile(after.ShadowPath)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "generation two")

	// exactly one swap per rebuild
	swapped, err = ld.Check()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, swapped, false)
}

func TestFailedReloadKeepsActiveModule(t *testing.T) {
	ld, source, _ := newTestLoader(t)
	test.DemandSuccess(t, ld.Load())
	before := ld.Active()

	// the rebuilt artifact is broken on the first attempt
	fail := true
	ld.Open = func(_ string) (gameloader.Resolver, error) {
		if fail {
			return nil, fmt.Errorf("malformed object")
		}
		return completeResolver(), nil
	}

	touch(t, source, "generation two", before.SourceModTime)

	swapped, err := ld.Check()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, swapped, false)
	test.ExpectEquality(t, ld.Active(), before)

	// the failure is retried on the next poll without another rebuild
	fail = false
	swapped, err = ld.Check()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, swapped, true)
	test.ExpectEquality(t, ld.Active() == before, false)
}

func TestInitOncePerProcess(t *testing.T) {
	ld, source, _ := newTestLoader(t)

	calls := 0
	ld.Open = func(_ string) (gameloader.Resolver, error) {
		r := completeResolver()
		r.syms[gameloader.SymbolInit] = func(_ *statebus.State) bool {
			calls++
			return true
		}
		return r, nil
	}

	bus := statebus.NewBus()

	// nothing to run before the first load
	test.ExpectFailure(t, ld.Init(bus.State))
	test.ExpectEquality(t, calls, 0)

	test.DemandSuccess(t, ld.Load())
	test.DemandSuccess(t, ld.Init(bus.State))
	test.ExpectEquality(t, calls, 1)

	// a second call is a no-op
	test.DemandSuccess(t, ld.Init(bus.State))
	test.ExpectEquality(t, calls, 1)

	// a swapped-in generation never runs its own init. the state it finds
	// on the bus is the state the previous generation left there
	touch(t, source, "generation two", ld.Active().SourceModTime)
	swapped, err := ld.Check()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, swapped, true)

	test.DemandSuccess(t, ld.Init(bus.State))
	test.ExpectEquality(t, calls, 1)
}

func TestFailedInitIsRetriable(t *testing.T) {
	ld, _, _ := newTestLoader(t)

	ok := false
	ld.Open = func(_ string) (gameloader.Resolver, error) {
		r := completeResolver()
		r.syms[gameloader.SymbolInit] = func(_ *statebus.State) bool {
			return ok
		}
		return r, nil
	}

	bus := statebus.NewBus()
	test.DemandSuccess(t, ld.Load())
	test.ExpectFailure(t, ld.Init(bus.State))

	// a failed init does not count as the one init
	ok = true
	test.ExpectSuccess(t, ld.Init(bus.State))
}

func TestStateSurvivesSwap(t *testing.T) {
	ld, source, _ := newTestLoader(t)
	test.DemandSuccess(t, ld.Load())

	bus := statebus.NewBus()
	bus.State.With(func(st *simstate.State) {
		st.Entities = append(st.Entities, simstate.Entity{ID: 7, Label: "wisp"})
	})
	before := bus.State.Snapshot()

	touch(t, source, "generation two", ld.Active().SourceModTime)
	swapped, err := ld.Check()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, swapped, true)

	after := bus.State.Snapshot()
	test.DemandEquality(t, len(after.Entities), 1)
	test.ExpectEquality(t, after.Entities[0], before.Entities[0])
}
