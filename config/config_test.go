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

package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/circuitmage/magehost/config"
	"github.com/circuitmage/magehost/test"
)

func TestDefaults(t *testing.T) {
	conf := config.NewConfig()
	test.ExpectEquality(t, conf.Width, 1024)
	test.ExpectEquality(t, conf.Height, 768)
	test.ExpectEquality(t, conf.PermanentMemorySize, 64)
	test.ExpectEquality(t, conf.TransientMemorySize, 128)
	test.ExpectEquality(t, conf.Slow, false)
	test.ExpectEquality(t, conf.GameDLL, "game.so")
}

func TestMissingFile(t *testing.T) {
	// a missing default file is not an error
	conf, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.yaml"), false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, conf.Width, 1024)

	// a missing explicitly requested file is
	_, err = config.Load(filepath.Join(t.TempDir(), "no-such-file.yaml"), true)
	test.ExpectFailure(t, err)
}

func TestFileAndFlagOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "magehost.yaml")
	err := os.WriteFile(p, []byte("width: 640\nheight: 480\ngame_dll: ../game/game.so\n"), 0o644)
	test.DemandSuccess(t, err)

	conf, err := config.Load(p, true)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, conf.Width, 640)
	test.ExpectEquality(t, conf.Height, 480)
	test.ExpectEquality(t, conf.GameDLL, "../game/game.so")

	// flags take precedence over the file
	flgs := flag.NewFlagSet("run", flag.ContinueOnError)
	conf.AddFlags(flgs)
	err = flgs.Parse([]string{"-width", "800", "-slow"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, conf.Width, 800)
	test.ExpectEquality(t, conf.Height, 480)
	test.ExpectEquality(t, conf.Slow, true)
}

func TestMemoryUnits(t *testing.T) {
	conf := config.NewConfig()
	test.ExpectEquality(t, conf.PermanentMemoryBytes(), 64*1024*1024)
	test.ExpectEquality(t, conf.TransientMemoryBytes(), 128*1024*1024)
}
