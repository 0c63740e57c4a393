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

// Package config defines the startup configuration for the host. Values are
// read from an optional YAML file and can be overridden on the command line.
package config

import (
	"flag"
	"os"

	"github.com/circuitmage/magehost/curated"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked for when none is specified
// on the command line.
const DefaultFile = "magehost.yaml"

// Config is the parsed startup configuration of the host process.
type Config struct {
	// disable frame pacing. useful when stepping through the game module
	// with a debugger
	Slow bool `yaml:"slow"`

	// window options
	Fullscreen bool  `yaml:"fullscreen"`
	Width      int32 `yaml:"width"`
	Height     int32 `yaml:"height"`

	// memory budget hints for the game module, logged at startup. sizes in
	// megabytes
	PermanentMemorySize int `yaml:"permanent_memory_size"`
	TransientMemorySize int `yaml:"transient_memory_size"`

	// path to the game module artifact. the file is never loaded directly,
	// see the gameloader package
	GameDLL string `yaml:"game_dll"`

	// where recorded sessions are written when recording stops
	Session string `yaml:"session"`

	// if not empty, a DOT graph of the terminal simulation state is written
	// to this path on shutdown
	DumpState string `yaml:"dump_state"`
}

// NewConfig returns a Config with every field at its default value.
func NewConfig() Config {
	return Config{
		Width:               1024,
		Height:              768,
		PermanentMemorySize: 64,
		TransientMemorySize: 128,
		GameDLL:             "game.so",
		Session:             "session.yaml",
	}
}

// Load reads the YAML file at path over the top of the default
// configuration. A missing file is not an error unless the path was
// explicitly requested.
func Load(path string, explicit bool) (Config, error) {
	conf := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return conf, curated.Errorf("config: %v", err)
		}
		return conf, nil
	}

	err = yaml.Unmarshal(data, &conf)
	if err != nil {
		return conf, curated.Errorf("config: %s: %v", path, err)
	}

	return conf, nil
}

// AddFlags registers a command line flag for every configuration option.
// Parsing the flag set mutates the Config in place, overriding anything
// loaded from file.
func (conf *Config) AddFlags(flgs *flag.FlagSet) {
	flgs.BoolVar(&conf.Slow, "slow", conf.Slow, "disable frame pacing (debugging aid)")
	flgs.BoolVar(&conf.Fullscreen, "fullscreen", conf.Fullscreen, "run fullscreen")
	flgs.Func("width", "window width in pixels", intFlag(&conf.Width))
	flgs.Func("height", "window height in pixels", intFlag(&conf.Height))
	flgs.IntVar(&conf.PermanentMemorySize, "permanent_memory_size", conf.PermanentMemorySize, "permanent memory hint (megabytes)")
	flgs.IntVar(&conf.TransientMemorySize, "transient_memory_size", conf.TransientMemorySize, "transient memory hint (megabytes)")
	flgs.StringVar(&conf.GameDLL, "game_dll", conf.GameDLL, "path to the game module artifact")
	flgs.StringVar(&conf.Session, "session", conf.Session, "path recorded sessions are written to")
	flgs.StringVar(&conf.DumpState, "dumpstate", conf.DumpState, "write DOT graph of terminal state to path on shutdown")
}

// PermanentMemoryBytes returns the permanent memory hint in bytes.
func (conf Config) PermanentMemoryBytes() int {
	return megabytes(conf.PermanentMemorySize)
}

// TransientMemoryBytes returns the transient memory hint in bytes.
func (conf Config) TransientMemoryBytes() int {
	return megabytes(conf.TransientMemorySize)
}
