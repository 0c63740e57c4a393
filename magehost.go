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

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/circuitmage/magehost/config"
	"github.com/circuitmage/magehost/curated"
	"github.com/circuitmage/magehost/host"
	"github.com/circuitmage/magehost/inspector"
	"github.com/circuitmage/magehost/logger"
	"github.com/circuitmage/magehost/statebus"
	"github.com/circuitmage/magehost/statsview"
	"github.com/circuitmage/magehost/version"
	"github.com/veandco/go-sdl2/sdl"
)

// #mainthread
func main() {
	os.Exit(launch(os.Args[1:]))
}

// launch parses the mode from the command line and dispatches. SDL windows
// must be created and serviced on the main thread so everything below runs
// on the goroutine main() started on.
func launch(args []string) int {
	mode := "RUN"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode = strings.ToUpper(args[0])
		args = args[1:]
	}

	var err error

	switch mode {
	case "RUN":
		err = run(args)

	case "REPLAY":
		err = replay(args)

	case "VERSION":
		v, rev, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, rev)

	default:
		fmt.Printf("* unknown mode: %s\n", mode)
		fmt.Println("available modes are RUN, REPLAY and VERSION. RUN is the default")
		return 10
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", strings.ToLower(mode), err)
		return 20
	}

	return 0
}

// options shared by the RUN and REPLAY modes.
type options struct {
	conf       config.Config
	configFile string
	log        bool
	stats      bool
}

func (opts *options) flagSet(mode string) *flag.FlagSet {
	flgs := flag.NewFlagSet(mode, flag.ContinueOnError)
	flgs.StringVar(&opts.configFile, "config", opts.configFile, "configuration file")
	flgs.BoolVar(&opts.log, "log", opts.log, "echo debugging log to stdout")
	flgs.BoolVar(&opts.stats, "statsview", opts.stats, "run stats server")
	opts.conf.AddFlags(flgs)
	return flgs
}

// parseArgs applies the command line over the configuration file. parsed
// twice: the first pass discovers the configuration file, the second
// reasserts the command line over what the file loaded.
func parseArgs(mode string, args []string) (*options, error) {
	opts := &options{conf: config.NewConfig()}

	err := opts.flagSet(mode).Parse(args)
	if err != nil {
		return nil, err
	}

	path := opts.configFile
	explicit := path != ""
	if !explicit {
		path = config.DefaultFile
	}

	opts.conf, err = config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	err = opts.flagSet(mode).Parse(args)
	if err != nil {
		return nil, err
	}

	return opts, nil
}

// prepare the ambient services and the host itself. common to the RUN and
// REPLAY modes.
func prepare(opts *options) (*host.Host, *statebus.Bus, error) {
	if opts.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if opts.stats {
		if !statsview.Available() {
			return nil, nil, curated.Errorf("no statsview in this build (rebuild with the statsview build tag)")
		}
		statsview.Launch(os.Stdout)
	}

	bus := statebus.NewBus()

	hst, err := host.NewHost(&opts.conf, bus)
	if err != nil {
		return nil, nil, err
	}

	// ctrl-c behaves like closing the window
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Println("\r")
		_, _ = sdl.PushEvent(&sdl.QuitEvent{Type: sdl.QUIT})
	}()

	return hst, bus, nil
}

func run(args []string) error {
	opts, err := parseArgs("run", args)
	if err != nil {
		return err
	}

	hst, bus, err := prepare(opts)
	if err != nil {
		return err
	}

	hst.AttachInspector(inspector.Launch(bus))
	return hst.Run()
}

func replay(args []string) error {
	opts, err := parseArgs("replay", args)
	if err != nil {
		return err
	}

	hst, bus, err := prepare(opts)
	if err != nil {
		return err
	}

	hst.AttachInspector(inspector.Launch(bus))
	return hst.Replay(opts.conf.Session)
}
