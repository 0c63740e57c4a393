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

// Package version records the version number and vcs revision of the build.
package version

import (
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "MageHost"

// set by the makefile at build time. if empty the project was built some
// other way, with "go build" or "go run" for example.
var number string

// revision contains the vcs revision, suffixed with "+dirty" if the source
// had been modified but not committed at build time.
var revision string

// Version returns the version string and the vcs revision. The boolean
// indicates whether this is a numbered release build.
func Version() (string, string, bool) {
	v := number
	if v == "" {
		v = "unreleased"
	}
	return v, revision, number != ""
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		revision = "no vcs information"
		return
	}

	var vcsRevision string
	var vcsModified bool

	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			vcsRevision = v.Value
		case "vcs.modified":
			vcsModified = v.Value == "true"
		}
	}

	if vcsRevision == "" {
		revision = "no vcs information"
		return
	}

	revision = vcsRevision
	if vcsModified {
		revision += "+dirty"
	}
}
