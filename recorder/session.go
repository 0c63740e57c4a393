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

package recorder

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"

	"github.com/circuitmage/magehost/curated"
	"github.com/circuitmage/magehost/simstate"
	"gopkg.in/yaml.v3"
)

// Session is the serializable bundle of a recording: the simulation state
// as it was when recording started and the timeline of input events that
// followed.
type Session struct {
	State   simstate.State `yaml:"state"`
	Digest  string         `yaml:"digest"`
	Entries []Entry        `yaml:"entries"`
}

// StateDigest returns a hex digest of the parts of the simulation state the
// game module owns: entities, draw order and window geometry. Timing
// telemetry and diagnostic text are deliberately excluded; they depend on
// wall-clock measurement and would differ between a recording and an
// otherwise identical replay.
func StateDigest(st simstate.State) (string, error) {
	d := struct {
		Entities []simstate.Entity `yaml:"entities"`
		ZMap     simstate.ZMap     `yaml:"zmap"`
		Window   simstate.Window   `yaml:"window"`
	}{st.Entities, st.ZMap, st.Window}

	b, err := yaml.Marshal(&d)
	if err != nil {
		return "", curated.Errorf("recorder: %v", err)
	}

	return fmt.Sprintf("%x", sha1.Sum(b)), nil
}

// Write the session as YAML.
func (s Session) Write(output io.Writer) error {
	enc := yaml.NewEncoder(output)
	err := enc.Encode(s)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	return enc.Close()
}

// WriteFile writes the session to the named file, creating or truncating
// it.
func (s Session) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	defer f.Close()
	return s.Write(f)
}

// ReadSession decodes a session and validates its digest against the state
// snapshot it carries.
func ReadSession(input io.Reader) (Session, error) {
	var s Session

	dec := yaml.NewDecoder(input)
	err := dec.Decode(&s)
	if err != nil {
		return Session{}, curated.Errorf("recorder: %v", err)
	}

	digest, err := StateDigest(s.State)
	if err != nil {
		return Session{}, err
	}
	if digest != s.Digest {
		return Session{}, curated.Errorf("recorder: session digest mismatch")
	}

	return s, nil
}

// ReadSessionFile reads a session from the named file.
func ReadSessionFile(path string) (Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return Session{}, curated.Errorf("recorder: %v", err)
	}
	defer f.Close()
	return ReadSession(f)
}
