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

package simstate

import (
	"sort"
)

// ZMap is the draw-order mapping from a z sort key to an entity index.
// Iteration with Each() visits keys in ascending order, which is the order
// entities should be painted in.
//
// The zero value is ready to use.
type ZMap struct {
	keys    []int
	entries map[int]int
}

// Set the entity index for a sort key, inserting or replacing as required.
func (z *ZMap) Set(key int, entity int) {
	if z.entries == nil {
		z.entries = make(map[int]int)
	}
	if _, ok := z.entries[key]; !ok {
		i := sort.SearchInts(z.keys, key)
		z.keys = append(z.keys, 0)
		copy(z.keys[i+1:], z.keys[i:])
		z.keys[i] = key
	}
	z.entries[key] = entity
}

// Get the entity index for a sort key.
func (z *ZMap) Get(key int) (int, bool) {
	v, ok := z.entries[key]
	return v, ok
}

// Delete the entry for a sort key. Deleting an absent key is a no-op.
func (z *ZMap) Delete(key int) {
	if _, ok := z.entries[key]; !ok {
		return
	}
	delete(z.entries, key)
	i := sort.SearchInts(z.keys, key)
	z.keys = append(z.keys[:i], z.keys[i+1:]...)
}

// Len returns the number of entries.
func (z *ZMap) Len() int {
	return len(z.entries)
}

// Each calls f for every entry in ascending key order.
func (z *ZMap) Each(f func(key int, entity int)) {
	for _, k := range z.keys {
		f(k, z.entries[k])
	}
}

func (z ZMap) copy() ZMap {
	c := ZMap{}
	if z.entries == nil {
		return c
	}
	c.keys = make([]int, len(z.keys))
	copy(c.keys, z.keys)
	c.entries = make(map[int]int, len(z.entries))
	for k, v := range z.entries {
		c.entries[k] = v
	}
	return c
}

// MarshalYAML implements the yaml.Marshaler interface. The map is encoded
// as a plain mapping of sort key to entity index.
func (z ZMap) MarshalYAML() (interface{}, error) {
	m := make(map[int]int, len(z.entries))
	for k, v := range z.entries {
		m[k] = v
	}
	return m, nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (z *ZMap) UnmarshalYAML(unmarshal func(interface{}) error) error {
	m := make(map[int]int)
	if err := unmarshal(&m); err != nil {
		return err
	}
	*z = ZMap{}
	for k, v := range m {
		z.Set(k, v)
	}
	return nil
}
