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

package config

import (
	"strconv"
)

const kilo = 1024

func kilobytes(v int) int {
	return v * kilo
}

func megabytes(v int) int {
	return kilobytes(v) * kilo
}

// intFlag adapts an int32 field for use with flag.FlagSet.Func().
func intFlag(target *int32) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return err
		}
		*target = int32(v)
		return nil
	}
}
