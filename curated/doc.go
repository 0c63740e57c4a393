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

// Package curated is a helper package for the plain Go language error type.
// Curated errors carry the formatting pattern they were created with, which
// means the pattern can double as an identifier for the error.
//
// Errors are created with the Errorf() function. Like fmt.Errorf() it takes
// a formatting pattern and placeholder values:
//
//	e := curated.Errorf("gameloader: %v", err)
//
// Unlike fmt.Errorf() the pattern is kept alongside the values and the error
// message is not formatted until it is needed. The Is() function compares an
// error against a pattern:
//
//	if curated.Is(e, "gameloader: %v") {
//		...
//	}
//
// The Has() function is similar but will look for the pattern anywhere in
// the chain of wrapped values.
//
// When formatted, messages are normalised such that adjacent duplicate parts
// of the message chain are removed. This keeps deeply wrapped errors
// readable when they are finally printed for the user.
package curated
