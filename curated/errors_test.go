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

package curated_test

import (
	"errors"
	"testing"

	"github.com/circuitmage/magehost/curated"
	"github.com/circuitmage/magehost/test"
)

func TestIdentification(t *testing.T) {
	e := curated.Errorf("test: %v", 10)

	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, "test: %v"))
	test.ExpectFailure(t, curated.Is(e, "wrong: %v"))

	// plain errors are not curated errors
	p := errors.New("plain")
	test.ExpectFailure(t, curated.IsAny(p))
	test.ExpectFailure(t, curated.Is(p, "plain"))
	test.ExpectFailure(t, curated.Has(p, "plain"))
}

func TestChaining(t *testing.T) {
	base := curated.Errorf("baseline: %v", 10)
	wrap := curated.Errorf("wrapped: %v", base)

	test.ExpectSuccess(t, curated.Has(wrap, "wrapped: %v"))
	test.ExpectSuccess(t, curated.Has(wrap, "baseline: %v"))
	test.ExpectFailure(t, curated.Is(wrap, "baseline: %v"))

	test.ExpectEquality(t, wrap.Error(), "wrapped: baseline: 10")
}

func TestNormalisation(t *testing.T) {
	// adjacent duplicate message parts are removed when formatting
	base := curated.Errorf("error: %v", "flibble")
	wrap := curated.Errorf("error: %v", base)
	test.ExpectEquality(t, wrap.Error(), "error: flibble")
}
