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

package logger_test

import (
	"strings"
	"testing"

	"github.com/circuitmage/magehost/logger"
	"github.com/circuitmage/magehost/test"
)

func TestWrite(t *testing.T) {
	logger.Clear()

	b := &strings.Builder{}
	logger.Write(b)
	test.ExpectEquality(t, b.String(), "")

	logger.Log("test", "this is a test")
	logger.Write(b)
	test.ExpectEquality(t, b.String(), "test: this is a test\n")
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	logger.Log("test", "same message")
	logger.Log("test", "same message")
	logger.Log("test", "same message")

	b := &strings.Builder{}
	logger.Write(b)
	test.ExpectEquality(t, b.String(), "test: same message (repeat x3)\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "one")
	logger.Log("test", "two")
	logger.Log("test", "three")

	b := &strings.Builder{}
	logger.Tail(b, 2)
	test.ExpectEquality(t, b.String(), "test: two\ntest: three\n")

	// tail longer than the log is capped
	b.Reset()
	logger.Tail(b, 100)
	test.ExpectEquality(t, b.String(), "test: one\ntest: two\ntest: three\n")
}

func TestBorrow(t *testing.T) {
	logger.Clear()

	logger.Logf("test", "formatted %d", 10)
	logger.BorrowLog(func(entries []logger.Entry) {
		test.DemandEquality(t, len(entries), 1)
		test.ExpectEquality(t, entries[0].Tag, "test")
		test.ExpectEquality(t, entries[0].Detail, "formatted 10")
	})
}
