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

// Package statsview serves live runtime statistics over HTTP, wrapping the
// go-echarts statsview server. The server costs something to run so it is
// only compiled in when the statsview build constraint is given; the
// default build gets the no-op version and Available() says which of the
// two the binary has.
//
// The intended use is watching what a module reload does to the heap and
// the goroutine count while the frame loop keeps running. Charts are at
// localhost:12900/debug/statsview and the standard pprof endpoints at
// localhost:12900/debug/pprof/.
package statsview
