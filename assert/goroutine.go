// This file is part of Rollnet.
//
// Rollnet is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rollnet is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rollnet.  If not, see <https://www.gnu.org/licenses/>.

// Package assert contains checks that are only useful during development and
// testing.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine. It is undoubtedly useful for but it should only ever be used for
// debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// SameGoRoutine remembers the goroutine of the first call and reports whether
// later calls are made from that same goroutine. The zero value is ready to
// use.
type SameGoRoutine struct {
	id uint64
}

// Check returns false if the calling goroutine differs from the goroutine of
// the first call to Check.
func (s *SameGoRoutine) Check() bool {
	id := GetGoRoutineID()
	if s.id == 0 {
		s.id = id
		return true
	}
	return s.id == id
}

// Reset forgets the remembered goroutine.
func (s *SameGoRoutine) Reset() {
	s.id = 0
}
