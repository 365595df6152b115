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

package assert_test

import (
	"testing"

	"github.com/jetsetilly/rollnet/assert"
	"github.com/jetsetilly/rollnet/test"
)

func TestSameGoRoutine(t *testing.T) {
	var s assert.SameGoRoutine
	test.ExpectSuccess(t, s.Check())
	test.ExpectSuccess(t, s.Check())

	done := make(chan bool)
	go func() {
		done <- s.Check()
	}()
	test.ExpectFailure(t, <-done)

	s.Reset()
	test.ExpectSuccess(t, s.Check())
}
