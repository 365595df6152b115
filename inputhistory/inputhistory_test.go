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

package inputhistory_test

import (
	"testing"

	"github.com/jetsetilly/rollnet/inputhistory"
	"github.com/jetsetilly/rollnet/test"
)

func TestRecordAndRecall(t *testing.T) {
	h := inputhistory.NewHistory(2, 0)
	test.ExpectEquality(t, h.Capacity(), inputhistory.DefaultCapacity)

	h.Record(0, 0, 0x0010)
	h.Record(1, 0, 0x0020)
	h.Record(0, 5, 0x0400)

	test.ExpectEquality(t, h.Recall(0, 0), uint16(0x0010))
	test.ExpectEquality(t, h.Recall(1, 0), uint16(0x0020))
	test.ExpectEquality(t, h.Recall(0, 5), uint16(0x0400))

	// never recorded
	test.ExpectEquality(t, h.Recall(1, 5), uint16(0))
	test.ExpectEquality(t, h.Recall(0, 6), uint16(0))

	// unknown players
	h.Record(2, 0, 0xffff)
	test.ExpectEquality(t, h.Recall(2, 0), uint16(0))
	test.ExpectEquality(t, h.Recall(-1, 0), uint16(0))
}

func TestNegativeFrames(t *testing.T) {
	h := inputhistory.NewHistory(2, 10)

	h.Record(0, -1, 0x1234)
	test.ExpectEquality(t, h.Recall(0, -1), uint16(0))

	// a negative frame must not land in the slot of a positive frame
	test.ExpectEquality(t, h.Recall(0, 9), uint16(0))
}

func TestOverwrite(t *testing.T) {
	const capacity = 10
	h := inputhistory.NewHistory(2, capacity)

	h.Record(0, 3, 0x0001)
	test.ExpectEquality(t, h.Recall(0, 3), uint16(0x0001))

	// a later frame in the same slot overwrites the earlier frame
	h.Record(0, 3+capacity, 0x0002)
	test.ExpectEquality(t, h.Recall(0, 3), uint16(0))
	test.ExpectEquality(t, h.Recall(0, 3+capacity), uint16(0x0002))

	// the other player is unaffected
	h.Record(1, 3, 0x0003)
	test.ExpectEquality(t, h.Recall(1, 3), uint16(0x0003))
	test.ExpectEquality(t, h.Recall(0, 3+capacity), uint16(0x0002))

	// recording the same frame again replaces the value
	h.Record(1, 3, 0x0004)
	test.ExpectEquality(t, h.Recall(1, 3), uint16(0x0004))
}

func TestLongRun(t *testing.T) {
	const capacity = 16
	h := inputhistory.NewHistory(1, capacity)

	for f := 0; f < 1000; f++ {
		h.Record(0, f, uint16(f*7))
		test.ExpectEquality(t, h.Recall(0, f), uint16(f*7), f)
		test.ExpectEquality(t, h.Recall(0, f-1), uint16((f-1)*7*min(f, 1)), f)
		if f >= capacity {
			test.ExpectEquality(t, h.Recall(0, f-capacity), uint16(0), f)
		}
	}
}

func TestReset(t *testing.T) {
	h := inputhistory.NewHistory(2, 0)
	h.Record(0, 0, 1)
	h.Record(1, 1, 2)
	h.Reset()
	test.ExpectEquality(t, h.Recall(0, 0), uint16(0))
	test.ExpectEquality(t, h.Recall(1, 1), uint16(0))
}
