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

package userinput

import (
	"testing"

	"github.com/jetsetilly/rollnet/sim"
	"github.com/jetsetilly/rollnet/test"
)

func keys(evs []EventKeyboard) []string {
	k := make([]string, 0, len(evs))
	for _, ev := range evs {
		k = append(k, ev.Key)
	}
	return k
}

func TestDecode(t *testing.T) {
	k := keys(decode([]byte("\x1b[A\x1bOD zq\r")))
	test.DemandEquality(t, len(k), 6)
	test.ExpectEquality(t, k[0], KeyUp)
	test.ExpectEquality(t, k[1], KeyLeft)
	test.ExpectEquality(t, k[2], KeySpace)
	test.ExpectEquality(t, k[3], "Z")
	test.ExpectEquality(t, k[4], "Q")
	test.ExpectEquality(t, k[5], KeyEnter)

	// escape on its own and an unrecognised escape sequence
	k = keys(decode([]byte("\x1b")))
	test.DemandEquality(t, len(k), 1)
	test.ExpectEquality(t, k[0], KeyEscape)

	k = keys(decode([]byte("\x1b[Z")))
	test.DemandEquality(t, len(k), 3)
	test.ExpectEquality(t, k[0], KeyEscape)

	// control characters are ignored
	test.ExpectEquality(t, len(decode([]byte{0x01, 0x7f})), 0)
}

func TestControllers(t *testing.T) {
	events := make(chan Event, 10)
	c := NewControllers(events)
	c.HoldTicks = 2

	test.ExpectEquality(t, c.Input(), uint16(0))

	events <- EventKeyboard{Key: KeyRight}
	events <- EventKeyboard{Key: "Z"}
	test.ExpectEquality(t, c.Input(), sim.ButtonRight|sim.ButtonA)
	test.ExpectEquality(t, c.Input(), sim.ButtonRight|sim.ButtonA)
	test.ExpectEquality(t, c.Input(), uint16(0))

	// key repeat keeps the button held
	events <- EventKeyboard{Key: KeyUp}
	test.ExpectEquality(t, c.Input(), sim.ButtonUp)
	events <- EventKeyboard{Key: KeyUp}
	test.ExpectEquality(t, c.Input(), sim.ButtonUp)
	test.ExpectEquality(t, c.Input(), sim.ButtonUp)
	test.ExpectEquality(t, c.Input(), uint16(0))

	c.HandleUserInput(EventKeyboard{Key: "P"})
	test.ExpectFailure(t, c.LastKeyHandled)
	c.HandleUserInput(EventKeyboard{Key: "X"})
	test.ExpectSuccess(t, c.LastKeyHandled)

	test.ExpectFailure(t, c.Quit)
	events <- EventKeyboard{Key: "Q"}
	test.ExpectEquality(t, c.Input(), sim.ButtonB)
	test.ExpectSuccess(t, c.Quit)
}

func TestControllersPoll(t *testing.T) {
	events := make(chan Event, 10)
	c := NewControllers(events)
	c.HoldTicks = 2

	// a quit key is seen before Input() is ever called
	events <- EventKeyboard{Key: KeyEscape}
	c.Poll()
	test.ExpectSuccess(t, c.Quit)
	test.ExpectEquality(t, len(events), 0)

	// polling does not use up held buttons
	events <- EventKeyboard{Key: KeyLeft}
	c.Poll()
	c.Poll()
	test.ExpectEquality(t, c.Input(), sim.ButtonLeft)
	test.ExpectEquality(t, c.Input(), sim.ButtonLeft)
	test.ExpectEquality(t, c.Input(), uint16(0))

	// a controller without an event channel can be polled
	c = NewControllers(nil)
	c.Poll()
	test.ExpectFailure(t, c.Quit)
}
