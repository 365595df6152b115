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
	"github.com/jetsetilly/rollnet/sim"
)

// DefaultHoldTicks is the number of ticks a button is held for after a key
// press.
const DefaultHoldTicks = 8

// Controllers keeps track of the button state of the local player.
type Controllers struct {
	events <-chan Event

	// number of ticks remaining for each button
	hold map[uint16]int

	// ticks to hold a button for after a key press
	HoldTicks int

	// whether or not the last event was consumed as a button press
	LastKeyHandled bool

	// is true if a quit event has been seen
	Quit bool
}

// NewControllers is the preferred method of initialisation for the
// Controllers type. Events will be read from the channel by Input().
func NewControllers(events <-chan Event) *Controllers {
	return &Controllers{
		events:    events,
		hold:      make(map[uint16]int),
		HoldTicks: DefaultHoldTicks,
	}
}

// the buttons pressed by each key
var keyButtons = map[string]uint16{
	KeyUp:    sim.ButtonUp,
	KeyDown:  sim.ButtonDown,
	KeyLeft:  sim.ButtonLeft,
	KeyRight: sim.ButtonRight,
	KeySpace: sim.ButtonA,
	"Z":      sim.ButtonA,
	"X":      sim.ButtonB,
	KeyEnter: sim.ButtonStart,

	// alternative direction keys
	"W": sim.ButtonUp,
	"S": sim.ButtonDown,
	"A": sim.ButtonLeft,
	"D": sim.ButtonRight,
}

// HandleUserInput updates the controller state with the event.
func (c *Controllers) HandleUserInput(ev Event) {
	c.LastKeyHandled = false

	switch ev := ev.(type) {
	case EventQuit:
		c.Quit = true
	case EventKeyboard:
		if ev.Key == "Q" || ev.Key == KeyEscape {
			c.Quit = true
			return
		}
		if b, ok := keyButtons[ev.Key]; ok {
			c.hold[b] = c.HoldTicks
			c.LastKeyHandled = true
		}
	}
}

// Poll handles any pending events without changing how long buttons are
// held for. Poll can be called when Input() is not being called, for example
// to notice a quit event while no session is running.
func (c *Controllers) Poll() {
	if c.events == nil {
		return
	}
	for {
		select {
		case ev := <-c.events:
			c.HandleUserInput(ev)
		default:
			return
		}
	}
}

// Input handles any pending events and returns the buttons currently held.
// Input should be called once per tick.
func (c *Controllers) Input() uint16 {
	c.Poll()

	var input uint16
	for b, n := range c.hold {
		if n <= 0 {
			continue
		}
		input |= b
		c.hold[b] = n - 1
	}

	return input
}
