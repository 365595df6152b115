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

package sim

// List of input bits. The input for a player is a bitwise combination of these
// values.
const (
	ButtonLeft uint16 = 1 << iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
)

// ButtonStart is the input bit for the start button.
const ButtonStart uint16 = 0x0100

// inputs for the current frame and for the previous frame.
type inputs struct {
	current  [2]uint16
	previous [2]uint16
}

// pressed returns the buttons that have been pressed this frame but which
// were not pressed in the previous frame.
func (in inputs) pressed(player int) uint16 {
	return in.current[player] &^ in.previous[player]
}

// held returns the buttons that are pressed this frame.
func (in inputs) held(player int) uint16 {
	return in.current[player]
}
