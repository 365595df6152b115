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

// Event describes an event that might occur on the keyboard.
type Event interface{}

// EventKeyboard is sent when a key is pressed.
type EventKeyboard struct {
	Key string
}

// EventQuit is sent when the input device is no longer available.
type EventQuit struct{}

// list of key names produced by decode(). printable keys are named by the
// upper-case version of the character.
const (
	KeyUp     = "Up"
	KeyDown   = "Down"
	KeyLeft   = "Left"
	KeyRight  = "Right"
	KeySpace  = "Space"
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// decode turns the bytes read from the terminal into a series of keyboard
// events. cursor keys are recognised in both their normal and application
// forms.
func decode(b []byte) []EventKeyboard {
	var evs []EventKeyboard

	for i := 0; i < len(b); i++ {
		switch b[i] {
		case 0x1b:
			if i+2 < len(b) && (b[i+1] == '[' || b[i+1] == 'O') {
				var k string
				switch b[i+2] {
				case 'A':
					k = KeyUp
				case 'B':
					k = KeyDown
				case 'C':
					k = KeyRight
				case 'D':
					k = KeyLeft
				}
				if k != "" {
					evs = append(evs, EventKeyboard{Key: k})
					i += 2
					continue
				}
			}
			evs = append(evs, EventKeyboard{Key: KeyEscape})
		case ' ':
			evs = append(evs, EventKeyboard{Key: KeySpace})
		case '\r', '\n':
			evs = append(evs, EventKeyboard{Key: KeyEnter})
		default:
			c := b[i]
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			if c > ' ' && c < 0x7f {
				evs = append(evs, EventKeyboard{Key: string(rune(c))})
			}
		}
	}

	return evs
}
