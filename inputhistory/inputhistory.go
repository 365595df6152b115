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

package inputhistory

// DefaultCapacity is the number of frames recorded for each player when no
// other capacity is specified. It is larger than the rollback window.
const DefaultCapacity = 120

// the frame value of a slot that has never been recorded
const unrecorded = -1

type entry struct {
	frame int
	input uint16
}

// History records the input value for each player for recent frames.
type History struct {
	players [][]entry
}

// NewHistory is the preferred method of initialisation for the History type. A
// capacity value of less than one will be replaced with DefaultCapacity.
func NewHistory(numPlayers int, capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	h := &History{
		players: make([][]entry, numPlayers),
	}
	for p := range h.players {
		h.players[p] = make([]entry, capacity)
	}
	h.Reset()

	return h
}

// Reset forgets all recorded input.
func (h *History) Reset() {
	for p := range h.players {
		for i := range h.players[p] {
			h.players[p][i] = entry{frame: unrecorded}
		}
	}
}

// Capacity returns the number of frames that can be recorded for each player.
func (h *History) Capacity() int {
	if len(h.players) == 0 {
		return 0
	}
	return len(h.players[0])
}

// Record the input for the player on the specified frame. Negative frame
// numbers and unknown players are ignored.
func (h *History) Record(player int, frame int, input uint16) {
	if frame < 0 || player < 0 || player >= len(h.players) {
		return
	}
	ring := h.players[player]
	ring[frame%len(ring)] = entry{frame: frame, input: input}
}

// Recall the input for the player on the specified frame. Returns zero if the
// frame has not been recorded for the player.
func (h *History) Recall(player int, frame int) uint16 {
	if frame < 0 || player < 0 || player >= len(h.players) {
		return 0
	}
	ring := h.players[player]
	e := ring[frame%len(ring)]
	if e.frame != frame {
		return 0
	}
	return e.input
}
