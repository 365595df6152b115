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

// List of game phases.
const (
	PhaseBoot int16 = iota
	PhaseAttract
	PhaseVersus
	PhaseSelect
	PhaseFight
	PhaseResult
)

// PhaseName returns the name of the phase.
func PhaseName(phase int16) string {
	switch phase {
	case PhaseBoot:
		return "boot"
	case PhaseAttract:
		return "attract"
	case PhaseVersus:
		return "versus"
	case PhaseSelect:
		return "select"
	case PhaseFight:
		return "fight"
	case PhaseResult:
		return "result"
	}
	return "unknown"
}

// the number of frames spent in each timed phase
const (
	bootFrames   = 30
	versusFrames = 20
	selectFrames = 600
	roundFrames  = 99 * 60
	resultFrames = 120
)

// the number of rounds a player must win to win the match
const winsNeeded = 2

// List of tasks in the task table.
const (
	TaskGame = iota
	TaskMenu
	TaskSaver
	TaskEffect
)

// List of task conditions.
const (
	TaskStopped int16 = iota
	TaskRunning
)

// bits in the Scene.Flags field
const (
	flagTimeOver uint16 = 1 << iota
	flagDoubleKO
)
