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

package netplay

import (
	"github.com/jetsetilly/rollnet/rollback"
)

// Simulation is the deterministic simulation being kept in step with the
// remote peer. The sim.World type satisfies this interface.
type Simulation interface {
	// put the simulation into a state that is identical on both peers
	ResetBaseline()

	// the simulation is at the point where the session can begin
	ReachedSyncPoint() bool

	// step the simulation by one frame. previous is the input used for the
	// previous frame
	Step(current [2]uint16, previous [2]uint16, render bool)

	StateSize() int
	Capture(dst []byte) error
	Restore(src []byte) error
}

// Engine is the rollback engine. The rollback.Session type satisfies this
// interface.
type Engine interface {
	SetAdapter(adapter rollback.Adapter)
	AddActor(kind rollback.ActorKind, addr string) (int, error)
	AddLocalInput(handle int, input []byte) error
	NetworkPoll()
	SessionEvents() []rollback.SessionEvent
	UpdateSession() []rollback.GameEvent
	FramesAhead() float64
	NetworkStats(handle int) (rollback.NetworkStats, error)
	Close() error
}

// InputSource is a source of local input. The input of all sources is
// combined into the input of the local player.
type InputSource interface {
	Input() uint16
}

// InputFunc is a function that can be used as an InputSource.
type InputFunc func() uint16

// Input implements the InputSource interface.
func (f InputFunc) Input() uint16 {
	return f()
}
