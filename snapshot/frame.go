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

package snapshot

// NumPlayers is the number of player entities in the simulation.
const NumPlayers = 2

// EffectMax is the number of slots in the effect table.
const EffectMax = 64

// NumLists is the number of effect lists maintained by the scheduler.
const NumLists = 8

// TaskMax is the number of entries in the task table.
const TaskMax = 8

// NoLink is the value of an intrusive link that does not point to a slot.
const NoLink int16 = -1

// Ref is the address of a live object in the local process. See package
// documentation.
type Ref uint64

// Palette is a colour code. The bits in RenderBits are owned by the renderer.
type Palette uint16

// RenderBits are the bits in a Palette value that are set and cleared by the
// renderer.
const RenderBits Palette = 0xc000

// Deterministic returns the palette value without the render bits.
func (p Palette) Deterministic() Palette {
	return p &^ RenderBits
}

// Player is the per-player sub-state.
type Player struct {
	Operator  int16
	Handicap  [2]int16
	Character int16
	PositionX int16
	PositionY int16
	VelocityX int16
	VelocityY int16
	Direction int16
	Vitality  int16
	Meter     int16
	HitStop   int16
	Combo     int16
	Routine   [4]uint8
	Timer     int16
	Wins      int16
	Palette   Palette

	// rendering derived
	ScreenX int16
	ScreenY int16

	// live addresses
	CharTable Ref
	Target    Ref
}

// Scene is the shared simulation sub-state.
type Scene struct {
	Phase       int16
	PhaseTimer  int16
	GameTimer   uint32
	RoundTimer  int16
	Round       int16
	RandomIndex [2]uint16
	ScrollX     int16
	ScrollY     int16
	Stage       int16
	Background  [4]int16
	Flags       uint16

	// rendering derived
	ViewScale int16
}

// Task is an entry in the scheduler's task table.
type Task struct {
	Condition int16
	Routine   [4]uint8
	Timer     int16

	// live address
	Handler Ref
}

// Scheduler is the task table and the auxiliary tables for the effect lists.
type Scheduler struct {
	Tasks  [TaskMax]Task
	HeadIx [NumLists]int16
	TailIx [NumLists]int16
	ExecTm [NumLists]int16

	// stack of free effect slots. Counter is the number of free slots on the
	// stack and CounterMin is the lowest value Counter has reached
	Queue      [EffectMax]int16
	Counter    int16
	CounterMin int16
}

// Effect is a record in the effect table. The Before, Myself and Behind fields
// are the intrusive links of the list the effect belongs to.
type Effect struct {
	Active    bool
	Kind      uint8
	Before    int16
	Myself    int16
	Behind    int16
	List      int16
	Owner     int16
	PositionX int16
	PositionY int16
	VelocityX int16
	VelocityY int16
	Timer     int16
	Damage    int16
	Palette   Palette

	// live addresses
	Master Ref
	Sprite Ref

	Payload Payload
}

// Frame is the complete deterministic state of the simulation.
type Frame struct {
	Players   [NumPlayers]Player
	Scene     Scene
	Scheduler Scheduler
	Effects   [EffectMax]Effect
}
