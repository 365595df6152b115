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

import (
	"github.com/jetsetilly/rollnet/random"
	"github.com/jetsetilly/rollnet/snapshot"
)

// NumCharacters is the number of selectable characters.
const NumCharacters = 4

const (
	stageEdge     = 200
	startDistance = 80
	startVitality = 160
	walkSpeed     = 2
	jumpSpeed     = 8
	gravity       = 1
	punchRange    = 40
	punchDamage   = 8
	hitStopFrames = 10
	meterMax      = 100
	fireballCost  = 20
)

// values for Routine[0] of a player during the fight phase
const (
	routineIdle uint8 = iota
	routineWalk
	routineJump
	routinePunch
	routineHurt
)

// value for Routine[0] of a player during the select phase
const routineReady uint8 = 1

// deterministic palette bit indicating the player has been hit
const paletteHurt snapshot.Palette = 0x0100

func characterPalette(character int16) snapshot.Palette {
	return snapshot.Palette(0x0010 * (character + 1))
}

func abs(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func startX(player int) int16 {
	if player == 0 {
		return -startDistance
	}
	return startDistance
}

func startDirection(player int) int16 {
	if player == 0 {
		return 1
	}
	return -1
}

func (w *World) resetPlayer(i int) {
	p := &w.state.Players[i]
	*p = snapshot.Player{
		Operator:  1,
		Handicap:  [2]int16{7, 7},
		Character: int16(i),
		PositionX: startX(i),
		Direction: startDirection(i),
		Vitality:  startVitality,
		Palette:   characterPalette(int16(i)),
		CharTable: w.arena.ref(regionCharTable, i),
		Target:    w.arena.ref(regionPlayer, 1-i),
	}
}

func (w *World) enterSelect() {
	sc := &w.state.Scene
	sc.Phase = PhaseSelect
	sc.PhaseTimer = 0
	for i := range w.state.Players {
		w.state.Players[i].Routine = [4]uint8{}
	}
}

func (w *World) selectCharacters() {
	sc := &w.state.Scene
	sc.PhaseTimer++

	ready := true

	for i := range w.state.Players {
		p := &w.state.Players[i]
		pressed := w.in.pressed(i)

		if p.Routine[0] != routineReady {
			switch {
			case pressed&ButtonLeft != 0:
				p.Character = (p.Character + NumCharacters - 1) % NumCharacters
			case pressed&ButtonRight != 0:
				p.Character = (p.Character + 1) % NumCharacters
			}
			p.CharTable = w.arena.ref(regionCharTable, int(p.Character))
			p.Palette = characterPalette(p.Character)

			if pressed&(ButtonA|ButtonStart) != 0 {
				p.Routine[0] = routineReady
			}
		}

		if p.Routine[0] != routineReady {
			ready = false
		}
	}

	if ready || sc.PhaseTimer >= selectFrames {
		w.startMatch()
	}
}

func (w *World) startMatch() {
	sc := &w.state.Scene
	sc.Round = 0
	for i := range sc.Background {
		sc.Background[i] = sc.Stage*4 + int16(i)
	}
	for i := range w.state.Players {
		w.state.Players[i].Wins = 0
	}
	w.startRound()
}

func (w *World) startRound() {
	sc := &w.state.Scene
	sc.Phase = PhaseFight
	sc.PhaseTimer = 0
	sc.RoundTimer = roundFrames
	sc.Round++
	sc.Flags = 0

	for i := range w.state.Players {
		p := &w.state.Players[i]
		p.PositionX = startX(i)
		p.PositionY = 0
		p.VelocityX = 0
		p.VelocityY = 0
		p.Direction = startDirection(i)
		p.Vitality = startVitality * p.Handicap[0] / 7
		p.Meter = 0
		p.HitStop = 0
		p.Combo = 0
		p.Routine = [4]uint8{}
		p.Timer = 0
		p.Palette = characterPalette(p.Character)
		p.Target = w.arena.ref(regionPlayer, 1-i)
	}

	w.clearEffects()
}

func (w *World) fight() {
	sc := &w.state.Scene
	sc.GameTimer++
	sc.PhaseTimer++
	sc.RoundTimer--

	for i := range w.state.Players {
		w.updatePlayer(i)
	}

	w.face()
	w.scroll()

	p0 := &w.state.Players[0]
	p1 := &w.state.Players[1]

	switch {
	case p0.Vitality <= 0 || p1.Vitality <= 0:
		w.endRound()
	case sc.RoundTimer <= 0:
		sc.Flags |= flagTimeOver
		w.endRound()
	}
}

func (w *World) setRoutine(p *snapshot.Player, r uint8) {
	if p.Routine[0] != r {
		p.Routine[0] = r
		p.Routine[1] = 0
		return
	}
	p.Routine[1]++
}

func (w *World) updatePlayer(i int) {
	p := &w.state.Players[i]
	o := &w.state.Players[1-i]

	p.Timer++
	if p.Meter < meterMax {
		p.Meter++
	}

	if o.HitStop == 0 {
		p.Combo = 0
	}

	if p.HitStop > 0 {
		p.HitStop--
		p.Palette = characterPalette(p.Character) | paletteHurt
		w.setRoutine(p, routineHurt)
		return
	}
	p.Palette = characterPalette(p.Character)

	held := w.in.held(i)
	pressed := w.in.pressed(i)

	p.VelocityX = 0
	switch {
	case held&ButtonLeft != 0:
		p.VelocityX = -walkSpeed
	case held&ButtonRight != 0:
		p.VelocityX = walkSpeed
	}

	if p.PositionY == 0 && held&ButtonUp != 0 {
		p.VelocityY = jumpSpeed
	}

	r := routineIdle
	if p.VelocityX != 0 {
		r = routineWalk
	}

	if pressed&ButtonA != 0 {
		r = routinePunch
		if abs(p.PositionX-o.PositionX) <= punchRange && o.PositionY == 0 && o.HitStop == 0 {
			w.hit(i, punchDamage)
		}
	}

	if pressed&ButtonB != 0 && p.Meter >= fireballCost {
		p.Meter -= fireballCost
		w.fireball(i)
	}

	p.PositionX += p.VelocityX
	if p.PositionX < -stageEdge {
		p.PositionX = -stageEdge
	} else if p.PositionX > stageEdge {
		p.PositionX = stageEdge
	}

	p.PositionY += p.VelocityY
	if p.PositionY > 0 {
		p.VelocityY -= gravity
		r = routineJump
	} else {
		p.PositionY = 0
		p.VelocityY = 0
	}

	w.setRoutine(p, r)
}

// hit the opponent of the player
func (w *World) hit(player int, damage int16) {
	p := &w.state.Players[player]
	o := &w.state.Players[1-player]

	o.Vitality -= damage
	if o.Vitality < 0 {
		o.Vitality = 0
	}
	o.HitStop = hitStopFrames
	p.Combo++

	w.spark(player, o.PositionX, o.PositionY+40)
}

func (w *World) fireball(player int) {
	p := &w.state.Players[player]
	sc := &w.state.Scene

	e := w.alloc(int16(player), KindFireball, int16(player))
	if e == nil {
		return
	}

	e.PositionX = p.PositionX + p.Direction*20
	e.PositionY = 40
	e.VelocityX = p.Direction * fireballSpeed
	e.VelocityY = int16(random.Rewindable(sc.RandomIndex[0], 3)) - 1
	sc.RandomIndex[0]++
	e.Timer = fireballLife
	e.Damage = fireballDamage + int16(random.Rewindable(sc.RandomIndex[0], 4))
	sc.RandomIndex[0]++
	e.Palette = snapshot.Palette(0x0020 + player)
}

func (w *World) face() {
	p0 := &w.state.Players[0]
	p1 := &w.state.Players[1]
	switch {
	case p0.PositionX < p1.PositionX:
		p0.Direction = 1
		p1.Direction = -1
	case p0.PositionX > p1.PositionX:
		p0.Direction = -1
		p1.Direction = 1
	}
}

func (w *World) scroll() {
	sc := &w.state.Scene
	p0 := &w.state.Players[0]
	p1 := &w.state.Players[1]
	sc.ScrollX = (p0.PositionX + p1.PositionX) / 2
	sc.ScrollY = max(p0.PositionY, p1.PositionY) / 4
}

func (w *World) endRound() {
	sc := &w.state.Scene
	p0 := &w.state.Players[0]
	p1 := &w.state.Players[1]

	switch {
	case p0.Vitality <= 0 && p1.Vitality <= 0:
		sc.Flags |= flagDoubleKO
	case p0.Vitality > p1.Vitality:
		p0.Wins++
	case p1.Vitality > p0.Vitality:
		p1.Wins++
	}

	sc.Phase = PhaseResult
	sc.PhaseTimer = 0
}

func (w *World) endResult() {
	for i := range w.state.Players {
		if w.state.Players[i].Wins >= winsNeeded {
			w.clearEffects()
			w.enterSelect()
			return
		}
	}
	w.startRound()
}
