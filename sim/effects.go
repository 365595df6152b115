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

// List of effect kinds.
const (
	KindFireball uint8 = iota + 1
	KindSpark
)

// fireballs are in the list of the owning player. sparks have their own list
const sparkList = 2

const (
	fireballSpeed  = 4
	fireballLife   = 90
	fireballDamage = 12
	fireballReach  = 16
	fireballLow    = 30
	fireballHigh   = 50
	trailMax       = 8
	sparkLife      = 12
)

// resetEffects frees every effect slot and puts the scheduler into its
// initial state. the contents of the slots are left as they are.
func (w *World) resetEffects() {
	s := &w.state.Scheduler
	for l := range s.HeadIx {
		s.HeadIx[l] = snapshot.NoLink
		s.TailIx[l] = snapshot.NoLink
		s.ExecTm[l] = 0
	}

	for i := range w.state.Effects {
		e := &w.state.Effects[i]
		e.Active = false
		e.Before = snapshot.NoLink
		e.Myself = int16(i)
		e.Behind = snapshot.NoLink
		s.Queue[i] = int16(snapshot.EffectMax - 1 - i)
	}

	s.Counter = snapshot.EffectMax
	s.CounterMin = snapshot.EffectMax
}

// alloc takes a slot from the free queue and appends it to the end of the
// list. returns nil if there are no free slots.
func (w *World) alloc(list int16, kind uint8, owner int16) *snapshot.Effect {
	s := &w.state.Scheduler
	if s.Counter <= 0 {
		return nil
	}

	s.Counter--
	if s.Counter < s.CounterMin {
		s.CounterMin = s.Counter
	}
	ix := s.Queue[s.Counter]

	e := &w.state.Effects[ix]
	e.Active = true
	e.Kind = kind
	e.List = list
	e.Owner = owner
	e.PositionX = 0
	e.PositionY = 0
	e.VelocityX = 0
	e.VelocityY = 0
	e.Timer = 0
	e.Damage = 0
	e.Master = w.arena.ref(regionPlayer, int(owner))
	e.Payload.Len = 0

	e.Before = s.TailIx[list]
	e.Behind = snapshot.NoLink
	if s.TailIx[list] == snapshot.NoLink {
		s.HeadIx[list] = ix
	} else {
		w.state.Effects[s.TailIx[list]].Behind = ix
	}
	s.TailIx[list] = ix

	return e
}

// free removes the effect from its list and returns the slot to the free
// queue. the contents of the slot are not cleared.
func (w *World) free(e *snapshot.Effect) {
	s := &w.state.Scheduler

	if e.Before == snapshot.NoLink {
		s.HeadIx[e.List] = e.Behind
	} else {
		w.state.Effects[e.Before].Behind = e.Behind
	}
	if e.Behind == snapshot.NoLink {
		s.TailIx[e.List] = e.Before
	} else {
		w.state.Effects[e.Behind].Before = e.Before
	}

	e.Before = snapshot.NoLink
	e.Behind = snapshot.NoLink
	e.Active = false

	s.Queue[s.Counter] = e.Myself
	s.Counter++
}

// clearEffects frees every active effect.
func (w *World) clearEffects() {
	s := &w.state.Scheduler
	for l := range s.HeadIx {
		for s.HeadIx[l] != snapshot.NoLink {
			w.free(&w.state.Effects[s.HeadIx[l]])
		}
	}
}

func (w *World) spark(owner int, x int16, y int16) {
	sc := &w.state.Scene

	e := w.alloc(sparkList, KindSpark, int16(owner))
	if e == nil {
		return
	}
	e.PositionX = x
	e.PositionY = y
	e.Timer = sparkLife + int16(random.Rewindable(sc.RandomIndex[1], 4))
	sc.RandomIndex[1]++
	e.Palette = 0x0030
}

// effects is the effect task. every list is run in order, from head to tail.
func (w *World) effects() {
	s := &w.state.Scheduler
	for l := range s.HeadIx {
		ix := s.HeadIx[l]
		if ix == snapshot.NoLink {
			continue
		}
		s.ExecTm[l]++

		for ix != snapshot.NoLink {
			e := &w.state.Effects[ix]
			ix = e.Behind
			w.updateEffect(e)
		}
	}
}

func (w *World) updateEffect(e *snapshot.Effect) {
	switch e.Kind {
	case KindFireball:
		w.updateFireball(e)
	case KindSpark:
		e.Timer--
		if e.Timer <= 0 {
			w.free(e)
		}
	default:
		w.free(e)
	}
}

func (w *World) updateFireball(e *snapshot.Effect) {
	e.PositionX += e.VelocityX
	e.PositionY += e.VelocityY
	if e.PositionY <= fireballLow || e.PositionY >= fireballHigh {
		e.VelocityY = -e.VelocityY
	}

	// the trail of the fireball is the list of previous positions
	e.Payload.Push(e.PositionX)
	if len(e.Payload.Slice()) > trailMax {
		e.Payload.Shift()
	}

	e.Timer--

	o := &w.state.Players[1-e.Owner]
	if o.HitStop == 0 && abs(o.PositionX-e.PositionX) < fireballReach && o.PositionY < fireballHigh {
		w.hit(int(e.Owner), e.Damage)
		w.free(e)
		return
	}

	if e.Timer <= 0 || abs(e.PositionX) > stageEdge+40 {
		w.free(e)
	}
}
