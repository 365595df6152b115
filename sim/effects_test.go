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
	"testing"

	"github.com/jetsetilly/rollnet/random"
	"github.com/jetsetilly/rollnet/snapshot"
	"github.com/jetsetilly/rollnet/test"
)

// checkEffects tests that the lists and the free queue are consistent.
func checkEffects(t *testing.T, w *World) bool {
	t.Helper()

	s := &w.state.Scheduler
	seen := make(map[int16]bool)

	for l := range s.HeadIx {
		prev := snapshot.NoLink
		for ix := s.HeadIx[l]; ix != snapshot.NoLink; ix = w.state.Effects[ix].Behind {
			e := &w.state.Effects[ix]
			if !test.ExpectSuccess(t, e.Active, l, ix) {
				return false
			}
			if !test.ExpectEquality(t, e.Before, prev, l, ix) {
				return false
			}
			if !test.ExpectEquality(t, e.Myself, ix, l, ix) {
				return false
			}
			if !test.ExpectEquality(t, e.List, int16(l), l, ix) {
				return false
			}
			if !test.ExpectFailure(t, seen[ix], l, ix) {
				return false
			}
			seen[ix] = true
			prev = ix
		}
		if !test.ExpectEquality(t, s.TailIx[l], prev, l) {
			return false
		}
	}

	if !test.ExpectEquality(t, int(s.Counter)+len(seen), snapshot.EffectMax) {
		return false
	}

	for i := 0; i < int(s.Counter); i++ {
		ix := s.Queue[i]
		e := &w.state.Effects[ix]
		if !test.ExpectFailure(t, e.Active, "queue", ix) {
			return false
		}
		if !test.ExpectFailure(t, seen[ix], "queue", ix) {
			return false
		}
		seen[ix] = true
	}

	return test.ExpectSuccess(t, s.CounterMin <= s.Counter)
}

func TestEffectAllocation(t *testing.T) {
	w, err := NewWorld(DefaultViewport)
	test.DemandSuccess(t, err)
	w.ResetBaseline()
	checkEffects(t, w)

	var effects []*snapshot.Effect
	for i := 0; i < snapshot.EffectMax; i++ {
		e := w.alloc(int16(i%3), KindSpark, 0)
		test.DemandSuccess(t, e != nil, i)
		effects = append(effects, e)
	}
	test.ExpectEquality(t, w.state.Scheduler.Counter, int16(0))
	test.ExpectSuccess(t, w.alloc(0, KindSpark, 0) == nil)
	checkEffects(t, w)

	// the first slot allocated is slot zero
	test.ExpectEquality(t, effects[0].Myself, int16(0))

	// free from the middle, the head and the tail of lists
	w.free(effects[30])
	w.free(effects[0])
	w.free(effects[snapshot.EffectMax-1])
	checkEffects(t, w)
	test.ExpectEquality(t, w.state.Scheduler.Counter, int16(3))
	test.ExpectEquality(t, w.state.Scheduler.CounterMin, int16(0))

	// the most recently freed slot is the next to be allocated
	e := w.alloc(1, KindSpark, 1)
	test.ExpectEquality(t, e.Myself, effects[snapshot.EffectMax-1].Myself)
	checkEffects(t, w)

	w.clearEffects()
	test.ExpectEquality(t, w.state.Scheduler.Counter, int16(snapshot.EffectMax))
	checkEffects(t, w)
}

func TestEffectsDuringPlay(t *testing.T) {
	w, err := NewWorld(DefaultViewport)
	test.DemandSuccess(t, err)
	w.ResetBaseline()

	var prev [2]uint16
	for f := 0; f < 3000; f++ {
		var cur [2]uint16
		for p := range cur {
			// fireballs and movement only
			v := uint16(random.Rewindable(uint16(f/5*2+p), 64))
			cur[p] = v & (ButtonLeft | ButtonRight | ButtonB)
		}
		if w.state.Scene.Phase == PhaseSelect {
			cur = [2]uint16{ButtonA, ButtonA}
		}
		w.Step(cur, prev, f%2 == 0)
		prev = cur

		if !checkEffects(t, w) {
			t.Fatalf("frame %d", f)
		}
	}
}

func TestRenderOnlyFields(t *testing.T) {
	w, err := NewWorld(Viewport{Width: 100, Height: 100, Scale: 3})
	test.DemandSuccess(t, err)
	w.ResetBaseline()

	w.Step([2]uint16{}, [2]uint16{}, true)
	test.ExpectEquality(t, w.state.Scene.ViewScale, int16(3))
	test.ExpectEquality(t, w.state.Players[0].ScreenX, int16((-80)*3+50))
	test.ExpectEquality(t, w.state.Players[1].ScreenX, int16(80*3+50))
	test.ExpectEquality(t, w.state.Players[0].CharTable, w.arena.ref(regionCharTable, 0))
	test.ExpectEquality(t, w.Renders(), 1)
}
