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
	"fmt"
	"strings"

	"github.com/jetsetilly/rollnet/snapshot"
)

// palette bits set by the renderer
const (
	paletteHighlight snapshot.Palette = 0x8000
	paletteFlicker   snapshot.Palette = 0x4000
)

// the height of the floor from the bottom of the viewport
const floorHeight = 16

// render updates the rendering derived fields of the state.
func (w *World) render() {
	vp := w.viewport
	sc := &w.state.Scene

	sc.ViewScale = vp.Scale

	for i := range w.state.Players {
		p := &w.state.Players[i]
		p.ScreenX = (p.PositionX-sc.ScrollX)*vp.Scale + vp.Width/2
		p.ScreenY = vp.Height - floorHeight - (p.PositionY-sc.ScrollY)*vp.Scale
		p.Palette = p.Palette.Deterministic()
		if w.state.Players[1-i].Combo > 1 {
			p.Palette |= paletteHighlight
		}
	}

	for i := range w.state.Effects {
		e := &w.state.Effects[i]
		if !e.Active {
			continue
		}
		e.Sprite = w.arena.ref(regionSprite, int(e.Kind))
		e.Palette = e.Palette.Deterministic()
		if w.renders&1 == 1 {
			e.Palette |= paletteFlicker
		}
	}

	w.renders++
	w.screen = w.describe()
}

func bar(v int16) string {
	n := min(max(int(v)/16, 0), 10)
	return strings.Repeat("#", n) + strings.Repeat(".", 10-n)
}

// describe the state in a single line of text.
func (w *World) describe() string {
	sc := &w.state.Scene
	p0 := &w.state.Players[0]
	p1 := &w.state.Players[1]

	switch sc.Phase {
	case PhaseFight, PhaseResult:
		effects := snapshot.EffectMax - int(w.state.Scheduler.Counter)
		return fmt.Sprintf("%-7s R%d %02d | P1 %s %3d W%d | P2 %s %3d W%d | fx %d",
			PhaseName(sc.Phase), sc.Round, sc.RoundTimer/60,
			bar(p0.Vitality), p0.Vitality, p0.Wins,
			bar(p1.Vitality), p1.Vitality, p1.Wins,
			effects)
	case PhaseSelect:
		return fmt.Sprintf("%-7s %02d | P1 char %d ready %v | P2 char %d ready %v",
			PhaseName(sc.Phase), (selectFrames-int(sc.PhaseTimer))/60,
			p0.Character, p0.Routine[0] == routineReady,
			p1.Character, p1.Routine[0] == routineReady)
	}

	return PhaseName(sc.Phase)
}
