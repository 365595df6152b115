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

// DefaultStage is the stage selected by ResetBaseline().
const DefaultStage = 0x14

// Viewport describes the local display. It only affects the rendering derived
// fields of the state.
type Viewport struct {
	Width  int16
	Height int16
	Scale  int16
}

// DefaultViewport is a viewport suitable for most purposes.
var DefaultViewport = Viewport{Width: 384, Height: 224, Scale: 1}

// World is the simulation. It is not safe for concurrent use.
type World struct {
	state snapshot.Frame

	arena    arena
	viewport Viewport
	rnd      *random.Random

	// inputs for the frame currently being stepped
	in inputs

	// number of frames stepped and rendered. these are not part of the
	// simulation state
	frames  int
	renders int

	// the most recent rendering
	screen string
}

// NewWorld is the preferred method of initialisation for the World type.
func NewWorld(viewport Viewport) (*World, error) {
	w := &World{
		viewport: viewport,
		rnd:      random.NewRandom(),
	}
	w.arena = newArena(w.rnd)

	// the state starts off as nonsense
	garbage := make([]byte, snapshot.Size)
	w.rnd.Fill(garbage)
	if err := w.state.Decode(garbage); err != nil {
		return nil, err
	}

	w.reset(PhaseBoot)

	return w, nil
}

// reset all deterministic fields of the state. effect slots are freed but the
// contents of the slots are not cleared.
func (w *World) reset(phase int16) {
	sc := &w.state.Scene
	sc.Phase = phase
	sc.PhaseTimer = 0
	sc.GameTimer = 0
	sc.RoundTimer = 0
	sc.Round = 0
	sc.RandomIndex = [2]uint16{}
	sc.ScrollX = 0
	sc.ScrollY = 0
	sc.Stage = DefaultStage
	sc.Background = [4]int16{}
	sc.Flags = 0

	for i := range w.state.Players {
		w.resetPlayer(i)
	}

	s := &w.state.Scheduler
	for i := range s.Tasks {
		s.Tasks[i] = snapshot.Task{
			Condition: TaskStopped,
			Handler:   w.arena.ref(regionTask, i),
		}
	}
	s.Tasks[TaskEffect].Condition = TaskRunning

	if phase == PhaseBoot {
		s.Tasks[TaskMenu].Condition = TaskRunning
	} else {
		s.Tasks[TaskGame].Condition = TaskRunning
	}

	w.resetEffects()
}

// ResetBaseline puts the simulation into a known state. Two simulations that
// have been reset will be identical, apart from the fields that do not
// contribute to the deterministic state, and will remain so if they are
// stepped with the same input.
//
// The simulation will reach the sync point after a fixed number of frames.
func (w *World) ResetBaseline() {
	w.reset(PhaseVersus)
}

// ReachedSyncPoint returns true if the simulation has reached the point where
// it can be synchronised with a remote simulation.
func (w *World) ReachedSyncPoint() bool {
	return w.state.Scene.Phase == PhaseSelect
}

// Step the simulation by one frame using the inputs for the current frame and
// for the previous frame. The rendering derived fields are only updated if
// render is true.
func (w *World) Step(current [2]uint16, previous [2]uint16, render bool) {
	w.in = inputs{current: current, previous: previous}

	s := &w.state.Scheduler
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Condition != TaskRunning {
			continue
		}
		t.Timer++

		switch i {
		case TaskGame:
			w.game()
		case TaskMenu:
			w.menu()
		case TaskSaver:
			w.saver()
		case TaskEffect:
			w.effects()
		}
	}

	w.frames++

	if render {
		w.render()
	}
}

// StateSize returns the number of bytes required to capture the state.
func (w *World) StateSize() int {
	return snapshot.Size
}

// Capture the state of the simulation into dst. The length of dst must be
// exactly StateSize() bytes.
func (w *World) Capture(dst []byte) error {
	return w.state.Encode(dst)
}

// Restore the state of the simulation from src. The state is unchanged if src
// is not a valid state.
func (w *World) Restore(src []byte) error {
	var f snapshot.Frame
	if err := f.Decode(src); err != nil {
		return err
	}
	w.state = f
	return nil
}

// Poke allows the live state to be altered.
func (w *World) Poke(fn func(f *snapshot.Frame)) {
	fn(&w.state)
}

// Frame returns a copy of the live state.
func (w *World) Frame() snapshot.Frame {
	return w.state
}

// Phase returns the current game phase.
func (w *World) Phase() int16 {
	return w.state.Scene.Phase
}

// Frames returns the number of frames that have been stepped. This includes
// frames that were later discarded by a call to Restore().
func (w *World) Frames() int {
	return w.frames
}

// Renders returns the number of frames that have been rendered.
func (w *World) Renders() int {
	return w.renders
}

// Screen returns the most recent rendering.
func (w *World) Screen() string {
	return w.screen
}

func (w *World) menu() {
	sc := &w.state.Scene
	sc.PhaseTimer++

	switch sc.Phase {
	case PhaseBoot:
		if sc.PhaseTimer >= bootFrames {
			sc.Phase = PhaseAttract
			sc.PhaseTimer = 0
			w.state.Scheduler.Tasks[TaskSaver].Condition = TaskRunning
		}
	case PhaseAttract:
		for i := range w.state.Players {
			if w.in.pressed(i)&ButtonStart != 0 {
				sc.PhaseTimer = 0
			}
		}
	}
}

// the attract screen slowly pans the background
func (w *World) saver() {
	sc := &w.state.Scene
	if sc.Phase != PhaseAttract {
		return
	}
	if sc.PhaseTimer%4 == 0 {
		sc.ScrollX++
	}
	if sc.ScrollX > stageEdge {
		sc.ScrollX = -stageEdge
	}
}

func (w *World) game() {
	sc := &w.state.Scene

	switch sc.Phase {
	case PhaseVersus:
		sc.PhaseTimer++
		if sc.PhaseTimer >= versusFrames {
			w.enterSelect()
		}
	case PhaseSelect:
		w.selectCharacters()
	case PhaseFight:
		w.fight()
	case PhaseResult:
		sc.PhaseTimer++
		if sc.PhaseTimer >= resultFrames {
			w.endResult()
		}
	}
}
