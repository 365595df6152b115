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

package netplay_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/jetsetilly/rollnet/netplay"
	"github.com/jetsetilly/rollnet/rollback"
	"github.com/jetsetilly/rollnet/test"
)

const fakeStateSize = 4

type fakeSim struct {
	syncAfter int

	steps     int
	baselines int
	restores  int
	state     uint32

	renders  []bool
	current  [][2]uint16
	previous [][2]uint16
}

func (s *fakeSim) ResetBaseline() {
	s.baselines++
	s.steps = 0
}

func (s *fakeSim) ReachedSyncPoint() bool {
	return s.steps >= s.syncAfter
}

func (s *fakeSim) Step(current [2]uint16, previous [2]uint16, render bool) {
	s.steps++
	s.state++
	s.renders = append(s.renders, render)
	s.current = append(s.current, current)
	s.previous = append(s.previous, previous)
}

func (s *fakeSim) StateSize() int {
	return fakeStateSize
}

func (s *fakeSim) Capture(dst []byte) error {
	if len(dst) != fakeStateSize {
		return errors.New("wrong size")
	}
	binary.LittleEndian.PutUint32(dst, s.state)
	return nil
}

func (s *fakeSim) Restore(src []byte) error {
	if len(src) != fakeStateSize {
		return errors.New("wrong size")
	}
	s.state = binary.LittleEndian.Uint32(src)
	s.restores++
	return nil
}

type fakeEngine struct {
	cfg     rollback.Config
	adapter rollback.Adapter
	kinds   []rollback.ActorKind
	addrs   []string

	ahead  float64
	closed bool

	// the number of calls to NetworkPoll()
	polls int

	// local input for every call to AddLocalInput()
	inputs [][]byte

	// events returned by the next call to SessionEvents()
	pending []rollback.SessionEvent

	// events returned by the next call to UpdateSession(). if nil the engine
	// advances one frame using the most recent local input
	batch []rollback.GameEvent

	frame int
}

func (e *fakeEngine) SetAdapter(adapter rollback.Adapter) {
	e.adapter = adapter
}

func (e *fakeEngine) AddActor(kind rollback.ActorKind, addr string) (int, error) {
	e.kinds = append(e.kinds, kind)
	e.addrs = append(e.addrs, addr)
	return len(e.kinds) - 1, nil
}

func (e *fakeEngine) AddLocalInput(handle int, input []byte) error {
	e.inputs = append(e.inputs, append([]byte{}, input...))
	return nil
}

func (e *fakeEngine) NetworkPoll() {
	e.polls++
}

func (e *fakeEngine) SessionEvents() []rollback.SessionEvent {
	ev := e.pending
	e.pending = nil
	return ev
}

func (e *fakeEngine) UpdateSession() []rollback.GameEvent {
	if e.batch != nil {
		b := e.batch
		e.batch = nil
		return b
	}

	in := []byte{0, 0}
	if len(e.inputs) > 0 {
		in = e.inputs[len(e.inputs)-1]
	}

	ev := []rollback.GameEvent{
		{Kind: rollback.AdvanceEvent, Frame: e.frame, Inputs: [][]byte{in, {0, 0}}},
		{Kind: rollback.SaveEvent, Frame: e.frame + 1, Saved: &rollback.SavedState{
			Frame: e.frame + 1,
			State: make([]byte, fakeStateSize),
		}},
	}
	e.frame++
	return ev
}

func (e *fakeEngine) FramesAhead() float64 {
	return e.ahead
}

func (e *fakeEngine) NetworkStats(handle int) (rollback.NetworkStats, error) {
	return rollback.NetworkStats{}, nil
}

func (e *fakeEngine) Close() error {
	e.closed = true
	if e.adapter != nil {
		return e.adapter.Close()
	}
	return nil
}

type fixture struct {
	n      *netplay.Netplay
	sim    *fakeSim
	engine *fakeEngine
}

// newFixture returns a netplay instance in the Transitioning state for
// player 1 in loopback mode. the simulation reaches the sync point after three
// frames
func newFixture(t *testing.T, opts netplay.Options) *fixture {
	t.Helper()

	f := &fixture{
		sim:    &fakeSim{syncAfter: 3},
		engine: &fakeEngine{},
	}

	hub := rollback.NewLoopback()
	opts.Loopback = true
	if opts.Transport == nil {
		opts.Transport = func(port int) (rollback.Adapter, error) {
			return hub.Endpoint("local"), nil
		}
	}
	opts.Engine = func(cfg rollback.Config) (netplay.Engine, error) {
		f.engine = &fakeEngine{cfg: cfg}
		return f.engine, nil
	}

	var err error
	f.n, err = netplay.NewNetplay(f.sim, opts)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, f.n.SetParams(1, ""))
	test.DemandSuccess(t, f.n.Begin())

	return f
}

// running moves the fixture to the Running state
func (f *fixture) running(t *testing.T) {
	t.Helper()

	for i := 0; i < f.sim.syncAfter; i++ {
		f.n.Run()
	}
	f.n.Run()
	test.DemandEquality(t, f.n.State(), netplay.Connecting)

	f.engine.pending = []rollback.SessionEvent{{Kind: rollback.SessionStarted}}
	f.n.Run()
	test.DemandEquality(t, f.n.State(), netplay.Running)
}
