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

package rollback_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/rollback"
	"github.com/jetsetilly/rollnet/test"
)

const stateSize = 8

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

// game is a minimal deterministic simulation
type game struct {
	frame uint32
	acc   uint32

	// the state is altered when this frame is simulated. -1 for no corruption
	corrupt int
}

func (g *game) step(inputs [][]byte) {
	for i, in := range inputs {
		g.acc = g.acc*31 + uint32(binary.LittleEndian.Uint16(in))*uint32(i+1)
	}
	if int(g.frame) == g.corrupt {
		g.acc ^= 1
	}
	g.frame++
}

func (g *game) save(st *rollback.SavedState) {
	binary.LittleEndian.PutUint32(st.State[0:], g.frame)
	binary.LittleEndian.PutUint32(st.State[4:], g.acc)
	st.Checksum = uint64(g.frame)<<32 | uint64(g.acc)
}

func (g *game) load(st *rollback.SavedState) {
	g.frame = binary.LittleEndian.Uint32(st.State[0:])
	g.acc = binary.LittleEndian.Uint32(st.State[4:])
}

type harness struct {
	t       *testing.T
	session *rollback.Session
	handle  int
	input   func(frame int) uint16

	game   game
	events []rollback.SessionEvent

	// checksum of the most recent save of each frame
	sums map[int]uint64

	loads    int
	advanced int
	replayed int
}

func (h *harness) tick() {
	h.t.Helper()

	h.session.NetworkPoll()

	in := make([]byte, 2)
	binary.LittleEndian.PutUint16(in, h.input(h.session.Frame()))
	test.ExpectSuccess(h.t, h.session.AddLocalInput(h.handle, in))

	h.events = append(h.events, h.session.SessionEvents()...)
	h.apply(h.session.UpdateSession())
}

func (h *harness) apply(events []rollback.GameEvent) {
	t := h.t
	t.Helper()

	for i, ev := range events {
		switch ev.Kind {
		case rollback.LoadEvent:
			test.ExpectEquality(t, i, 0, "load must be first")
			h.game.load(ev.Saved)
			test.ExpectEquality(t, int(h.game.frame), ev.Frame, "load")
			h.loads++

		case rollback.AdvanceEvent:
			test.ExpectEquality(t, int(h.game.frame), ev.Frame, "advance")
			h.game.step(ev.Inputs)
			if ev.RollingBack {
				h.replayed++
			} else {
				h.advanced++
			}

			if !test.ExpectSuccess(t, i+1 < len(events), "advance must be followed by save") {
				continue
			}
			test.ExpectEquality(t, events[i+1].Kind, rollback.SaveEvent)
			test.ExpectEquality(t, events[i+1].Frame, ev.Frame+1)

		case rollback.SaveEvent:
			test.ExpectEquality(t, int(h.game.frame), ev.Frame, "save")
			test.ExpectEquality(t, len(ev.Saved.State), stateSize)
			h.game.save(ev.Saved)
			h.sums[ev.Frame] = ev.Saved.Checksum
		}
	}
}

func (h *harness) find(kind rollback.SessionEventKind) []rollback.SessionEvent {
	var found []rollback.SessionEvent
	for _, ev := range h.events {
		if ev.Kind == kind {
			found = append(found, ev)
		}
	}
	return found
}

func newHarness(t *testing.T, cfg rollback.Config, adapter rollback.Adapter, local int, remote string) *harness {
	t.Helper()

	s, err := rollback.NewSession(cfg)
	test.DemandSuccess(t, err)
	s.SetAdapter(adapter)

	h := &harness{
		t:       t,
		session: s,
		handle:  local,
		input:   func(int) uint16 { return 0 },
		game:    game{corrupt: -1},
		sums:    make(map[int]uint64),
	}

	for handle := 0; handle < 2; handle++ {
		var hnd int
		if handle == local {
			hnd, err = s.AddActor(rollback.LocalPlayer, "")
		} else {
			hnd, err = s.AddActor(rollback.RemotePlayer, remote)
		}
		test.DemandSuccess(t, err)
		test.DemandEquality(t, hnd, handle)
	}

	return h
}

func newPair(t *testing.T, clk *clock, desync bool, wrap func(rollback.Adapter) rollback.Adapter) (*harness, *harness) {
	t.Helper()

	cfg := rollback.Config{
		NumPlayers:      2,
		InputSize:       2,
		StateSize:       stateSize,
		DesyncDetection: desync,
		Now:             clk.Now,
	}

	hub := rollback.NewLoopback()
	var adA, adB rollback.Adapter = hub.Endpoint("a"), hub.Endpoint("b")
	if wrap != nil {
		adA = wrap(adA)
		adB = wrap(adB)
	}

	a := newHarness(t, cfg, adA, 0, "b")
	b := newHarness(t, cfg, adB, 1, "a")
	a.input = func(f int) uint16 { return uint16(f / 3 % 4) }
	b.input = func(f int) uint16 { return uint16(f/5%3) << 4 }

	return a, b
}

func run(clk *clock, ticks int, hs ...*harness) {
	for i := 0; i < ticks; i++ {
		for _, h := range hs {
			h.tick()
		}
		clk.now = clk.now.Add(16 * time.Millisecond)
	}
}

func TestHandshake(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	a, b := newPair(t, clk, false, nil)

	for i := 0; i < 20 && !(a.session.Started() && b.session.Started()); i++ {
		run(clk, 1, a, b)
	}
	test.DemandSuccess(t, a.session.Started())
	test.DemandSuccess(t, b.session.Started())

	test.DemandEquality(t, len(a.events), rollback.DefaultSyncPackets+2)
	for i := 0; i < rollback.DefaultSyncPackets; i++ {
		ev := a.events[i]
		test.ExpectEquality(t, ev.Kind, rollback.PlayerSyncing)
		test.ExpectEquality(t, ev.Handle, 1)
		test.ExpectEquality(t, ev.Count, i+1)
		test.ExpectEquality(t, ev.Total, rollback.DefaultSyncPackets)
	}
	test.ExpectEquality(t, a.events[rollback.DefaultSyncPackets].Kind, rollback.PlayerConnected)
	test.ExpectEquality(t, a.events[rollback.DefaultSyncPackets].Handle, 1)
	test.ExpectEquality(t, a.events[rollback.DefaultSyncPackets+1].Kind, rollback.SessionStarted)

	test.ExpectEquality(t, b.find(rollback.PlayerConnected)[0].Handle, 0)

	// actors cannot be added once the session has begun
	_, err := a.session.AddActor(rollback.RemotePlayer, "c")
	test.ExpectSuccess(t, curated.Is(err, rollback.ActorError))
}

func TestSynchronisedState(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	a, b := newPair(t, clk, true, nil)

	run(clk, 300, a, b)

	test.ExpectSuccess(t, a.session.Frame() > 250)
	test.ExpectSuccess(t, b.session.Frame() > 250)

	// the input of b changes every five frames and a is always predicting
	// the input of b for the current frame
	test.ExpectSuccess(t, a.loads > 0)
	test.ExpectSuccess(t, a.replayed > 0)
	rollbacks, _ := a.session.Rollbacks()
	test.ExpectEquality(t, rollbacks, a.loads)

	confirmed := min(a.session.ConfirmedFrame(), b.session.ConfirmedFrame())
	test.DemandSuccess(t, confirmed > 200)
	for f := 0; f <= confirmed; f++ {
		if !test.ExpectEquality(t, a.sums[f], b.sums[f], f) {
			break
		}
	}

	test.ExpectEquality(t, len(a.find(rollback.DesyncDetected)), 0)
	test.ExpectEquality(t, len(b.find(rollback.DesyncDetected)), 0)
}

func TestDesync(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	a, b := newPair(t, clk, true, nil)
	b.game.corrupt = 49

	run(clk, 150, a, b)

	desyncs := a.find(rollback.DesyncDetected)
	test.DemandSuccess(t, len(desyncs) > 0)
	test.ExpectEquality(t, desyncs[0].Frame, 50)
	test.ExpectEquality(t, desyncs[0].Handle, 1)
	test.ExpectInequality(t, desyncs[0].Local, desyncs[0].Remote)

	desyncs = b.find(rollback.DesyncDetected)
	test.DemandSuccess(t, len(desyncs) > 0)
	test.ExpectEquality(t, desyncs[0].Frame, 50)
	test.ExpectEquality(t, desyncs[0].Handle, 0)
}

func TestDesyncReportedOnNextTick(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	a, b := newPair(t, clk, true, nil)

	// constant input means that no peer is ever rolled back
	a.input = func(int) uint16 { return 0 }
	b.input = func(int) uint16 { return 0 }

	run(clk, 30, a, b)
	test.DemandSuccess(t, a.session.Started())
	test.DemandSuccess(t, b.session.Started())

	// bring the peers to the same frame
	for i := 0; i < 10 && a.session.Frame() < b.session.Frame(); i++ {
		a.tick()
	}
	for i := 0; i < 10 && b.session.Frame() < a.session.Frame(); i++ {
		b.tick()
	}
	test.DemandEquality(t, a.session.Frame(), b.session.Frame())

	// the saved state of the frame after this one will differ
	b.game.corrupt = b.session.Frame()
	run(clk, 1, a, b)
	test.ExpectEquality(t, len(b.find(rollback.DesyncDetected)), 0)

	// b has both checksums for the frame on the following tick
	run(clk, 1, a, b)
	desyncs := b.find(rollback.DesyncDetected)
	test.DemandEquality(t, len(desyncs), 1)
	test.ExpectEquality(t, desyncs[0].Frame, b.game.corrupt+1)
	test.ExpectEquality(t, desyncs[0].Handle, 0)
	test.ExpectEquality(t, desyncs[0].Local, b.sums[b.game.corrupt+1])
	test.ExpectEquality(t, desyncs[0].Remote, a.sums[b.game.corrupt+1])

	// a receives the checksum from b on the tick after that
	test.ExpectEquality(t, len(a.find(rollback.DesyncDetected)), 0)
	run(clk, 1, a, b)
	test.ExpectEquality(t, len(a.find(rollback.DesyncDetected)), 1)
}

func TestPredictionWindow(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	a, b := newPair(t, clk, false, nil)

	// complete the handshake without either session simulating any frames
	for i := 0; i < 20 && !(a.session.Started() && b.session.Started()); i++ {
		for _, h := range []*harness{a, b} {
			h.session.NetworkPoll()
			h.events = append(h.events, h.session.SessionEvents()...)
		}
	}
	test.DemandSuccess(t, a.session.Started())

	// b is no longer running so a can only predict as far as the window
	run(clk, 30, a)
	test.ExpectEquality(t, a.session.Frame(), rollback.DefaultPredictionWindow)
	test.ExpectEquality(t, a.session.ConfirmedFrame(), -1)
	test.ExpectEquality(t, a.advanced, rollback.DefaultPredictionWindow)

	// b is disconnected after the timeout and a is free to continue
	clk.now = clk.now.Add(rollback.DefaultDisconnectTimeout + time.Second)
	run(clk, 5, a)
	disconnected := a.find(rollback.PlayerDisconnected)
	test.DemandEquality(t, len(disconnected), 1)
	test.ExpectEquality(t, disconnected[0].Handle, 1)
	test.ExpectEquality(t, a.session.Frame(), rollback.DefaultPredictionWindow+5)
}

func TestDisconnectOnClose(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	a, b := newPair(t, clk, false, nil)

	run(clk, 30, a, b)
	test.ExpectEquality(t, len(a.find(rollback.PlayerDisconnected)), 0)

	test.ExpectSuccess(t, b.session.Close())
	test.ExpectSuccess(t, b.session.Close())

	run(clk, 1, a)
	disconnected := a.find(rollback.PlayerDisconnected)
	test.DemandEquality(t, len(disconnected), 1)
	test.ExpectEquality(t, disconnected[0].Handle, 1)
}

func TestNetworkStats(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	a, b := newPair(t, clk, false, nil)

	run(clk, 100, a, b)

	// every datagram is received during the poll of the following tick
	for _, h := range []*harness{a, b} {
		stats, err := h.session.NetworkStats(1 - h.handle)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, stats.LastPing, 16*time.Millisecond)
		test.ExpectEquality(t, stats.AvgPing, 16*time.Millisecond)
		test.ExpectEquality(t, stats.Jitter, time.Duration(0))
	}

	_, err := a.session.NetworkStats(0)
	test.ExpectSuccess(t, curated.Is(err, rollback.NotRemotePlayer))
	_, err = a.session.NetworkStats(2)
	test.ExpectSuccess(t, curated.Is(err, rollback.UnknownHandle))
}

func TestLossyNetwork(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	var lossy []*rollback.Lossy
	a, b := newPair(t, clk, true, func(ad rollback.Adapter) rollback.Adapter {
		l := rollback.NewLossy(ad, 0.25)
		lossy = append(lossy, l)
		return l
	})

	run(clk, 600, a, b)

	test.ExpectSuccess(t, a.session.Frame() > 200)
	test.ExpectSuccess(t, b.session.Frame() > 200)
	test.ExpectEquality(t, len(a.find(rollback.DesyncDetected)), 0)
	test.ExpectEquality(t, len(b.find(rollback.DesyncDetected)), 0)

	for _, l := range lossy {
		test.ExpectSuccess(t, l.Dropped > 0)
		test.ExpectSuccess(t, l.Dropped < l.Sent)
	}
}

func TestAddActor(t *testing.T) {
	cfg := rollback.Config{NumPlayers: 2, InputSize: 2, StateSize: stateSize}
	s, err := rollback.NewSession(cfg)
	test.DemandSuccess(t, err)

	_, err = s.AddActor(rollback.RemotePlayer, "b")
	test.ExpectSuccess(t, curated.Is(err, rollback.ActorError), "no adapter")

	s.SetAdapter(rollback.NewLoopback().Endpoint("a"))

	_, err = s.AddActor(rollback.RemotePlayer, "")
	test.ExpectSuccess(t, curated.Is(err, rollback.ActorError), "no address")

	hnd, err := s.AddActor(rollback.RemotePlayer, "b")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, hnd, 0)

	_, err = s.AddActor(rollback.RemotePlayer, "c")
	test.ExpectSuccess(t, curated.Is(err, rollback.ActorError), "no local player")

	hnd, err = s.AddActor(rollback.LocalPlayer, "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, hnd, 1)

	_, err = s.AddActor(rollback.LocalPlayer, "")
	test.ExpectSuccess(t, curated.Is(err, rollback.ActorError), "too many players")

	test.ExpectSuccess(t, curated.Is(s.AddLocalInput(0, []byte{0, 0}), rollback.NotLocalPlayer))
	test.ExpectSuccess(t, curated.Is(s.AddLocalInput(2, []byte{0, 0}), rollback.UnknownHandle))
	test.ExpectSuccess(t, curated.Is(s.AddLocalInput(1, []byte{0}), rollback.BadInputSize))

	// input before the session has started is ignored
	test.ExpectSuccess(t, s.AddLocalInput(1, []byte{0, 0}))
	test.ExpectEquality(t, len(s.UpdateSession()), 0)
}

func TestConfig(t *testing.T) {
	_, err := rollback.NewSession(rollback.Config{NumPlayers: 0, InputSize: 2, StateSize: 1})
	test.ExpectSuccess(t, curated.Is(err, rollback.InvalidConfig))
	_, err = rollback.NewSession(rollback.Config{NumPlayers: 2, InputSize: 0, StateSize: 1})
	test.ExpectSuccess(t, curated.Is(err, rollback.InvalidConfig))
	_, err = rollback.NewSession(rollback.Config{NumPlayers: 2, InputSize: 2, StateSize: 0})
	test.ExpectSuccess(t, curated.Is(err, rollback.InvalidConfig))
	_, err = rollback.NewSession(rollback.Config{NumPlayers: 2, InputSize: 2, StateSize: 1, PredictionWindow: -1})
	test.ExpectSuccess(t, curated.Is(err, rollback.InvalidConfig))
}

func TestSinglePlayer(t *testing.T) {
	s, err := rollback.NewSession(rollback.Config{NumPlayers: 1, InputSize: 1, StateSize: 4})
	test.DemandSuccess(t, err)
	s.SetAdapter(rollback.NewLoopback().Endpoint("a"))
	_, err = s.AddActor(rollback.LocalPlayer, "")
	test.DemandSuccess(t, err)

	s.NetworkPoll()
	test.DemandSuccess(t, s.Started())
	evs := s.SessionEvents()
	test.DemandEquality(t, len(evs), 1)
	test.ExpectEquality(t, evs[0].Kind, rollback.SessionStarted)

	test.ExpectSuccess(t, s.AddLocalInput(0, []byte{1}))
	events := s.UpdateSession()
	test.DemandEquality(t, len(events), 3)
	test.ExpectEquality(t, events[0].Kind, rollback.SaveEvent)
	test.ExpectEquality(t, events[0].Frame, 0)
	test.ExpectEquality(t, events[1].Kind, rollback.AdvanceEvent)
	test.ExpectEquality(t, events[1].Inputs[0][0], byte(1))
	test.ExpectEquality(t, events[2].Kind, rollback.SaveEvent)
	test.ExpectEquality(t, events[2].Frame, 1)

	// no input for frame 1 so the session cannot advance
	test.ExpectEquality(t, len(s.UpdateSession()), 0)
}
