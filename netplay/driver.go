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
	"encoding/binary"

	"github.com/jetsetilly/rollnet/logger"
	"github.com/jetsetilly/rollnet/paths"
	"github.com/jetsetilly/rollnet/rollback"
	"github.com/jetsetilly/rollnet/snapshot"
)

// drive the session for one tick. an extra frame is simulated if the local
// simulation has fallen behind. the first cycle is not rendered in that case
func (n *Netplay) drive() {
	n.framesBehind = -n.engine.FramesAhead()
	n.rollbackDepth = 0

	if n.opts.Metrics != nil {
		n.opts.Metrics.FramesBehind.Set(n.framesBehind)
	}

	catchUp := n.framesBehind >= 1 && n.skipTimer == 0

	n.cycle(!catchUp)
	if catchUp && n.engine != nil && n.state != Exiting {
		n.cycle(true)
		n.skipTimer = catchUpCooldown
		if n.opts.Metrics != nil {
			n.opts.Metrics.CatchUps.Inc()
		}
	}

	n.skipTimer = max(n.skipTimer-1, 0)

	if n.opts.Metrics != nil && n.engine != nil {
		st := n.NetworkStats()
		n.opts.Metrics.Ping.Set(st.Ping.Seconds())
		n.opts.Metrics.Jitter.Set(st.Jitter.Seconds())
	}
}

// localInput is the combined input of all input sources.
func (n *Netplay) localInput() uint16 {
	var in uint16
	for _, src := range n.opts.Inputs {
		in |= src.Input()
	}
	return in
}

// cycle polls the engine and applies the events it returns.
func (n *Netplay) cycle(render bool) {
	n.engine.NetworkPoll()

	var in [inputSize]byte
	binary.LittleEndian.PutUint16(in[:], n.localInput())
	if err := n.engine.AddLocalInput(n.handle, in[:]); err != nil {
		logger.Log(n, "netplay", err)
	}

	for _, ev := range n.engine.SessionEvents() {
		n.sessionEvent(ev)
	}

	if n.state == Exiting {
		return
	}

	events := n.engine.UpdateSession()

	// only the last advance that is not part of a rollback is rendered
	last := -1
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == rollback.AdvanceEvent {
			if !events[i].RollingBack {
				last = i
			}
			break
		}
	}

	for i, ev := range events {
		switch ev.Kind {
		case rollback.LoadEvent:
			n.load(ev)
		case rollback.AdvanceEvent:
			n.advance(ev, render && i == last)
		case rollback.SaveEvent:
			n.save(ev)
		}
	}
}

func (n *Netplay) sessionEvent(ev rollback.SessionEvent) {
	logger.Log(n, "netplay", ev.String())

	switch ev.Kind {
	case rollback.SessionStarted:
		n.setState(Running)
		if n.opts.Metrics != nil {
			n.opts.Metrics.SessionsStarted.Inc()
		}
	case rollback.PlayerDisconnected:
		if n.opts.Metrics != nil {
			n.opts.Metrics.Disconnects.Inc()
		}
	case rollback.DesyncDetected:
		if n.opts.Metrics != nil {
			n.opts.Metrics.Desyncs.Inc()
		}
		n.handleDesync(ev)
		n.setState(Exiting)
	}

	if n.opts.OnSessionEvent != nil {
		n.opts.OnSessionEvent(ev)
	}
}

func (n *Netplay) advance(ev rollback.GameEvent, render bool) {
	var current, previous [numPlayers]uint16
	for p := range current {
		if p < len(ev.Inputs) && len(ev.Inputs[p]) >= inputSize {
			current[p] = binary.LittleEndian.Uint16(ev.Inputs[p])
		}
		previous[p] = n.history.Recall(p, ev.Frame-1)
		n.history.Record(p, ev.Frame, current[p])
	}

	if ev.RollingBack {
		n.rollbackDepth++
		if n.opts.Metrics != nil {
			n.opts.Metrics.RollbackFrames.Inc()
		}
	}

	n.replaying = ev.RollingBack
	n.sim.Step(current, previous, render)
	n.replaying = false
}

func (n *Netplay) save(ev rollback.GameEvent) {
	err := n.sim.Capture(ev.Saved.State)
	if err != nil {
		logger.Logf(n, "netplay", "save frame %d: %v", ev.Frame, err)
		return
	}

	if !n.opts.Diagnostics {
		return
	}

	d, err := n.rewind.Note(ev.Frame, ev.Saved.State)
	if err != nil {
		logger.Logf(n, "netplay", "save frame %d: %v", ev.Frame, err)
		return
	}
	ev.Saved.Checksum = d.Combined
}

func (n *Netplay) load(ev rollback.GameEvent) {
	err := n.sim.Restore(ev.Saved.State)
	if err != nil {
		logger.Logf(n, "netplay", "load frame %d: %v", ev.Frame, err)
	}
}

// handleDesync logs the section digests of the desynced frame and dumps the
// frame to disk. failure to dump the frame is logged but is otherwise
// ignored.
func (n *Netplay) handleDesync(ev rollback.SessionEvent) {
	n.desync = ev
	n.desynced = true

	logger.Logf(logger.Allow, "desync", "frame %d: local %016x remote %016x", ev.Frame, ev.Local, ev.Remote)

	e, ok := n.rewind.Get(ev.Frame)
	if !ok {
		logger.Logf(logger.Allow, "desync", "frame %d is no longer available", ev.Frame)
		return
	}
	for s := snapshot.Section(0); s < snapshot.NumSections; s++ {
		logger.Logf(logger.Allow, "desync", "%s: %016x", s, e.Digest.Sum[s])
	}

	if !n.dumps.Allow() {
		return
	}

	dir := n.opts.DumpDir
	if dir == "" {
		var err error
		dir, err = paths.ResourcePath("states")
		if err != nil {
			logger.Log(logger.Allow, "desync", err)
			return
		}
	}

	name, err := n.rewind.Dump(dir, n.handle, ev.Frame)
	if err != nil {
		logger.Log(logger.Allow, "desync", err)
		return
	}
	logger.Logf(logger.Allow, "desync", "frame %d dumped to %s", ev.Frame, name)
}
