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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/netplay"
	"github.com/jetsetilly/rollnet/rollback"
	"github.com/jetsetilly/rollnet/sim"
)

// sentinal error returned by the runner when the duration has elapsed.
var timedOut = errors.New("performance timed out")

// the tick rate the session would run at if it was capped
const tickRate = 60

// clock shared by both peers. the clock advances by one tick's worth of time
// for every tick regardless of how quickly the tick is processed. this keeps
// the timeouts in the rollback engine meaningful while the session is running
// uncapped
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) tick() {
	c.now = c.now.Add(time.Second / tickRate)
}

// a peer in the performance session. input is a fixed pattern that changes
// often enough to cause regular rollbacks
type peer struct {
	np    *netplay.Netplay
	input uint16
	ticks int
}

func (p *peer) Input() uint16 {
	p.ticks++
	if p.ticks%7 == 0 {
		p.input ^= sim.ButtonRight | sim.ButtonA
	}
	return p.input
}

func newPeer(hub *rollback.Loopback, clk *clock, player int, loss float64, diagnostics bool) (*peer, error) {
	w, err := sim.NewWorld(sim.DefaultViewport)
	if err != nil {
		return nil, err
	}

	p := &peer{}
	p.np, err = netplay.NewNetplay(w, netplay.Options{
		Loopback:    true,
		Diagnostics: diagnostics,
		PacketLoss:  loss,
		Transport: func(port int) (rollback.Adapter, error) {
			return hub.Endpoint(fmt.Sprintf("127.0.0.1:%d", port)), nil
		},
		Inputs: []netplay.InputSource{p},
		Now:    clk.Now,
	})
	if err != nil {
		return nil, err
	}

	err = p.np.SetParams(player, "")
	if err != nil {
		return nil, err
	}

	return p, p.np.Begin()
}

// Check the performance of a two player netplay session. Both peers run in
// this process, without a tick rate cap, for the specified duration.
//
// Timing starts once both peers are running. Packet loss is applied to both
// peers and is a good way of forcing rollbacks.
func Check(output io.Writer, profile Profile, duration time.Duration, loss float64, diagnostics bool) error {
	hub := rollback.NewLoopback()
	clk := &clock{now: time.Unix(0, 0)}

	var peers [2]*peer
	for i := range peers {
		var err error
		peers[i], err = newPeer(hub, clk, i+1, loss, diagnostics)
		if err != nil {
			return curated.Errorf(PerformanceFail, err)
		}
	}

	step := func() {
		for _, p := range peers {
			p.np.Run()
		}
		clk.tick()
	}

	// wait for the handshake to complete. this should take a handful of ticks
	// but allow a generous amount of time for lossy networks
	const maxLeadTicks = 10 * tickRate
	for i := 0; i < maxLeadTicks; i++ {
		if peers[0].np.State() == netplay.Running && peers[1].np.State() == netplay.Running {
			break
		}
		step()
	}
	if peers[0].np.State() != netplay.Running || peers[1].np.State() != netplay.Running {
		return curated.Errorf(PerformanceFail, "session did not start")
	}

	var numTicks int
	var rollbackFrames int
	var maxRollback int

	runner := func() error {
		end := time.Now().Add(duration)
		for {
			step()
			numTicks++

			for _, p := range peers {
				if !p.np.IsRunning() {
					return curated.Errorf(PerformanceFail, "session ended unexpectedly")
				}
				r := p.np.NetworkStats().Rollback
				rollbackFrames += r
				maxRollback = max(maxRollback, r)
			}

			// checking the time every tick is relatively expensive
			if numTicks%tickRate == 0 && time.Now().After(end) {
				return timedOut
			}
		}
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return err
	}

	// end the session cleanly
	for _, p := range peers {
		p.np.HandleMenuExit()
		p.np.Run()
	}

	fps, accuracy := CalcFPS(tickRate, numTicks, duration.Seconds())
	fmt.Fprintf(output, "%.2f ticks per second (%d ticks in %.2f seconds) %.1f%%\n", fps, numTicks, duration.Seconds(), accuracy)
	fmt.Fprintf(output, "%d frames rolled back (deepest %d)\n", rollbackFrames, maxRollback)

	return nil
}
