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
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/jetsetilly/rollnet/assert"
	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/digest"
	"github.com/jetsetilly/rollnet/inputhistory"
	"github.com/jetsetilly/rollnet/logger"
	"github.com/jetsetilly/rollnet/rewind"
	"github.com/jetsetilly/rollnet/rollback"
	"golang.org/x/time/rate"
)

// Sentinal error patterns.
const (
	InvalidOptions = "netplay: invalid options: %s"
	InvalidPlayer  = "netplay: player must be 1 or 2 (not %d)"
	InvalidRemote  = "netplay: remote address: %s"
	SessionActive  = "netplay: session is active (%s)"
	NoParams       = "netplay: SetParams() has not been called"
	ConnectError   = "netplay: cannot connect: %v"
	MetricsError   = "netplay: metrics: %v"
)

// the number of players in a session
const numPlayers = 2

// the size of the input for a single player
const inputSize = 2

// minimum number of ticks between catch up frames
const catchUpCooldown = 60

// at most three state dumps in quick succession and then no more than one a
// second
const (
	dumpBurst    = 3
	dumpInterval = time.Second
)

// NetworkStats for the remote player.
type NetworkStats struct {
	Ping   time.Duration
	Jitter time.Duration

	// number of frames simulated again during the most recent tick
	Rollback int

	// estimate of how far the local simulation is behind the remote
	// simulation. negative if the local simulation is ahead
	FramesBehind float64
}

func (st NetworkStats) String() string {
	return fmt.Sprintf("ping %s jitter %s rollback %d behind %.1f", st.Ping, st.Jitter, st.Rollback, st.FramesBehind)
}

// Netplay keeps a simulation in step with a simulation on a remote peer.
type Netplay struct {
	sim  Simulation
	opts Options

	state SessionState

	// player slot (1 or 2) and the engine handle of the local player. the
	// handle of the remote player is the other handle
	player     int
	handle     int
	localPort  int
	remoteAddr string

	engine Engine

	history *inputhistory.History
	rewind  *rewind.Rewind

	// throttles state dumps
	dumps *rate.Limiter

	// number of ticks before another catch up frame is allowed
	skipTimer int

	framesBehind  float64
	rollbackDepth int

	// frames are being simulated again. logging is suppressed while this is
	// true
	replaying bool

	// the most recent desync event. valid if desynced is true
	desync   rollback.SessionEvent
	desynced bool

	// Run() must always be called from the same goroutine
	goroutine assert.SameGoRoutine
}

// NewNetplay is the preferred method of initialisation for the Netplay type.
func NewNetplay(sim Simulation, opts Options) (*Netplay, error) {
	err := opts.normalise()
	if err != nil {
		return nil, err
	}

	n := &Netplay{
		sim:     sim,
		opts:    opts,
		history: inputhistory.NewHistory(numPlayers, inputhistory.DefaultCapacity),
		rewind:  rewind.NewRewind(rewind.DefaultCapacity),
		dumps:   rate.NewLimiter(rate.Every(dumpInterval), dumpBurst),
	}
	n.setState(Idle)

	return n, nil
}

// AllowLogging implements the logger.Permission interface.
func (n *Netplay) AllowLogging() bool {
	return !n.replaying
}

func (n *Netplay) setState(state SessionState) {
	if n.state != state {
		logger.Logf(n, "netplay", "%s -> %s", n.state, state)
	}
	n.state = state
	if n.opts.Metrics != nil {
		n.opts.Metrics.State.Set(float64(state))
	}
}

// SetParams sets the player slot (1 or 2) and the address of the remote peer.
// In loopback mode the remote address is ignored. Otherwise, if the remote
// address has no port then the port from the options is used.
//
// Returns an error if a session is active.
func (n *Netplay) SetParams(player int, remote string) error {
	if n.state != Idle {
		return curated.Errorf(SessionActive, n.state)
	}
	if player != 1 && player != 2 {
		return curated.Errorf(InvalidPlayer, player)
	}

	var localPort int
	var remoteAddr string

	if n.opts.Loopback {
		localPort = n.opts.Port + player - 1
		remoteAddr = net.JoinHostPort("127.0.0.1", strconv.Itoa(n.opts.Port+2-player))
	} else {
		if remote == "" {
			return curated.Errorf(InvalidRemote, "no address")
		}
		localPort = n.opts.Port
		if _, _, err := net.SplitHostPort(remote); err == nil {
			remoteAddr = remote
		} else {
			remoteAddr = net.JoinHostPort(remote, strconv.Itoa(n.opts.Port))
		}
	}

	n.player = player
	n.handle = player - 1
	n.localPort = localPort
	n.remoteAddr = remoteAddr

	logger.Logf(n, "netplay", "player %d on port %d. remote is %s", player, localPort, remoteAddr)

	return nil
}

// Player returns the player slot set by SetParams(). Zero if SetParams() has
// not been called.
func (n *Netplay) Player() int {
	return n.player
}

// RemoteAddr returns the address of the remote peer set by SetParams().
func (n *Netplay) RemoteAddr() string {
	return n.remoteAddr
}

// LocalPort returns the port the local peer listens on.
func (n *Netplay) LocalPort() int {
	return n.localPort
}

// Begin resets the simulation to the baseline and starts the session. Returns
// an error if a session is already active.
func (n *Netplay) Begin() error {
	if n.state != Idle {
		err := curated.Errorf(SessionActive, n.state)
		logger.Log(n, "netplay", err)
		return err
	}
	if n.player == 0 {
		return curated.Errorf(NoParams)
	}

	n.sim.ResetBaseline()
	n.history.Reset()
	n.rewind.Reset()
	n.skipTimer = 0
	n.framesBehind = 0
	n.rollbackDepth = 0
	n.desynced = false

	n.setState(Transitioning)

	return nil
}

// Run should be called once per host tick.
func (n *Netplay) Run() {
	if !n.goroutine.Check() {
		logger.Log(logger.Allow, "netplay", "Run() called from more than one goroutine")
	}

	switch n.state {
	case Idle:
	case Transitioning:
		if !n.sim.ReachedSyncPoint() {
			n.sim.Step([numPlayers]uint16{}, [numPlayers]uint16{}, true)
			return
		}
		err := n.connect()
		if err != nil {
			logger.Log(n, "netplay", err)
			n.setState(Exiting)
			return
		}
		n.setState(Connecting)
	case Connecting, Running:
		n.drive()
	case Exiting:
		n.teardown()
		n.setState(Idle)
	}
}

// IsRunning returns true if a session is active. The host should continue to
// call Run() until IsRunning() returns false.
func (n *Netplay) IsRunning() bool {
	return n.state != Idle
}

// State returns the current session state.
func (n *Netplay) State() SessionState {
	return n.state
}

// HandleMenuExit ends the session. The session will be idle after the next
// call to Run().
func (n *Netplay) HandleMenuExit() {
	if n.state == Idle || n.state == Exiting {
		return
	}
	n.setState(Exiting)
}

// NetworkStats returns the statistics for the remote player.
func (n *Netplay) NetworkStats() NetworkStats {
	st := NetworkStats{
		Rollback:     n.rollbackDepth,
		FramesBehind: n.framesBehind,
	}

	if n.engine != nil {
		if rst, err := n.engine.NetworkStats(1 - n.handle); err == nil {
			st.Ping = rst.AvgPing
			st.Jitter = rst.Jitter
		}
	}

	return st
}

// LastDesync returns the most recent desync reported by the engine. Returns
// false if there has been no desync since the session began.
func (n *Netplay) LastDesync() (rollback.SessionEvent, bool) {
	return n.desync, n.desynced
}

// Digest returns the section digests of the sanitized state saved for the
// frame. Only recent frames are available and only when diagnostics are
// enabled.
func (n *Netplay) Digest(frame int) (digest.Sections, bool) {
	e, ok := n.rewind.Get(frame)
	if !ok {
		return digest.Sections{}, false
	}
	return e.Digest, true
}

// connect creates the rollback engine and adds the players. the player in
// slot 1 is always handle 0.
func (n *Netplay) connect() error {
	adapter, err := n.opts.Transport(n.localPort)
	if err != nil {
		return curated.Errorf(ConnectError, err)
	}
	if n.opts.PacketLoss > 0.0 {
		adapter = rollback.NewLossy(adapter, n.opts.PacketLoss)
	}

	engine, err := n.opts.Engine(rollback.Config{
		NumPlayers:       numPlayers,
		InputSize:        inputSize,
		StateSize:        n.sim.StateSize(),
		PredictionWindow: n.opts.PredictionWindow,
		DesyncDetection:  n.opts.Diagnostics,
		Now:              n.opts.Now,
		Logging:          n,
	})
	if err != nil {
		_ = adapter.Close()
		return curated.Errorf(ConnectError, err)
	}
	engine.SetAdapter(adapter)

	kinds := []rollback.ActorKind{rollback.LocalPlayer, rollback.RemotePlayer}
	if n.handle == 1 {
		kinds[0], kinds[1] = kinds[1], kinds[0]
	}
	for _, k := range kinds {
		addr := ""
		if k == rollback.RemotePlayer {
			addr = n.remoteAddr
		}
		if _, err := engine.AddActor(k, addr); err != nil {
			_ = engine.Close()
			return curated.Errorf(ConnectError, err)
		}
	}

	n.engine = engine

	return nil
}

func (n *Netplay) teardown() {
	if n.engine == nil {
		return
	}
	err := n.engine.Close()
	if err != nil {
		logger.Log(n, "netplay", err)
	}
	n.engine = nil
}
