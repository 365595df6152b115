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

package rollback

import (
	"fmt"
	"time"
)

// NetworkStats for a remote player.
type NetworkStats struct {
	// round trip time of the most recent ping
	LastPing time.Duration

	// average round trip time of recent pings
	AvgPing time.Duration

	// average deviation from AvgPing
	Jitter time.Duration
}

func (st NetworkStats) String() string {
	return fmt.Sprintf("ping %s (avg %s, jitter %s)", st.LastPing, st.AvgPing, st.Jitter)
}

// number of round trip times used for the network statistics
const pingSamples = 16

type pingStats struct {
	samples [pingSamples]time.Duration
	count   int
	last    time.Duration
}

func (p *pingStats) add(rtt time.Duration) {
	p.samples[p.count%pingSamples] = rtt
	p.count++
	p.last = rtt
}

func (p *pingStats) stats() NetworkStats {
	n := min(p.count, pingSamples)
	if n == 0 {
		return NetworkStats{}
	}

	var sum time.Duration
	for _, s := range p.samples[:n] {
		sum += s
	}
	avg := sum / time.Duration(n)

	var dev time.Duration
	for _, s := range p.samples[:n] {
		if s > avg {
			dev += s - avg
		} else {
			dev += avg - s
		}
	}

	return NetworkStats{
		LastPing: p.last,
		AvgPing:  avg,
		Jitter:   dev / time.Duration(n),
	}
}

// peer is a remote endpoint. there is exactly one remote player for each
// peer.
type peer struct {
	addr   string
	handle int
	queue  *inputQueue

	// the nonce sent by the peer in its synchronisation messages. messages
	// with a different nonce are ignored
	nonce uint32

	// synchronisation handshake
	syncRandom    uint32
	syncRemaining int
	syncSent      time.Time

	connected    bool
	disconnected bool
	lastRecv     time.Time

	// the last frame of local input acknowledged by the peer
	acked int

	// the most recent frame reported by the peer
	remoteFrame int

	lastPing time.Time
	ping     pingStats

	// checksums received from the peer that have not yet been compared
	sums []frameSum
}

func (p *peer) String() string {
	return fmt.Sprintf("%d (%s)", p.handle, p.addr)
}

// syncing is true while the handshake is in progress.
func (p *peer) syncing() bool {
	return !p.connected && !p.disconnected && p.syncRemaining > 0
}

// active is true if the peer has completed the handshake and has not
// disconnected.
func (p *peer) active() bool {
	return p.connected && !p.disconnected
}
