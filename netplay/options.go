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
	"time"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/rollback"
)

// DefaultPort is the port used by player one. In loopback mode, player two
// uses the next port.
const DefaultPort = 50000

// DefaultPacketLoss is the proportion of datagrams dropped when simulating a
// poor network.
const DefaultPacketLoss = 0.25

// Options for a new Netplay instance. The zero value is usable.
type Options struct {
	// both peers are on the local machine. each player listens on a different
	// port
	Loopback bool

	// the base port. DefaultPort if zero
	Port int

	// passed to the rollback engine. the engine's default if zero
	PredictionWindow int

	// enable desync detection and state dumps
	Diagnostics bool

	// directory for state dumps. the "states" resource directory if empty
	DumpDir string

	// proportion of outgoing datagrams to drop. between 0.0 and 1.0
	PacketLoss float64

	// create the network adapter listening on the port. a UDP adapter if nil
	Transport func(port int) (rollback.Adapter, error)

	// create the rollback engine. a rollback.Session if nil
	Engine func(cfg rollback.Config) (Engine, error)

	// sources of local input
	Inputs []InputSource

	// called for every session event after the event has been handled
	OnSessionEvent func(ev rollback.SessionEvent)

	// optional metrics
	Metrics *Metrics

	// source of the current time for the rollback engine. time.Now if nil
	Now func() time.Time
}

func (opts *Options) normalise() error {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.Port < 0 || opts.Port > 65534 {
		return curated.Errorf(InvalidOptions, "port out of range")
	}
	if opts.PredictionWindow < 0 {
		return curated.Errorf(InvalidOptions, "prediction window is negative")
	}
	if opts.PacketLoss < 0.0 || opts.PacketLoss > 1.0 {
		return curated.Errorf(InvalidOptions, "packet loss must be between 0.0 and 1.0")
	}

	if opts.Transport == nil {
		opts.Transport = func(port int) (rollback.Adapter, error) {
			udp, err := rollback.NewUDPAdapter(port)
			if err != nil {
				return nil, err
			}
			return udp, nil
		}
	}

	if opts.Engine == nil {
		opts.Engine = func(cfg rollback.Config) (Engine, error) {
			s, err := rollback.NewSession(cfg)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
	}

	return nil
}
