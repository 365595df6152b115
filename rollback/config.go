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
	"time"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/logger"
)

// Sentinal error patterns.
const (
	InvalidConfig   = "rollback: invalid config: %s"
	ActorError      = "rollback: cannot add actor: %s"
	UnknownHandle   = "rollback: unknown handle (%d)"
	BadInputSize    = "rollback: input is %d bytes, expected %d"
	AdapterError    = "rollback: adapter: %v"
	MalformedData   = "rollback: malformed datagram: %s"
	NotLocalPlayer  = "rollback: handle %d is not a local player"
	NotRemotePlayer = "rollback: handle %d is not a remote player"
)

// MaxPlayers is the maximum number of players in a session.
const MaxPlayers = 4

// MaxInputSize is the maximum size of the input for a single player.
const MaxInputSize = 16

// Config for a new session. Zero values are replaced by the default value for
// the field, except for NumPlayers, InputSize and StateSize which must be
// specified.
type Config struct {
	NumPlayers int
	InputSize  int
	StateSize  int

	// the maximum number of frames the local simulation is allowed to run
	// ahead of the last frame for which all input is known
	PredictionWindow int

	// exchange checksums of confirmed frames with remote peers
	DesyncDetection bool

	// number of round trips in the synchronisation handshake
	SyncPackets int

	// the time to wait for a synchronisation reply before sending another
	// request
	SyncRetryInterval time.Duration

	// how often to measure the round trip time to remote peers
	PingInterval time.Duration

	// a remote peer that has been silent for this duration is disconnected
	DisconnectTimeout time.Duration

	// the duration of a single frame. used to convert round trip times into
	// frames
	FrameDuration time.Duration

	// the source of the current time
	Now func() time.Time

	// permission for log entries made by the session
	Logging logger.Permission
}

// List of default config values.
const (
	DefaultPredictionWindow  = 10
	DefaultSyncPackets       = 5
	DefaultSyncRetryInterval = 200 * time.Millisecond
	DefaultPingInterval      = 250 * time.Millisecond
	DefaultDisconnectTimeout = 5 * time.Second
	DefaultFrameDuration     = time.Second / 60
)

// normalise replaces zero values with defaults and checks that the config is
// usable.
func (cfg *Config) normalise() error {
	if cfg.NumPlayers < 1 || cfg.NumPlayers > MaxPlayers {
		return curated.Errorf(InvalidConfig, "number of players")
	}
	if cfg.InputSize < 1 || cfg.InputSize > MaxInputSize {
		return curated.Errorf(InvalidConfig, "input size")
	}
	if cfg.StateSize < 1 {
		return curated.Errorf(InvalidConfig, "state size")
	}

	if cfg.PredictionWindow == 0 {
		cfg.PredictionWindow = DefaultPredictionWindow
	}
	if cfg.PredictionWindow < 1 || cfg.PredictionWindow > maxRun {
		return curated.Errorf(InvalidConfig, "prediction window")
	}

	if cfg.SyncPackets == 0 {
		cfg.SyncPackets = DefaultSyncPackets
	}
	if cfg.SyncPackets < 1 {
		return curated.Errorf(InvalidConfig, "sync packets")
	}

	if cfg.SyncRetryInterval == 0 {
		cfg.SyncRetryInterval = DefaultSyncRetryInterval
	}
	if cfg.PingInterval == 0 {
		cfg.PingInterval = DefaultPingInterval
	}
	if cfg.DisconnectTimeout == 0 {
		cfg.DisconnectTimeout = DefaultDisconnectTimeout
	}
	if cfg.FrameDuration == 0 {
		cfg.FrameDuration = DefaultFrameDuration
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logging == nil {
		cfg.Logging = logger.Allow
	}

	return nil
}
