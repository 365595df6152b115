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

import "fmt"

// SessionEventKind identifies the type of a SessionEvent.
type SessionEventKind int

// List of valid SessionEventKind values.
const (
	PlayerSyncing SessionEventKind = iota
	PlayerConnected
	PlayerDisconnected
	SessionStarted
	DesyncDetected
)

func (k SessionEventKind) String() string {
	switch k {
	case PlayerSyncing:
		return "player syncing"
	case PlayerConnected:
		return "player connected"
	case PlayerDisconnected:
		return "player disconnected"
	case SessionStarted:
		return "session started"
	case DesyncDetected:
		return "desync detected"
	}
	return "unknown session event"
}

// SessionEvent is an event concerning the session as a whole rather than the
// simulation.
type SessionEvent struct {
	Kind SessionEventKind

	// the player the event refers to. not used by SessionStarted
	Handle int

	// progress of the synchronisation handshake. PlayerSyncing only
	Count int
	Total int

	// the frame that has desynced and the checksums of the local and remote
	// states for the frame. DesyncDetected only
	Frame  int
	Local  uint64
	Remote uint64
}

func (ev SessionEvent) String() string {
	switch ev.Kind {
	case PlayerSyncing:
		return fmt.Sprintf("%s: %d (%d/%d)", ev.Kind, ev.Handle, ev.Count, ev.Total)
	case PlayerConnected, PlayerDisconnected:
		return fmt.Sprintf("%s: %d", ev.Kind, ev.Handle)
	case DesyncDetected:
		return fmt.Sprintf("%s: frame %d (local %016x, remote %016x)", ev.Kind, ev.Frame, ev.Local, ev.Remote)
	}
	return ev.Kind.String()
}

// GameEventKind identifies the type of a GameEvent.
type GameEventKind int

// List of valid GameEventKind values.
const (
	AdvanceEvent GameEventKind = iota
	SaveEvent
	LoadEvent
)

func (k GameEventKind) String() string {
	switch k {
	case AdvanceEvent:
		return "advance"
	case SaveEvent:
		return "save"
	case LoadEvent:
		return "load"
	}
	return "unknown game event"
}

// SavedState is an entry in the session's state buffer.
type SavedState struct {
	Frame    int
	State    []byte
	Checksum uint64
}

// GameEvent is an instruction to the simulation.
type GameEvent struct {
	Kind  GameEventKind
	Frame int

	// input for every player, indexed by handle. AdvanceEvent only
	Inputs [][]byte

	// the frame is being simulated again because of a misprediction.
	// AdvanceEvent only
	RollingBack bool

	// the state to fill (SaveEvent) or to restore (LoadEvent). for a
	// SaveEvent, the length of the State buffer is the StateSize given in the
	// session's config. the Checksum field should be set if desync detection
	// is enabled
	Saved *SavedState
}

func (ev GameEvent) String() string {
	if ev.Kind == AdvanceEvent && ev.RollingBack {
		return fmt.Sprintf("%s %d (rollback)", ev.Kind, ev.Frame)
	}
	return fmt.Sprintf("%s %d", ev.Kind, ev.Frame)
}
