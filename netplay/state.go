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

// SessionState is the state of the netplay session.
type SessionState int

// List of valid SessionState values.
const (
	Idle SessionState = iota
	Transitioning
	Connecting
	Running
	Exiting
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	case Connecting:
		return "connecting"
	case Running:
		return "running"
	case Exiting:
		return "exiting"
	}
	return "unknown"
}
