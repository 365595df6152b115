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

// Package rollback is a peer-to-peer rollback engine. It keeps a simulation
// running on several peers in step by predicting the input of remote players
// and, when the real input arrives and differs from the prediction, asking
// the simulation to rewind and replay the frames that were simulated with the
// wrong input.
//
// The engine never touches the simulation directly. Instead, UpdateSession()
// returns a list of GameEvent values which the caller must apply in order:
//
//	SaveEvent       capture the state of the simulation into the buffer
//	                provided and, if desync detection is enabled, set the
//	                checksum of the state
//	LoadEvent       restore the state of the simulation from the buffer
//	AdvanceEvent    step the simulation by one frame with the inputs provided
//
// Session level events, such as a player connecting or a desync being
// detected, are returned by SessionEvents().
//
// A typical frame looks like this:
//
//	session.NetworkPoll()
//	session.AddLocalInput(handle, input)
//	for _, ev := range session.SessionEvents() {
//		...
//	}
//	for _, ev := range session.UpdateSession() {
//		...
//	}
//
// Communication with remote peers is through an Adapter. The UDPAdapter
// should be used for real sessions. The Loopback hub connects sessions in the
// same process and is useful for testing. The Lossy adapter wraps another
// adapter and drops a proportion of outgoing datagrams.
//
// A Session is not safe for concurrent use.
package rollback
