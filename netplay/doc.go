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

// Package netplay runs a Simulation in step with a remote peer using a
// rollback Engine.
//
// The Netplay type is a state machine driven by calls to Run(), once per host
// tick. SetParams() and Begin() start the session:
//
//	Idle -> Transitioning -> Connecting -> Running -> Exiting -> Idle
//
// In the Transitioning state the simulation is stepped locally, with no
// input, until it reaches its sync point. Both peers will reach the sync
// point in an identical state because Begin() resets the simulation to a
// known baseline. The rollback engine is then configured and the session
// waits in the Connecting state for the remote peer. Once the engine reports
// that the session has started, the state changes to Running.
//
// In the Connecting and Running states, every call to Run() polls the engine
// and applies the game events it returns to the simulation. Rendering is
// suppressed for frames that are being simulated again because of a rollback.
// Only the last frame simulated in a tick is rendered.
//
// If the engine reports that the local simulation is behind the remote
// simulation, an extra frame is simulated. This happens at most once every
// 60 ticks.
//
// When diagnostics are enabled, the checksum of every saved state is taken
// from a sanitized copy of the state. If the engine reports a desync, the
// section digests of the frame are logged and the frame is dumped to disk
// for later comparison. A desync ends the session.
//
// HandleMenuExit() ends the session at the next call to Run().
package netplay
