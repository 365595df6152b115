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

// Package sim is a deterministic, frame stepped, two player arena game. It is
// the simulation that the netplay package keeps synchronised between two
// peers.
//
// All the state of the game is held in a single snapshot.Frame. The game logic
// only ever reads the deterministic fields of the frame. The fields that are
// live addresses (snapshot.Ref) point into an asset arena whose location
// differs from process to process, and the fields that are derived by the
// renderer depend on the local viewport. These fields are written by the game
// but never read by it.
//
// Effect slots that are not in use, and the unused entries of a payload, are
// never read either. When a World is created these are filled with random
// bytes, in the same way that uninitialised memory might contain anything at
// all.
//
// The game progresses through a series of phases:
//
//	Boot -> Attract
//	Versus -> Select -> Fight <-> Result -> Select
//
// The Versus phase is entered by ResetBaseline() and leads to the Select
// phase after a fixed number of frames without requiring any input. The Select
// phase is the point at which two peers are synchronised. See
// ReachedSyncPoint().
package sim
