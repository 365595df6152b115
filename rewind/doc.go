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

// Package rewind keeps a short history of the captured states of the
// simulation, indexed by frame number, for the purposes of desync diagnosis.
//
// Every state noted by the Rewind type is kept in two forms: the raw state, as
// it was captured by the simulation, and a sanitized copy of the state. The
// digest of the sanitized copy is computed at the same time and returned to
// the caller, which will normally use it as the checksum for the frame.
//
// The history is a ring and so only the most recent frames are available.
// When a desync is reported for a frame that is still in the history, the
// Dump() function will write the state to disk. The files written for a frame
// are named after the handle of the local player and the frame number:
//
//	<handle>_<frame>            the raw state
//	<handle>_<frame>.sanitized  the sanitized state
//	<handle>_<frame>.dot        graphviz description of the sanitized state
//
// The raw dumps of the two peers can be compared with the comparison package.
package rewind
