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

// Package snapshot defines the deterministic state of the simulation as a
// single aggregate, the Frame type, and its fixed-size binary layout.
//
// The Frame is the live state of the simulation and is also the unit of
// capture and restore. Encode() and Decode() are exact inverses and a Frame
// encodes to exactly Size bytes.
//
// Some fields are part of the layout but are not part of the deterministic
// state:
//
//   - Ref fields are addresses of live objects in the local process. They
//     differ between processes. They must survive a capture/restore round trip
//     on the same process so they are never cleared in an encoded buffer that
//     may be restored.
//
//   - Palette values carry bits that are set by the renderer.
//
//   - Screen and viewport fields are entirely derived by the renderer and
//     depend on local display configuration.
//
//   - The unused tail of a Payload and the contents of an inactive effect slot
//     are never initialised by the simulation.
//
// Sanitize() normalises all of these. It must only ever be used on a scratch
// copy that will not be restored. Two peers in the same logical state produce
// identical sanitized frames.
//
// The layout is divided into sections (players, scene, scheduler, effects).
// Sections are used by the digest package to identify which part of the state
// has diverged between peers.
package snapshot
