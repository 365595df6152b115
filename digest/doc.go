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

// Package digest computes digests of the deterministic state of the simulation.
//
// A digest is computed for every section of a snapshot.Frame along with a
// digest of the entire frame. The combined digest is the value exchanged with
// the remote peer for desync detection. The section digests are used to
// identify which part of the simulation has diverged when a desync occurs.
//
// Digests should only be computed from sanitized frames. ComputeBytes() will
// sanitize a copy of the encoded frame before computing the digest.
package digest
