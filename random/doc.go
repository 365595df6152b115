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

// Package random provides the two kinds of randomness needed by a rollback
// simulation.
//
// Rewindable values are determined entirely by an index that is itself part of
// the simulation state. Two peers with the same index produce the same value,
// and a simulation that is rewound and re-simulated produces the same value
// again. Simulation logic must only ever use rewindable values.
//
// NoRewind values differ between processes. They are used for things that
// must never influence the simulation but do need to differ between peers,
// such as the contents of uninitialised memory or simulated packet loss.
package random
