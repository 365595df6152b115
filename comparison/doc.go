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

// Package comparison compares two state dumps written by the rewind package.
//
// When a desync occurs each peer dumps its own copy of the state for the
// frame. Comparing the two dumps shows the first byte at which the states
// differ, the section of the state that the byte belongs to, and the bytes
// either side of it.
package comparison
