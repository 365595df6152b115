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

// Package inputhistory keeps a short history of the input value for each
// player, indexed by frame number.
//
// The history is a ring. A frame is stored in the slot given by the frame
// number modulo the capacity of the history and so recording a frame will
// overwrite the entry of any earlier frame that shared the slot. Recalling a
// frame that was never recorded, or that has been overwritten, returns zero.
//
// The history is used to reconstruct the input of the previous frame, which
// some of the simulation logic depends on, even when the rollback engine only
// supplies the input for the current frame.
package inputhistory
