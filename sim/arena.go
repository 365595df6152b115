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

package sim

import (
	"github.com/jetsetilly/rollnet/random"
	"github.com/jetsetilly/rollnet/snapshot"
)

// regions of the asset arena
const (
	regionCharTable = 0x0000_0000
	regionPlayer    = 0x0100_0000
	regionTask      = 0x0200_0000
	regionSprite    = 0x0300_0000
	regionStride    = 0x400
)

// arena is the location of the game assets in memory. the base address is
// different for every instance.
type arena struct {
	base uint64
}

func newArena(rnd *random.Random) arena {
	return arena{
		base: 0x7f00_0000_0000 + uint64(rnd.NoRewind(1<<16))<<24,
	}
}

// ref returns the address of an entry in a region of the arena.
func (a arena) ref(region int, index int) snapshot.Ref {
	return snapshot.Ref(a.base + uint64(region) + uint64(index)*regionStride)
}
