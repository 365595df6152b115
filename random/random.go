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

package random

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// the base seed for all non-rewindable random numbers
var baseSeed int64

// every instance of Random is seeded differently
var instances atomic.Int64

func init() {
	baseSeed = time.Now().UnixNano()
}

// mix is the splitmix64 finaliser. it spreads adjacent index values across the
// whole of the 64bit range.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Rewindable returns a value in the range [0, n) that is determined entirely by
// the index value. n must be greater than zero.
func Rewindable(index uint16, n int) int {
	return int(mix(uint64(index)) % uint64(n))
}

// Random is a source of non-rewindable random numbers.
type Random struct {
	rnd *rand.Rand

	// use zero seed rather than the random base seed. this is only really
	// useful for tests where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom() *Random {
	return &Random{}
}

func (rnd *Random) rand() *rand.Rand {
	if rnd.rnd == nil {
		if rnd.ZeroSeed {
			rnd.rnd = rand.New(rand.NewSource(0))
		} else {
			rnd.rnd = rand.New(rand.NewSource(baseSeed + instances.Add(1)))
		}
	}
	return rnd.rnd
}

// NoRewind returns a value in the range [0, n). n must be greater than zero.
func (rnd *Random) NoRewind(n int) int {
	return rnd.rand().Intn(n)
}

// Float64 returns a value in the range [0.0, 1.0).
func (rnd *Random) Float64() float64 {
	return rnd.rand().Float64()
}

// Fill the slice with random bytes.
func (rnd *Random) Fill(b []byte) {
	rnd.rand().Read(b)
}
