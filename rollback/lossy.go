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

package rollback

import (
	"github.com/jetsetilly/rollnet/random"
)

// Lossy wraps another Adapter and drops a proportion of the datagrams sent
// through it. It is used to test the behaviour of a session on a poor
// network.
type Lossy struct {
	Adapter

	// the proportion of datagrams to drop. between 0.0 and 1.0
	loss float64
	rnd  *random.Random

	Sent    int
	Dropped int
}

// NewLossy is the preferred method of initialisation for the Lossy type. The
// loss value is clamped to the range 0.0 to 1.0.
func NewLossy(adapter Adapter, loss float64) *Lossy {
	return &Lossy{
		Adapter: adapter,
		loss:    min(max(loss, 0.0), 1.0),
		rnd:     random.NewRandom(),
	}
}

// SendData implements the Adapter interface.
func (l *Lossy) SendData(addr string, data []byte) error {
	l.Sent++
	if l.rnd.Float64() < l.loss {
		l.Dropped++
		return nil
	}
	return l.Adapter.SendData(addr, data)
}

// Resolve implements the Resolver interface. The address is returned
// unchanged if the wrapped adapter is not a Resolver.
func (l *Lossy) Resolve(addr string) (string, error) {
	if r, ok := l.Adapter.(Resolver); ok {
		return r.Resolve(addr)
	}
	return addr, nil
}
