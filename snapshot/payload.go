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

package snapshot

// PayloadMax is the capacity of a Payload.
const PayloadMax = 16

// Payload is a fixed capacity sequence with an explicit length. Entries beyond
// the length are not part of the sequence and may contain anything.
type Payload struct {
	Len   int16
	Items [PayloadMax]int16
}

func (p *Payload) length() int {
	if p.Len < 0 {
		return 0
	}
	if p.Len > PayloadMax {
		return PayloadMax
	}
	return int(p.Len)
}

// Slice returns the in-use entries of the payload.
func (p *Payload) Slice() []int16 {
	return p.Items[:p.length()]
}

// Push adds an entry to the end of the payload. Returns false if the payload
// is full.
func (p *Payload) Push(v int16) bool {
	n := p.length()
	if n >= PayloadMax {
		return false
	}
	p.Items[n] = v
	p.Len = int16(n + 1)
	return true
}

// Shift removes the first entry and moves the remaining entries down. The
// vacated entry at the end is left as it is.
func (p *Payload) Shift() {
	n := p.length()
	if n == 0 {
		return
	}
	copy(p.Items[:n-1], p.Items[1:n])
	p.Len = int16(n - 1)
}

// Truncate the payload to n entries. Entries beyond n are left as they are.
func (p *Payload) Truncate(n int) {
	if n < p.length() && n >= 0 {
		p.Len = int16(n)
	}
}

// Equal compares the in-use entries of two payloads.
func (p *Payload) Equal(o *Payload) bool {
	a := p.Slice()
	b := o.Slice()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// zeroTail clears the entries beyond the length.
func (p *Payload) zeroTail() {
	clear(p.Items[p.length():])
}
