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

package digest

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jetsetilly/rollnet/snapshot"
)

// Sections is the digest of every section of a frame and of the frame as a
// whole.
type Sections struct {
	Sum      [snapshot.NumSections]uint64
	Combined uint64
}

func (d Sections) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("combined=%016x", d.Combined))
	for i := snapshot.Section(0); i < snapshot.NumSections; i++ {
		s.WriteString(fmt.Sprintf(" %s=%016x", i, d.Sum[i]))
	}
	return s.String()
}

// Diff returns the list of sections whose digests differ.
func (d Sections) Diff(o Sections) []snapshot.Section {
	var diff []snapshot.Section
	for i := snapshot.Section(0); i < snapshot.NumSections; i++ {
		if d.Sum[i] != o.Sum[i] {
			diff = append(diff, i)
		}
	}
	return diff
}

// Compute the digest of the frame. The frame should already have been
// sanitized.
func Compute(f *snapshot.Frame) (Sections, error) {
	var d Sections

	all := xxhash.New()
	b := make([]byte, 0, snapshot.Size)

	for s := snapshot.Section(0); s < snapshot.NumSections; s++ {
		start := len(b)

		var err error
		b, err = f.AppendSection(b, s)
		if err != nil {
			return Sections{}, err
		}

		d.Sum[s] = xxhash.Sum64(b[start:])
		_, _ = all.Write(b[start:])
	}

	d.Combined = all.Sum64()

	return d, nil
}

// ComputeBytes computes the digest of an encoded frame. The frame is decoded
// and sanitized before computing the digest. The encoded frame is not altered.
func ComputeBytes(raw []byte) (Sections, error) {
	var f snapshot.Frame
	if err := f.Decode(raw); err != nil {
		return Sections{}, err
	}
	snapshot.Sanitize(&f)
	return Compute(&f)
}
