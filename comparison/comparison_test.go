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

package comparison_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/rollnet/comparison"
	"github.com/jetsetilly/rollnet/snapshot"
	"github.com/jetsetilly/rollnet/test"
)

func TestIdentical(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	r := comparison.Compare(a, []byte{1, 2, 3, 4})
	test.ExpectSuccess(t, r.Identical)
	test.ExpectEquality(t, r.Offset, -1)
	test.ExpectEquality(t, r.Count, 0)

	w := &test.CompareWriter{}
	r.Write(w)
	test.ExpectSuccess(t, w.Compare("size A: 4\nsize B: 4\nidentical\n"))
}

func TestFirstDifference(t *testing.T) {
	a := make([]byte, 100)
	b := make([]byte, 100)
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(i)
	}
	b[40] = 0xff
	b[90] = 0xff

	r := comparison.Compare(a, b)
	test.ExpectFailure(t, r.Identical)
	test.ExpectEquality(t, r.Offset, 40)
	test.ExpectEquality(t, r.A, byte(40))
	test.ExpectEquality(t, r.B, byte(0xff))
	test.ExpectEquality(t, r.Count, 2)
	test.ExpectEquality(t, len(r.ContextA), 32)
	test.ExpectEquality(t, r.ContextA[0], byte(24))
	test.ExpectEquality(t, r.ContextB[16], byte(0xff))

	// context is clipped at the start of the data
	b[40] = 40
	b[3] = 0
	r = comparison.Compare(a, b)
	test.ExpectEquality(t, r.Offset, 3)
	test.ExpectEquality(t, len(r.ContextA), 19)

	// sections are not reported unless the data is the size of a frame
	test.ExpectEquality(t, len(r.Sections), 0)
}

func TestDifferentSizes(t *testing.T) {
	r := comparison.Compare([]byte{1, 2, 3}, []byte{1, 2})
	test.ExpectFailure(t, r.Identical)
	test.ExpectEquality(t, r.Offset, 2)
	test.ExpectEquality(t, r.Count, 0)

	w := &test.CompareWriter{}
	r.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "sizes differ"))
}

func TestFrames(t *testing.T) {
	var fa, fb snapshot.Frame
	fb.Scene.Stage = 0x15
	fb.Effects[3].Timer = 9

	a := make([]byte, snapshot.Size)
	b := make([]byte, snapshot.Size)
	test.DemandSuccess(t, fa.Encode(a))
	test.DemandSuccess(t, fb.Encode(b))

	dir := t.TempDir()
	pa := filepath.Join(dir, "0_1549")
	pb := filepath.Join(dir, "1_1549")
	test.DemandSuccess(t, os.WriteFile(pa, a, 0o644))
	test.DemandSuccess(t, os.WriteFile(pb, b, 0o644))

	r, err := comparison.CompareFiles(pa, pb)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, r.Identical)

	s, ok := snapshot.SectionAt(r.Offset)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, snapshot.SectionScene)

	test.DemandEquality(t, len(r.Sections), 2)
	test.ExpectEquality(t, r.Sections[0], snapshot.SectionScene)
	test.ExpectEquality(t, r.Sections[1], snapshot.SectionEffects)

	w := &test.CompareWriter{}
	r.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "in scene"))

	_, err = comparison.CompareFiles(pa, filepath.Join(dir, "missing"))
	test.ExpectFailure(t, err)
}
