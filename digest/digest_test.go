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

package digest_test

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/jetsetilly/rollnet/digest"
	"github.com/jetsetilly/rollnet/snapshot"
	"github.com/jetsetilly/rollnet/test"
)

func frame(seed int16) snapshot.Frame {
	var f snapshot.Frame
	for i := range f.Players {
		f.Players[i].PositionX = seed + int16(i)
		f.Players[i].Vitality = 160
		f.Players[i].CharTable = snapshot.Ref(0xc0000000 + uint64(i))
		f.Players[i].Palette = 0x0010 | snapshot.RenderBits
		f.Players[i].ScreenX = 100
	}
	f.Scene.GameTimer = 99
	f.Scene.ViewScale = 2
	for i := range f.Effects {
		f.Effects[i].Myself = int16(i)
		f.Effects[i].Active = i < 4
		f.Effects[i].Timer = seed
		f.Effects[i].Sprite = snapshot.Ref(0xe0000000 + uint64(i))
		f.Effects[i].Payload.Len = 1
		f.Effects[i].Payload.Items = [snapshot.PayloadMax]int16{seed, 1, 2, 3}
	}
	return f
}

func encode(t *testing.T, f *snapshot.Frame) []byte {
	t.Helper()
	b := make([]byte, snapshot.Size)
	test.DemandSuccess(t, f.Encode(b))
	return b
}

func TestCombinedIsWholeFrame(t *testing.T) {
	f := frame(1)
	snapshot.Sanitize(&f)

	d, err := digest.Compute(&f)
	test.DemandSuccess(t, err)

	// the combined digest is the digest of the entire encoded frame
	test.ExpectEquality(t, d.Combined, xxhash.Sum64(encode(t, &f)))

	// and each section digest is the digest of the encoded section
	for s := snapshot.Section(0); s < snapshot.NumSections; s++ {
		b, err := f.AppendSection(nil, s)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, d.Sum[s], xxhash.Sum64(b), s)
	}
}

func TestDeterminism(t *testing.T) {
	a := frame(3)
	b := frame(3)

	// differences in process layout and rendering configuration
	b.Players[0].CharTable = 0x55550000
	b.Players[1].ScreenX = -20
	b.Players[1].Palette = 0x0010
	b.Scene.ViewScale = 1
	b.Effects[0].Sprite = 0
	b.Effects[2].Payload.Items[3] = 1000
	b.Effects[10].PositionY = 77

	da, err := digest.ComputeBytes(encode(t, &a))
	test.DemandSuccess(t, err)
	db, err := digest.ComputeBytes(encode(t, &b))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, da, db)
	test.ExpectEquality(t, len(da.Diff(db)), 0)
}

func TestSectionIsolation(t *testing.T) {
	a := frame(3)
	b := frame(3)
	b.Scene.GameTimer ^= 0x01

	da, err := digest.ComputeBytes(encode(t, &a))
	test.DemandSuccess(t, err)
	db, err := digest.ComputeBytes(encode(t, &b))
	test.DemandSuccess(t, err)

	test.ExpectInequality(t, da.Combined, db.Combined)

	diff := da.Diff(db)
	test.DemandEquality(t, len(diff), 1)
	test.ExpectEquality(t, diff[0], snapshot.SectionScene)

	c := frame(3)
	c.Players[1].Vitality--
	c.Effects[1].Payload.Items[0]++
	dc, err := digest.ComputeBytes(encode(t, &c))
	test.DemandSuccess(t, err)

	diff = da.Diff(dc)
	test.DemandEquality(t, len(diff), 2)
	test.ExpectEquality(t, diff[0], snapshot.SectionPlayer1)
	test.ExpectEquality(t, diff[1], snapshot.SectionEffects)
}

func TestComputeBytesLeavesRaw(t *testing.T) {
	f := frame(2)
	raw := encode(t, &f)
	cpy := string(raw)

	_, err := digest.ComputeBytes(raw)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(raw), cpy)

	_, err = digest.ComputeBytes(raw[1:])
	test.ExpectFailure(t, err)
}
