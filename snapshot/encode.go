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

import (
	"encoding/binary"

	"github.com/jetsetilly/rollnet/curated"
)

// Sentinal error patterns.
const (
	WrongSize   = "snapshot: wrong buffer size (%d bytes, expected %d)"
	EncodeError = "snapshot: encode: %v"
	DecodeError = "snapshot: decode: %v"
)

// byte order of the encoded frame
var order = binary.LittleEndian

// Size is the number of bytes in an encoded Frame.
var Size = binary.Size(Frame{})

// Encode the frame into dst. The length of dst must be exactly Size.
func (f *Frame) Encode(dst []byte) error {
	if len(dst) != Size {
		return curated.Errorf(WrongSize, len(dst), Size)
	}
	if _, err := binary.Encode(dst, order, f); err != nil {
		return curated.Errorf(EncodeError, err)
	}
	return nil
}

// Decode the frame from src. The length of src must be exactly Size.
func (f *Frame) Decode(src []byte) error {
	if len(src) != Size {
		return curated.Errorf(WrongSize, len(src), Size)
	}
	if _, err := binary.Decode(src, order, f); err != nil {
		return curated.Errorf(DecodeError, err)
	}
	return nil
}

// Section identifies a logical subsystem of the frame.
type Section int

// List of valid Section values. The order is the order of the sections in
// the encoded frame.
const (
	SectionPlayer0 Section = iota
	SectionPlayer1
	SectionScene
	SectionScheduler
	SectionEffects
	NumSections
)

func (s Section) String() string {
	switch s {
	case SectionPlayer0:
		return "player 0"
	case SectionPlayer1:
		return "player 1"
	case SectionScene:
		return "scene"
	case SectionScheduler:
		return "scheduler"
	case SectionEffects:
		return "effects"
	}
	return "unknown section"
}

// Data returns a pointer to the data for the section. The returned value is
// suitable for use with the encoding/binary package.
func (f *Frame) Data(s Section) any {
	switch s {
	case SectionPlayer0:
		return &f.Players[0]
	case SectionPlayer1:
		return &f.Players[1]
	case SectionScene:
		return &f.Scene
	case SectionScheduler:
		return &f.Scheduler
	case SectionEffects:
		return &f.Effects
	}
	return nil
}

// AppendSection appends the encoded section to the byte slice.
func (f *Frame) AppendSection(b []byte, s Section) ([]byte, error) {
	d := f.Data(s)
	if d == nil {
		return b, curated.Errorf(EncodeError, s)
	}
	b, err := binary.Append(b, order, d)
	if err != nil {
		return b, curated.Errorf(EncodeError, err)
	}
	return b, nil
}

// the offset of each section in the encoded frame. the final entry is the
// size of the frame
var sectionOffsets [NumSections + 1]int

func init() {
	var f Frame
	offset := 0
	for s := Section(0); s < NumSections; s++ {
		sectionOffsets[s] = offset
		offset += binary.Size(f.Data(s))
	}
	sectionOffsets[NumSections] = offset
}

// SectionAt returns the section containing the byte offset in an encoded frame.
// Returns false if the offset is outside of the frame.
func SectionAt(offset int) (Section, bool) {
	if offset < 0 {
		return NumSections, false
	}
	for s := Section(0); s < NumSections; s++ {
		if offset < sectionOffsets[s+1] {
			return s, true
		}
	}
	return NumSections, false
}

// SectionOffset returns the offset of the first byte of the section in an
// encoded frame.
func SectionOffset(s Section) int {
	if s < 0 || s > NumSections {
		return -1
	}
	return sectionOffsets[s]
}
