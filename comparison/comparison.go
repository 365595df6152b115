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

package comparison

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/snapshot"
)

// Sentinal error patterns.
const (
	ReadError = "comparison: %v"
)

// the number of bytes either side of the first difference to include in the
// report
const contextLen = 16

// Report is the result of a comparison.
type Report struct {
	SizeA int
	SizeB int

	Identical bool

	// the offset of the first difference and the values of the bytes at that
	// offset. if the data is the same up to the length of the shorter of the
	// two, the offset will be the length of the shorter of the two
	Offset int
	A      byte
	B      byte

	// the bytes surrounding the first difference
	ContextA []byte
	ContextB []byte

	// the number of bytes that differ
	Count int

	// the sections with differences. only valid if both sizes are the size
	// of an encoded snapshot.Frame
	Sections []snapshot.Section
}

// Compare two byte slices.
func Compare(a, b []byte) Report {
	r := Report{
		SizeA:  len(a),
		SizeB:  len(b),
		Offset: -1,
	}

	n := min(len(a), len(b))

	var sections [snapshot.NumSections]bool
	frameSized := len(a) == snapshot.Size && len(b) == snapshot.Size

	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}

		r.Count++

		if r.Offset == -1 {
			r.Offset = i
			r.A = a[i]
			r.B = b[i]
			start := max(0, i-contextLen)
			end := min(n, i+contextLen)
			r.ContextA = a[start:end]
			r.ContextB = b[start:end]
		}

		if frameSized {
			if s, ok := snapshot.SectionAt(i); ok {
				sections[s] = true
			}
		}
	}

	if r.Offset == -1 && len(a) != len(b) {
		r.Offset = n
	}

	r.Identical = r.Offset == -1

	for s := range sections {
		if sections[s] {
			r.Sections = append(r.Sections, snapshot.Section(s))
		}
	}

	return r
}

// CompareFiles compares the contents of two files.
func CompareFiles(pathA, pathB string) (Report, error) {
	a, err := os.ReadFile(pathA)
	if err != nil {
		return Report{}, curated.Errorf(ReadError, err)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		return Report{}, curated.Errorf(ReadError, err)
	}
	return Compare(a, b), nil
}

// Write the report in a human readable form.
func (r Report) Write(output io.Writer) {
	fmt.Fprintf(output, "size A: %d\n", r.SizeA)
	fmt.Fprintf(output, "size B: %d\n", r.SizeB)

	if r.Identical {
		fmt.Fprintln(output, "identical")
		return
	}

	fmt.Fprintln(output, "differ")

	if r.ContextA == nil {
		fmt.Fprintf(output, "sizes differ after offset %#x (%d)\n", r.Offset, r.Offset)
		return
	}

	fmt.Fprintf(output, "first difference at offset %#x (%d)", r.Offset, r.Offset)
	if s, ok := snapshot.SectionAt(r.Offset); ok && r.SizeA == snapshot.Size {
		fmt.Fprintf(output, " in %s (+%d)", s, r.Offset-snapshot.SectionOffset(s))
	}
	fmt.Fprintln(output)

	fmt.Fprintf(output, "A: %#02x\n", r.A)
	fmt.Fprintf(output, "B: %#02x\n", r.B)
	fmt.Fprintf(output, "context A: %s\n", hex.EncodeToString(r.ContextA))
	fmt.Fprintf(output, "context B: %s\n", hex.EncodeToString(r.ContextB))
	fmt.Fprintf(output, "%d bytes differ\n", r.Count)

	for _, s := range r.Sections {
		fmt.Fprintf(output, "section differs: %s\n", s)
	}
}
