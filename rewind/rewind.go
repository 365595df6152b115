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

package rewind

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/digest"
	"github.com/jetsetilly/rollnet/snapshot"
)

// Sentinal error patterns.
const (
	NotInHistory = "rewind: frame %d is not in the history"
	DumpError    = "rewind: dump: %v"
)

// DefaultCapacity is the number of frames kept by the history when no other
// capacity is specified.
const DefaultCapacity = 20

// Entry is a single frame in the history.
type Entry struct {
	Frame     int
	Raw       []byte
	Sanitized snapshot.Frame
	Digest    digest.Sections
}

// Rewind is a history of captured states.
type Rewind struct {
	entries []Entry
}

// NewRewind is the preferred method of initialisation for the Rewind type. A
// capacity value of less than one will be replaced with DefaultCapacity.
func NewRewind(capacity int) *Rewind {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	r := &Rewind{
		entries: make([]Entry, capacity),
	}
	for i := range r.entries {
		r.entries[i].Raw = make([]byte, snapshot.Size)
	}
	r.Reset()
	return r
}

// Reset forgets all entries in the history.
func (r *Rewind) Reset() {
	for i := range r.entries {
		r.entries[i].Frame = -1
	}
}

// Note the captured state for the frame. The raw state is copied and so the
// caller is free to reuse the buffer. The digest of the sanitized state is
// returned.
//
// The digest is returned for negative frame numbers but the state is not
// added to the history.
func (r *Rewind) Note(frame int, raw []byte) (digest.Sections, error) {
	var f snapshot.Frame
	if err := f.Decode(raw); err != nil {
		return digest.Sections{}, err
	}
	snapshot.Sanitize(&f)

	d, err := digest.Compute(&f)
	if err != nil {
		return digest.Sections{}, err
	}

	if frame < 0 {
		return d, nil
	}

	e := &r.entries[frame%len(r.entries)]
	e.Frame = frame
	copy(e.Raw, raw)
	e.Sanitized = f
	e.Digest = d

	return d, nil
}

// Get the entry for the frame. Returns false if the frame is not in the
// history. The returned entry should not be retained beyond the next call to
// Note().
func (r *Rewind) Get(frame int) (*Entry, bool) {
	if frame < 0 {
		return nil, false
	}
	e := &r.entries[frame%len(r.entries)]
	if e.Frame != frame {
		return nil, false
	}
	return e, true
}

// Dump the frame to the directory. The directory is created if it does not
// exist. Returns the path of the raw dump.
func (r *Rewind) Dump(dir string, handle int, frame int) (string, error) {
	e, ok := r.Get(frame)
	if !ok {
		return "", curated.Errorf(NotInHistory, frame)
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return "", curated.Errorf(DumpError, err)
	}

	name := filepath.Join(dir, fmt.Sprintf("%d_%d", handle, frame))

	err = os.WriteFile(name, e.Raw, 0o644)
	if err != nil {
		return "", curated.Errorf(DumpError, err)
	}

	sanitized := make([]byte, snapshot.Size)
	err = e.Sanitized.Encode(sanitized)
	if err != nil {
		return "", curated.Errorf(DumpError, err)
	}
	err = os.WriteFile(name+".sanitized", sanitized, 0o644)
	if err != nil {
		return "", curated.Errorf(DumpError, err)
	}

	err = writeDot(name+".dot", &e.Sanitized)
	if err != nil {
		return "", curated.Errorf(DumpError, err)
	}

	return name, nil
}

// writeDot writes the graphviz description of the frame to the named file.
func writeDot(name string, f *snapshot.Frame) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	defer fh.Close()
	memviz.Map(fh, f)
	return nil
}
