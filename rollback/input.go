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

import "bytes"

// the number of frames of input kept for each player
const ringSize = 256

// inputQueue is the input for a single player. Input is added to the queue
// in frame order without gaps.
type inputQueue struct {
	size int

	// the last frame added to the queue
	last int

	frames [ringSize]int
	data   []byte

	// the input used when the simulation advanced a frame. this may be a
	// prediction
	usedFrames [ringSize]int
	used       []byte

	zero []byte
}

func newInputQueue(size int) *inputQueue {
	q := &inputQueue{
		size: size,
		last: -1,
		data: make([]byte, ringSize*size),
		used: make([]byte, ringSize*size),
		zero: make([]byte, size),
	}
	for i := range q.frames {
		q.frames[i] = -1
		q.usedFrames[i] = -1
	}
	return q
}

func (q *inputQueue) slot(frame int) []byte {
	i := frame % ringSize
	return q.data[i*q.size : (i+1)*q.size]
}

// get returns the input for the frame if it is still in the queue.
func (q *inputQueue) get(frame int) ([]byte, bool) {
	if frame < 0 || q.frames[frame%ringSize] != frame {
		return nil, false
	}
	return q.slot(frame), true
}

// add input for the frame. returns false if the frame does not immediately
// follow the last frame in the queue.
func (q *inputQueue) add(frame int, input []byte) bool {
	if frame != q.last+1 {
		return false
	}
	copy(q.slot(frame), input)
	q.frames[frame%ringSize] = frame
	q.last = frame
	return true
}

// predict returns the input for the frame if it is known. otherwise the most
// recent input is repeated. zero input is returned if no input has been added
// to the queue.
func (q *inputQueue) predict(frame int) []byte {
	if in, ok := q.get(frame); ok {
		return in
	}
	if in, ok := q.get(q.last); ok {
		return in
	}
	return q.zero
}

// setUsed records the input that was used for the frame.
func (q *inputQueue) setUsed(frame int, input []byte) {
	i := frame % ringSize
	copy(q.used[i*q.size:(i+1)*q.size], input)
	q.usedFrames[i] = frame
}

// mispredicted returns true if the input used for the frame is known and is
// different to the input in the queue.
func (q *inputQueue) mispredicted(frame int) bool {
	i := frame % ringSize
	if q.usedFrames[i] != frame {
		return false
	}
	in, ok := q.get(frame)
	if !ok {
		return false
	}
	return !bytes.Equal(in, q.used[i*q.size:(i+1)*q.size])
}
