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
	"encoding/binary"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/version"
)

// every datagram begins with the magic number
const magic uint16 = 0x524e

// length of the header common to every message type
const headerLen = 8

// the maximum number of frames of input in a single input message. also the
// maximum number of checksums in a single checksum message
const maxRun = 64

type msgType uint8

const (
	msgSyncRequest msgType = iota + 1
	msgSyncReply
	msgInput
	msgChecksum
	msgPing
	msgPong
	msgDisconnect
)

func (t msgType) String() string {
	switch t {
	case msgSyncRequest:
		return "sync request"
	case msgSyncReply:
		return "sync reply"
	case msgInput:
		return "input"
	case msgChecksum:
		return "checksum"
	case msgPing:
		return "ping"
	case msgPong:
		return "pong"
	case msgDisconnect:
		return "disconnect"
	}
	return "unknown"
}

type frameSum struct {
	frame int32
	sum   uint64
}

// message is the decoded form of a datagram. which fields are meaningful
// depends on the message type.
type message struct {
	typ   msgType
	nonce uint32

	// msgSyncRequest and msgSyncReply
	random uint32

	// msgInput. the run of input begins at the start frame. each input in the
	// run is size bytes long. ack is the last frame of input the sender has
	// received from the recipient and frame is the sender's current frame
	handle uint8
	ack    int32
	frame  int32
	start  int32
	size   uint8
	inputs []byte

	// msgChecksum
	sums []frameSum

	// msgPing and msgPong
	timestamp int64
}

// encode message and append to b.
func (m *message) encode(b []byte) []byte {
	b = binary.LittleEndian.AppendUint16(b, magic)
	b = append(b, version.ProtocolVersion, uint8(m.typ))
	b = binary.LittleEndian.AppendUint32(b, m.nonce)

	switch m.typ {
	case msgSyncRequest, msgSyncReply:
		b = binary.LittleEndian.AppendUint32(b, m.random)
	case msgInput:
		count := 0
		if m.size > 0 {
			count = len(m.inputs) / int(m.size)
		}
		b = append(b, m.handle, m.size)
		b = binary.LittleEndian.AppendUint32(b, uint32(m.ack))
		b = binary.LittleEndian.AppendUint32(b, uint32(m.frame))
		b = binary.LittleEndian.AppendUint32(b, uint32(m.start))
		b = binary.LittleEndian.AppendUint16(b, uint16(count))
		b = append(b, m.inputs[:count*int(m.size)]...)
	case msgChecksum:
		b = append(b, uint8(len(m.sums)))
		for _, s := range m.sums {
			b = binary.LittleEndian.AppendUint32(b, uint32(s.frame))
			b = binary.LittleEndian.AppendUint64(b, s.sum)
		}
	case msgPing, msgPong:
		b = binary.LittleEndian.AppendUint64(b, uint64(m.timestamp))
	}

	return b
}

// reader consumes a datagram from the front. reading past the end of the
// datagram sets the short flag and returns zero values.
type reader struct {
	b     []byte
	short bool
}

func (r *reader) next(n int) []byte {
	if len(r.b) < n {
		r.short = true
		r.b = nil
		return nil
	}
	v := r.b[:n]
	r.b = r.b[n:]
	return v
}

func (r *reader) u8() uint8 {
	v := r.next(1)
	if v == nil {
		return 0
	}
	return v[0]
}

func (r *reader) u16() uint16 {
	v := r.next(2)
	if v == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(v)
}

func (r *reader) u32() uint32 {
	v := r.next(4)
	if v == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(v)
}

func (r *reader) u64() uint64 {
	v := r.next(8)
	if v == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(v)
}

// decode datagram. the returned message does not share memory with the
// datagram.
func decode(b []byte) (message, error) {
	var m message

	if len(b) < headerLen {
		return m, curated.Errorf(MalformedData, "too short")
	}

	r := reader{b: b}
	if r.u16() != magic {
		return m, curated.Errorf(MalformedData, "bad magic number")
	}
	if r.u8() != version.ProtocolVersion {
		return m, curated.Errorf(MalformedData, "unsupported protocol version")
	}
	m.typ = msgType(r.u8())
	m.nonce = r.u32()

	switch m.typ {
	case msgSyncRequest, msgSyncReply:
		m.random = r.u32()
	case msgInput:
		m.handle = r.u8()
		m.size = r.u8()
		m.ack = int32(r.u32())
		m.frame = int32(r.u32())
		m.start = int32(r.u32())
		count := int(r.u16())
		if count > maxRun {
			return m, curated.Errorf(MalformedData, "input run too long")
		}
		m.inputs = append([]byte{}, r.next(count*int(m.size))...)
	case msgChecksum:
		count := int(r.u8())
		if count > maxRun {
			return m, curated.Errorf(MalformedData, "too many checksums")
		}
		m.sums = make([]frameSum, 0, count)
		for i := 0; i < count; i++ {
			m.sums = append(m.sums, frameSum{
				frame: int32(r.u32()),
				sum:   r.u64(),
			})
		}
	case msgPing, msgPong:
		m.timestamp = int64(r.u64())
	case msgDisconnect:
	default:
		return m, curated.Errorf(MalformedData, "unknown message type")
	}

	if r.short {
		return m, curated.Errorf(MalformedData, "truncated %s message", m.typ)
	}

	return m, nil
}
