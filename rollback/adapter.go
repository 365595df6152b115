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

// Datagram is a single packet of data received from, or to be sent to, the
// address.
type Datagram struct {
	Addr string
	Data []byte
}

// Adapter is the interface between a Session and the network.
type Adapter interface {
	// send data to the address. the adapter must not retain the data slice
	SendData(addr string, data []byte) error

	// all datagrams received since the previous call. must not block
	ReceiveData() ([]Datagram, error)

	Close() error
}

// Resolver is an optional interface for an Adapter. Addresses given to
// AddActor() are passed through Resolve() so that they compare equal to the
// addresses reported by ReceiveData().
type Resolver interface {
	Resolve(addr string) (string, error)
}
