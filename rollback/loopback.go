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
	"sync"

	"github.com/jetsetilly/rollnet/curated"
)

// Loopback connects any number of endpoints in the same process. Datagrams
// sent to an address with no endpoint are dropped.
type Loopback struct {
	crit   sync.Mutex
	queues map[string][]Datagram
}

// NewLoopback is the preferred method of initialisation for the Loopback type.
func NewLoopback() *Loopback {
	return &Loopback{
		queues: make(map[string][]Datagram),
	}
}

// Endpoint returns a new Adapter for the address. If an endpoint for the
// address already exists it will stop receiving datagrams.
func (lb *Loopback) Endpoint(addr string) *LoopbackEndpoint {
	lb.crit.Lock()
	defer lb.crit.Unlock()
	lb.queues[addr] = []Datagram{}
	return &LoopbackEndpoint{
		hub:  lb,
		addr: addr,
	}
}

// LoopbackEndpoint is an Adapter created by the Loopback hub.
type LoopbackEndpoint struct {
	hub    *Loopback
	addr   string
	closed bool
}

// Addr returns the address of the endpoint.
func (ep *LoopbackEndpoint) Addr() string {
	return ep.addr
}

// SendData implements the Adapter interface.
func (ep *LoopbackEndpoint) SendData(addr string, data []byte) error {
	if ep.closed {
		return curated.Errorf(AdapterError, "endpoint is closed")
	}

	ep.hub.crit.Lock()
	defer ep.hub.crit.Unlock()

	q, ok := ep.hub.queues[addr]
	if !ok {
		return nil
	}
	ep.hub.queues[addr] = append(q, Datagram{
		Addr: ep.addr,
		Data: append([]byte{}, data...),
	})

	return nil
}

// ReceiveData implements the Adapter interface.
func (ep *LoopbackEndpoint) ReceiveData() ([]Datagram, error) {
	if ep.closed {
		return nil, curated.Errorf(AdapterError, "endpoint is closed")
	}

	ep.hub.crit.Lock()
	defer ep.hub.crit.Unlock()

	q := ep.hub.queues[ep.addr]
	if len(q) == 0 {
		return nil, nil
	}
	ep.hub.queues[ep.addr] = []Datagram{}

	return q, nil
}

// Close implements the Adapter interface.
func (ep *LoopbackEndpoint) Close() error {
	if ep.closed {
		return nil
	}
	ep.closed = true

	ep.hub.crit.Lock()
	defer ep.hub.crit.Unlock()
	delete(ep.hub.queues, ep.addr)

	return nil
}
