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
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/jetsetilly/rollnet/curated"
)

// maximum size of a datagram. large enough for an input message carrying a
// full run of the largest input
const maxDatagram = 2048

// the number of datagrams that can be queued between calls to ReceiveData()
const udpQueueLen = 256

// UDPAdapter is an Adapter for a UDP socket.
type UDPAdapter struct {
	conn *net.UDPConn

	// datagrams read by the service goroutine
	recv chan Datagram

	// errors from the service goroutine
	err chan error

	crit  sync.Mutex
	addrs map[string]*net.UDPAddr

	closed chan bool
	wg     sync.WaitGroup
}

// NewUDPAdapter listens for datagrams on the port.
func NewUDPAdapter(port int) (*UDPAdapter, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, curated.Errorf(AdapterError, err)
	}

	udp := &UDPAdapter{
		conn:   conn,
		recv:   make(chan Datagram, udpQueueLen),
		err:    make(chan error, 1),
		addrs:  make(map[string]*net.UDPAddr),
		closed: make(chan bool),
	}

	udp.wg.Add(1)
	go udp.service()

	return udp, nil
}

func (udp *UDPAdapter) service() {
	defer udp.wg.Done()

	buf := make([]byte, maxDatagram)
	for {
		n, addr, err := udp.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case udp.err <- err:
			default:
			}
			continue
		}

		d := Datagram{
			Addr: addr.String(),
			Data: append([]byte{}, buf[:n]...),
		}

		select {
		case udp.recv <- d:
		case <-udp.closed:
			return
		default:
			// the queue is full. the datagram is lost in the same way as it
			// might have been lost on the network
		}
	}
}

// Resolve implements the Resolver interface.
func (udp *UDPAdapter) Resolve(addr string) (string, error) {
	a, err := udp.resolve(addr)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

func (udp *UDPAdapter) resolve(addr string) (*net.UDPAddr, error) {
	udp.crit.Lock()
	defer udp.crit.Unlock()

	if a, ok := udp.addrs[addr]; ok {
		return a, nil
	}

	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, curated.Errorf(AdapterError, err)
	}
	udp.addrs[addr] = a
	udp.addrs[a.String()] = a

	return a, nil
}

// SendData implements the Adapter interface.
func (udp *UDPAdapter) SendData(addr string, data []byte) error {
	a, err := udp.resolve(addr)
	if err != nil {
		return err
	}
	_, err = udp.conn.WriteToUDP(data, a)
	if err != nil {
		return curated.Errorf(AdapterError, err)
	}
	return nil
}

// ReceiveData implements the Adapter interface.
func (udp *UDPAdapter) ReceiveData() ([]Datagram, error) {
	var err error
	select {
	case e := <-udp.err:
		err = curated.Errorf(AdapterError, e)
	default:
	}

	var ds []Datagram
	for {
		select {
		case d := <-udp.recv:
			ds = append(ds, d)
		default:
			return ds, err
		}
	}
}

// Close implements the Adapter interface.
func (udp *UDPAdapter) Close() error {
	select {
	case <-udp.closed:
		return nil
	default:
	}
	close(udp.closed)

	err := udp.conn.Close()
	udp.wg.Wait()
	if err != nil {
		return curated.Errorf(AdapterError, err)
	}
	return nil
}

// LocalAddr returns the address the adapter is listening on.
func (udp *UDPAdapter) LocalAddr() string {
	return udp.conn.LocalAddr().String()
}

func (udp *UDPAdapter) String() string {
	return fmt.Sprintf("udp %s", udp.LocalAddr())
}
