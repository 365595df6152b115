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

package userinput

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/term"

	"github.com/jetsetilly/rollnet/curated"
)

// Sentinal error patterns.
const (
	TerminalError = "userinput: terminal: %v"
)

// the name of the controlling terminal
const ttyName = "/dev/tty"

// the read timeout allows the service goroutine to notice that the keyboard is
// being closed
const readTimeout = 100 * time.Millisecond

// Keyboard reads key presses from the controlling terminal.
type Keyboard struct {
	tty    *term.Term
	events chan Event

	quit chan bool
	done sync.WaitGroup
	once sync.Once
}

// NewKeyboard puts the terminal into cbreak mode and starts reading key
// presses. The terminal is restored by Close().
func NewKeyboard() (*Keyboard, error) {
	tty, err := term.Open(ttyName, term.CBreakMode, term.ReadTimeout(readTimeout))
	if err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	kb := &Keyboard{
		tty:    tty,
		events: make(chan Event, 64),
		quit:   make(chan bool),
	}

	kb.done.Add(1)
	go kb.service()

	return kb, nil
}

func (kb *Keyboard) service() {
	defer kb.done.Done()

	b := make([]byte, 16)
	for {
		select {
		case <-kb.quit:
			return
		default:
		}

		n, err := kb.tty.Read(b)
		if err != nil {
			// a read timeout is reported as io.EOF with no data
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			kb.send(EventQuit{})
			return
		}

		for _, ev := range decode(b[:n]) {
			kb.send(ev)
		}
	}
}

// events are dropped if the channel is full
func (kb *Keyboard) send(ev Event) {
	select {
	case kb.events <- ev:
	default:
	}
}

// Events returns the channel on which keyboard events are sent.
func (kb *Keyboard) Events() <-chan Event {
	return kb.events
}

// Close restores the terminal to its original state.
func (kb *Keyboard) Close() error {
	var err error
	kb.once.Do(func() {
		close(kb.quit)
		kb.done.Wait()
		err = kb.tty.Restore()
		if cerr := kb.tty.Close(); err == nil {
			err = cerr
		}
	})
	if err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}
