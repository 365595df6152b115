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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new Limiter can be created with (error handling removed for clarity):
//
//	lim, _ := limiter.NewLimiter(60)
//	defer lim.Stop()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		netplay.Run()
//	}
package limiter

import (
	"sync"
	"time"

	"github.com/jetsetilly/rollnet/curated"
)

// Sentinal error patterns.
const (
	InvalidRate = "limiter: invalid rate (%d)"
)

// MaxRate is the highest rate accepted by NewLimiter() and SetLimit().
const MaxRate = 1000

// Limiter will trigger at a fixed number of times per second.
type Limiter struct {
	crit sync.Mutex
	rate int

	ticker *time.Ticker
	tick   chan bool
	quit   chan bool
	done   sync.Once
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(rate int) (*Limiter, error) {
	if rate < 1 || rate > MaxRate {
		return nil, curated.Errorf(InvalidRate, rate)
	}

	lim := &Limiter{
		rate:   rate,
		ticker: time.NewTicker(period(rate)),
		tick:   make(chan bool),
		quit:   make(chan bool),
	}

	// forward ticks from the ticker. a tick that isn't received before the
	// next tick from the ticker is lost
	go func() {
		for {
			select {
			case <-lim.quit:
				return
			case <-lim.ticker.C:
				select {
				case lim.tick <- true:
				case <-lim.quit:
					return
				case <-lim.ticker.C:
				}
			}
		}
	}()

	return lim, nil
}

func period(rate int) time.Duration {
	return time.Second / time.Duration(rate)
}

// SetLimit changes the rate at which the Limiter triggers.
func (lim *Limiter) SetLimit(rate int) error {
	if rate < 1 || rate > MaxRate {
		return curated.Errorf(InvalidRate, rate)
	}

	lim.crit.Lock()
	defer lim.crit.Unlock()

	lim.rate = rate
	lim.ticker.Reset(period(rate))

	return nil
}

// Rate returns the current rate.
func (lim *Limiter) Rate() int {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.rate
}

// Wait will block until trigger. Returns false if the Limiter has been stopped.
func (lim *Limiter) Wait() bool {
	select {
	case <-lim.quit:
		return false
	default:
	}

	select {
	case <-lim.tick:
		return true
	case <-lim.quit:
		return false
	}
}

// HasWaited will return true if the trigger has already happened and false if
// it is still yet to happen.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// Stop the Limiter. Safe to call more than once.
func (lim *Limiter) Stop() {
	lim.done.Do(func() {
		lim.ticker.Stop()
		close(lim.quit)
	})
}
