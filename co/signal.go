// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter provides a channel to wait on. A value read means a single
// signal, a closed channel means a broadcast.
type Waiter interface {
	C() <-chan bool
}

// Signal is a channel based condition: waiters can select on it together
// with other events. The zero value is ready to use.
type Signal struct {
	l  sync.Mutex
	ch chan bool
}

func (s *Signal) chanLocked() chan bool {
	if s.ch == nil {
		s.ch = make(chan bool, 1)
	}
	return s.ch
}

// Signal wakes one waiter. It never blocks.
func (s *Signal) Signal() {
	s.l.Lock()
	defer s.l.Unlock()

	select {
	case s.chanLocked() <- true:
	default:
	}
}

// Broadcast wakes every current waiter.
func (s *Signal) Broadcast() {
	s.l.Lock()
	defer s.l.Unlock()

	close(s.chanLocked())
	s.ch = make(chan bool, 1)
}

// NewWaiter creates a Waiter. Each call to C re-arms it on the channel
// current at that moment, so a waiter survives broadcasts.
func (s *Signal) NewWaiter() Waiter {
	s.l.Lock()
	ref := s.chanLocked()
	s.l.Unlock()

	return waiterFunc(func() <-chan bool {
		ch := ref

		s.l.Lock()
		ref = s.chanLocked()
		s.l.Unlock()

		return ch
	})
}

type waiterFunc func() <-chan bool

func (w waiterFunc) C() <-chan bool {
	return w()
}
