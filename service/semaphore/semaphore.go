// Package semaphore implements a counting semaphore whose blocked state is
// data, not suspended control flow: a negative value is the number of
// waiters, and a blocked caller is marked Waiting and told not to proceed.
package semaphore

import "sync"

// Actor is the party calling Wait or Signal.
type Actor interface {
	// Block marks the actor as waiting on the semaphore.
	Block()
}

// Semaphore is a counting semaphore with no state beyond its value
type Semaphore struct {
	value int
	mu    sync.Mutex
}

// New creates a semaphore with the initial count
func New(initial int) *Semaphore {
	return &Semaphore{value: initial}
}

// Wait decrements the value. When the result is negative the actor is
// blocked and false is returned; the caller must not enter the guarded
// section.
func (s *Semaphore) Wait(actor Actor) bool {
	s.mu.Lock()
	s.value--
	blocked := s.value < 0
	s.mu.Unlock()
	if blocked && actor != nil {
		actor.Block()
	}
	return !blocked
}

// Signal increments the value and reports whether a blocked waiter is
// being released (value still <= 0).
func (s *Semaphore) Signal(Actor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value++
	return s.value <= 0
}

// Withdraw cancels a blocked Wait whose caller abandoned the guarded
// action, removing it from the waiter count.
func (s *Semaphore) Withdraw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value < 0 {
		s.value++
	}
}

// Value returns the current count
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}
