package event

import (
	"context"
	"sync"
)

// Journal keeps every recorded event in order
type Journal[T any] struct {
	events []*Event[T]
	mu     sync.RWMutex
}

func NewJournal[T any]() *Journal[T] {
	return &Journal[T]{}
}

// Append adds events to the tail
func (j *Journal[T]) Append(events ...*Event[T]) {
	j.mu.Lock()
	j.events = append(j.events, events...)
	j.mu.Unlock()
}

// Record appends e; it lets a Journal serve as a synchronous recorder
func (j *Journal[T]) Record(_ context.Context, e *Event[T]) {
	if e != nil {
		j.Append(e)
	}
}

// All returns a copy of all events
func (j *Journal[T]) All() []*Event[T] {
	return j.Since(0)
}

// Since returns events recorded at or after offset
func (j *Journal[T]) Since(offset int) []*Event[T] {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(j.events) {
		return nil
	}
	return append([]*Event[T](nil), j.events[offset:]...)
}

// Filter returns events of the supplied types, all events when none given
func (j *Journal[T]) Filter(types ...Type) []*Event[T] {
	all := j.All()
	if len(types) == 0 {
		return all
	}
	var ret []*Event[T]
	for _, e := range all {
		for _, t := range types {
			if e.Type() == t {
				ret = append(ret, e)
				break
			}
		}
	}
	return ret
}

func (j *Journal[T]) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.events)
}
