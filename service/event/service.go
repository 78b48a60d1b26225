package event

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/viant/procsched/service/messaging"
	"github.com/viant/procsched/service/messaging/memory"
)

// Service records engine events in a journal and, once a listener is set,
// delivers them asynchronously through a message queue.
type Service[T any] struct {
	journal   *Journal[T]
	publisher *Publisher[T]
	listener  *Listener[T]
	mux       sync.RWMutex
}

func New[T any](queueVendor messaging.Vendor, opts ...Option) (*Service[T], error) {
	o := &options{memConfig: memory.DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}
	var queue messaging.Queue[Event[T]]
	switch queueVendor {
	case messaging.VendorMemory:
		queue = memory.NewQueue[Event[T]](o.memConfig)
	default:
		return nil, fmt.Errorf("unsupported queue vendor: %s", queueVendor)
	}
	return &Service[T]{
		journal:   NewJournal[T](),
		publisher: NewPublisher[T](queue),
	}, nil
}

// Record appends the event to the journal and forwards it to the listener
func (s *Service[T]) Record(ctx context.Context, event *Event[T]) {
	if event == nil {
		return
	}
	s.journal.Append(event)
	s.mux.RLock()
	defer s.mux.RUnlock()
	if s.listener == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("failed to publish event %v: %v", event.Type(), err)
	}
}

// SetListener replaces the current listener; nil stops delivery. The
// previous listener receives every event recorded before the call.
func (s *Service[T]) SetListener(handler func(*Event[T])) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener != nil {
		s.listener.Stop()
		s.listener = nil
	}
	if handler == nil {
		return
	}
	s.listener = NewListener[T](s.publisher, handler)
	s.listener.Start()
}

// Close delivers pending events and stops the listener, if any
func (s *Service[T]) Close() {
	s.SetListener(nil)
}

// DeadLetters returns the number of events dropped after repeated handler
// failures
func (s *Service[T]) DeadLetters() int {
	return s.publisher.DeadLetters()
}

// Journal returns the event journal
func (s *Service[T]) Journal() *Journal[T] {
	return s.journal
}
