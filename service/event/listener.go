package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/viant/procsched/service/messaging"
)

type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	started   bool
	mu        sync.Mutex
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop cancels the consume loop and waits until every event published
// before the call has been delivered. Callers must stop publishing first.
func (l *Listener[T]) Stop() {
	l.cancel()
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if started {
		<-l.done
	}
}

func (l *Listener[T]) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return
	}
	l.started = true
	go func() {
		defer close(l.done)
		for {
			msg, err := l.publisher.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					l.drain()
					return
				}
				log.Printf("Error consuming event: %v", err)
				continue
			}
			l.deliver(msg)
		}
	}()
}

// drain delivers the backlog left when the loop was cancelled
func (l *Listener[T]) drain() {
	for l.publisher.Pending() > 0 {
		msg, err := l.publisher.Consume(context.Background())
		if err != nil {
			return
		}
		l.deliver(msg)
	}
}

// deliver hands the event to the handler. A panicking handler nacks the
// message so that it is retried and finally dead-lettered.
func (l *Listener[T]) deliver(msg messaging.Message[Event[T]]) {
	if msg == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event handler failed for %v: %v", msg.ID(), r)
			if err := msg.Nack(fmt.Errorf("handler panic: %v", r)); err != nil {
				log.Printf("failed to nack event %v: %v", msg.ID(), err)
			}
		}
	}()
	l.handler(msg.T())
	if err := msg.Ack(); err != nil {
		log.Printf("failed to ack event %v: %v", msg.ID(), err)
	}
}
