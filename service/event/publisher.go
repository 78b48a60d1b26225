package event

import (
	"context"

	"github.com/viant/procsched/service/messaging"
)

type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{
		queue: queue,
	}
}

func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	return p.queue.Publish(ctx, event)
}

// Consume returns the next message; the caller acknowledges it
func (p *Publisher[T]) Consume(ctx context.Context) (messaging.Message[Event[T]], error) {
	return p.queue.Consume(ctx)
}

// Pending returns the number of undelivered events, or 0 when the queue
// cannot report its backlog
func (p *Publisher[T]) Pending() int {
	if sizer, ok := p.queue.(messaging.Sizer); ok {
		return sizer.Size()
	}
	return 0
}

// DeadLetters returns the number of events given up after repeated handler
// failures
func (p *Publisher[T]) DeadLetters() int {
	if dlq, ok := p.queue.(messaging.DeadLetterSizer); ok {
		return dlq.DLQSize()
	}
	return 0
}
