// Package channel provides a bounded producer/consumer buffer gated by a
// pair of counting semaphores.  Neither side ever blocks: a full or empty
// buffer fails the call and marks the calling actor Waiting.
package channel

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/procsched/service/messaging/memory"
	"github.com/viant/procsched/service/semaphore"
)

var (
	// ErrFull is returned by Produce when no slot is free.
	ErrFull = errors.New("channel: buffer full")

	// ErrEmpty is returned by Consume when no item is available.
	ErrEmpty = errors.New("channel: buffer empty")

	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("channel: invalid capacity")
)

// Bounded is a FIFO buffer of at most Capacity items
type Bounded[T any] struct {
	capacity       int
	slotsFree      *semaphore.Semaphore
	itemsAvailable *semaphore.Semaphore
	buffer         *memory.Queue[T]
}

// New creates a channel with capacity free slots and no items
func New[T any](capacity int) (*Bounded[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Bounded[T]{
		capacity:       capacity,
		slotsFree:      semaphore.New(capacity),
		itemsAvailable: semaphore.New(0),
		buffer:         memory.NewQueue[T](memory.Config{Buffer: capacity}),
	}, nil
}

// Produce appends item to the tail of the buffer. When no slot is free the
// actor is marked Waiting and ErrFull is returned; nothing is dropped or
// overwritten.
func (c *Bounded[T]) Produce(ctx context.Context, actor semaphore.Actor, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.slotsFree.Wait(actor) {
		c.slotsFree.Withdraw()
		return ErrFull
	}
	if err := c.buffer.TryPublish(&item); err != nil {
		c.slotsFree.Signal(actor)
		return fmt.Errorf("failed to buffer item: %w", err)
	}
	c.itemsAvailable.Signal(actor)
	return nil
}

// Consume removes and returns the head item. When the buffer is empty the
// actor is marked Waiting and ErrEmpty is returned.
func (c *Bounded[T]) Consume(ctx context.Context, actor semaphore.Actor) (T, error) {
	var zero T
	if !c.itemsAvailable.Wait(actor) {
		c.itemsAvailable.Withdraw()
		return zero, ErrEmpty
	}
	msg, err := c.buffer.Consume(ctx)
	if err != nil {
		c.itemsAvailable.Signal(actor)
		return zero, fmt.Errorf("failed to read item: %w", err)
	}
	if err = msg.Ack(); err != nil {
		return zero, err
	}
	c.slotsFree.Signal(actor)
	return *msg.T(), nil
}

// Len returns the number of buffered items
func (c *Bounded[T]) Len() int {
	return c.buffer.Size()
}

// Capacity returns the maximum number of buffered items
func (c *Bounded[T]) Capacity() int {
	return c.capacity
}

// SlotsFree returns the free-slot semaphore value
func (c *Bounded[T]) SlotsFree() int {
	return c.slotsFree.Value()
}

// ItemsAvailable returns the item semaphore value
func (c *Bounded[T]) ItemsAvailable() int {
	return c.itemsAvailable.Value()
}
