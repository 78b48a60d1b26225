package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/procsched/model/process"
)

func newActor(t *testing.T, id int) *process.Process {
	p, err := process.New(id, 5, 3)
	assert.NoError(t, err)
	return p
}

func TestBounded_CapacityOne(t *testing.T) {
	ctx := context.Background()
	producer := newActor(t, 1)
	consumer := newActor(t, 2)
	ch, err := New[string](1)
	assert.NoError(t, err)

	assert.NoError(t, ch.Produce(ctx, producer, "a"))
	err = ch.Produce(ctx, producer, "b")
	assert.True(t, errors.Is(err, ErrFull))
	assert.Equal(t, process.StateWaiting, producer.GetState())
	assert.Equal(t, 1, ch.Len())

	item, err := ch.Consume(ctx, consumer)
	assert.NoError(t, err)
	assert.Equal(t, "a", item)

	assert.NoError(t, ch.Produce(ctx, producer, "c"))
	item, err = ch.Consume(ctx, consumer)
	assert.NoError(t, err)
	assert.Equal(t, "c", item)
}

func TestBounded_ConsumeEmpty(t *testing.T) {
	ctx := context.Background()
	consumer := newActor(t, 2)
	ch, _ := New[int](2)

	_, err := ch.Consume(ctx, consumer)
	assert.True(t, errors.Is(err, ErrEmpty))
	assert.Equal(t, process.StateWaiting, consumer.GetState())
	assert.Equal(t, 0, ch.ItemsAvailable())

	assert.NoError(t, ch.Produce(ctx, newActor(t, 1), 42))
	item, err := ch.Consume(ctx, consumer)
	assert.NoError(t, err)
	assert.Equal(t, 42, item)
}

func TestBounded_FIFO(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		items    []int
	}{
		{name: "exact capacity", capacity: 3, items: []int{1, 2, 3}},
		{name: "under capacity", capacity: 5, items: []int{7, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			actor := newActor(t, 1)
			ch, err := New[int](tc.capacity)
			assert.NoError(t, err)
			for _, item := range tc.items {
				assert.NoError(t, ch.Produce(ctx, actor, item))
				assert.LessOrEqual(t, ch.Len(), ch.Capacity())
			}
			assert.Equal(t, tc.capacity-len(tc.items), ch.SlotsFree())
			for _, expect := range tc.items {
				actual, err := ch.Consume(ctx, actor)
				assert.NoError(t, err)
				assert.Equal(t, expect, actual)
			}
			assert.Equal(t, tc.capacity, ch.SlotsFree())
		})
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	_, err := New[int](0)
	assert.True(t, errors.Is(err, ErrInvalidCapacity))
}

func TestBounded_ProduceCancelled(t *testing.T) {
	ch, err := New[string](2)
	assert.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = ch.Produce(ctx, newActor(t, 1), "a")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 2, ch.SlotsFree())
	assert.Equal(t, 0, ch.Len())
}
