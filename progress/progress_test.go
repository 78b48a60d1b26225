package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var observed []Progress
	tracker := New("session-1", "SJF", func(p Progress) { observed = append(observed, p) })

	tracker.Update(Delta{Created: 3})
	tracker.Update(Delta{Steps: 1, Elapsed: 1})
	tracker.Update(Delta{Completed: 1, Steps: 1, Elapsed: 1})
	tracker.Update(Delta{Terminated: 1})

	snapshot := tracker.Snapshot()
	assert.Equal(t, 3, snapshot.Created)
	assert.Equal(t, 2, snapshot.Steps)
	assert.Equal(t, 2, snapshot.Elapsed)
	assert.Equal(t, 1, snapshot.Live())
	assert.Len(t, observed, 4)
	assert.Equal(t, 3, observed[0].Created)
	assert.Equal(t, "SJF", observed[3].Policy)
}

func TestProgress_Concurrent(t *testing.T) {
	tracker := New("session-2", "FCFS", nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Update(Delta{Steps: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, tracker.Snapshot().Steps)
}

func TestContextHelpers(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	tracker := New("session-3", "Priority", nil)
	ctx := WithTracker(context.Background(), tracker)
	UpdateCtx(ctx, Delta{Denied: 2})
	UpdateCtx(context.Background(), Delta{Denied: 5})

	actual, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 2, actual.Snapshot().Denied)

	var nilTracker *Progress
	nilTracker.Update(Delta{Steps: 1})
	assert.Equal(t, Progress{}.Steps, nilTracker.Snapshot().Steps)
}
