package semaphore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/procsched/model/process"
)

func TestSemaphore_WaitSignal(t *testing.T) {
	actor, err := process.New(1, 5, 3)
	assert.NoError(t, err)

	sem := New(0)
	assert.False(t, sem.Wait(actor))
	assert.Equal(t, -1, sem.Value())
	assert.Equal(t, process.StateWaiting, actor.GetState())

	assert.True(t, sem.Signal(actor))
	assert.Equal(t, 0, sem.Value())
}

func TestSemaphore_Counting(t *testing.T) {
	testCases := []struct {
		name         string
		initial      int
		waits        int
		expectPassed int
		expectValue  int
	}{
		{name: "all pass", initial: 3, waits: 3, expectPassed: 3, expectValue: 0},
		{name: "one blocked", initial: 2, waits: 3, expectPassed: 2, expectValue: -1},
		{name: "all blocked", initial: 0, waits: 2, expectPassed: 0, expectValue: -2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sem := New(tc.initial)
			passed := 0
			for i := 0; i < tc.waits; i++ {
				if sem.Wait(nil) {
					passed++
				}
			}
			assert.Equal(t, tc.expectPassed, passed)
			assert.Equal(t, tc.expectValue, sem.Value())
		})
	}
}

func TestSemaphore_SignalWithoutWaiters(t *testing.T) {
	sem := New(1)
	assert.False(t, sem.Signal(nil))
	assert.Equal(t, 2, sem.Value())
}

func TestSemaphore_Withdraw(t *testing.T) {
	sem := New(0)
	assert.False(t, sem.Wait(nil))
	sem.Withdraw()
	assert.Equal(t, 0, sem.Value())

	sem.Withdraw()
	assert.Equal(t, 0, sem.Value())
}
