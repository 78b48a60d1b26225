package process

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/procsched/internal/clock"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name          string
		id            int
		priority      int
		executionTime int
		expectErr     error
	}{
		{name: "valid", id: 1, priority: 5, executionTime: 3},
		{name: "priority lower bound", id: 2, priority: 1, executionTime: 1},
		{name: "priority upper bound", id: 3, priority: 10, executionTime: 1},
		{name: "zero id", id: 0, priority: 5, executionTime: 3, expectErr: ErrInvalidID},
		{name: "negative id", id: -4, priority: 5, executionTime: 3, expectErr: ErrInvalidID},
		{name: "priority too low", id: 1, priority: 0, executionTime: 3, expectErr: ErrInvalidPriority},
		{name: "priority too high", id: 1, priority: 11, executionTime: 3, expectErr: ErrInvalidPriority},
		{name: "zero execution time", id: 1, priority: 5, executionTime: 0, expectErr: ErrInvalidExecutionTime},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.id, tc.priority, tc.executionTime)
			if tc.expectErr != nil {
				assert.True(t, errors.Is(err, tc.expectErr), "unexpected error: %v", err)
				assert.Nil(t, p)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, StateReady, p.GetState())
			assert.Equal(t, tc.executionTime, p.Remaining())
			assert.True(t, p.Allocation().IsZero())
		})
	}
}

func TestProcess_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		process   *Process
		expectErr error
	}{
		{name: "valid", process: &Process{ID: 1, Priority: 5, ExecutionTime: 3, RemainingTime: 3}},
		{name: "zero id", process: &Process{Priority: 5, RemainingTime: 3}, expectErr: ErrInvalidID},
		{name: "priority out of range", process: &Process{ID: 1, Priority: 11, RemainingTime: 3}, expectErr: ErrInvalidPriority},
		{name: "nothing left to run", process: &Process{ID: 1, Priority: 5, ExecutionTime: 3}, expectErr: ErrInvalidExecutionTime},
		{name: "already allocated", process: &Process{ID: 1, Priority: 5, RemainingTime: 3, Allocated: Allocation{CPU: 1}}, expectErr: ErrAllocated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.process.Validate()
			if tc.expectErr != nil {
				assert.True(t, errors.Is(err, tc.expectErr), "unexpected error: %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcess_Run(t *testing.T) {
	p, err := New(1, 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, 2, p.Run(2))
	assert.Equal(t, 2, p.Run(2))
	assert.Equal(t, 1, p.Run(2))
	assert.Equal(t, 0, p.Remaining())
}

func TestProcess_GrantReclaim(t *testing.T) {
	p, _ := New(1, 1, 5)
	p.Grant(Allocation{CPU: 1, Memory: 1000})
	assert.Equal(t, Allocation{CPU: 1, Memory: 1000}, p.Allocation())

	held := p.Reclaim()
	assert.Equal(t, Allocation{CPU: 1, Memory: 1000}, held)
	assert.True(t, p.Allocation().IsZero())
	assert.True(t, p.Reclaim().IsZero())
}

func TestProcess_Terminate(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	defer clock.Freeze(fixed)()

	p, _ := New(7, 3, 2)
	p.Terminate(ReasonForcedTermination)
	p.Terminate(ReasonNormalCompletion)

	snapshot := p.Snapshot()
	assert.Equal(t, StateTerminated, snapshot.State)
	assert.Equal(t, ReasonForcedTermination, snapshot.TerminationReason)
	assert.Equal(t, fixed, *snapshot.FinishedAt)
	assert.Contains(t, snapshot.String(), "reason: forcedTermination")
}
