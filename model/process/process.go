package process

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/viant/procsched/internal/clock"
)

// Priority bounds, lower value means higher priority.
const (
	MinPriority = 1
	MaxPriority = 10
)

var (
	// ErrInvalidID is returned for a non-positive process id.
	ErrInvalidID = errors.New("process: invalid id")

	// ErrInvalidPriority is returned for a priority outside [MinPriority, MaxPriority].
	ErrInvalidPriority = errors.New("process: invalid priority")

	// ErrInvalidExecutionTime is returned for a non-positive execution time.
	ErrInvalidExecutionTime = errors.New("process: invalid execution time")

	// ErrAllocated is returned when a process not yet admitted already holds resources.
	ErrAllocated = errors.New("process: resources already allocated")
)

// Process represents a single simulated unit of work
type Process struct {
	ID                int               `json:"id"`
	Priority          int               `json:"priority"`
	ExecutionTime     int               `json:"executionTime"`
	RemainingTime     int               `json:"remainingTime"`
	State             State             `json:"state"`
	Allocated         Allocation        `json:"allocated"`
	TerminationReason TerminationReason `json:"terminationReason,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	FinishedAt        *time.Time        `json:"finishedAt,omitempty"`
	mu                sync.RWMutex
}

// New creates a Ready process after validating its attributes
func New(id, priority, executionTime int) (*Process, error) {
	if err := validate(id, priority, executionTime); err != nil {
		return nil, err
	}
	return &Process{
		ID:            id,
		Priority:      priority,
		ExecutionTime: executionTime,
		RemainingTime: executionTime,
		State:         StateReady,
		CreatedAt:     clock.Now(),
	}, nil
}

// Validate checks a caller-built process the way New checks its arguments.
// The remaining time must be positive and no resource may be held yet.
func (p *Process) Validate() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := validate(p.ID, p.Priority, p.RemainingTime); err != nil {
		return err
	}
	if !p.Allocated.IsZero() {
		return fmt.Errorf("%w: process %d already holds %v", ErrAllocated, p.ID, p.Allocated)
	}
	return nil
}

func validate(id, priority, executionTime int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("%w: %d (expected %d..%d)", ErrInvalidPriority, priority, MinPriority, MaxPriority)
	}
	if executionTime <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidExecutionTime, executionTime)
	}
	return nil
}

// GetState returns the current state
func (p *Process) GetState() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.State
}

// SetState updates the state
func (p *Process) SetState(state State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.State = state
}

// Block marks the process Waiting. It satisfies semaphore.Actor.
func (p *Process) Block() {
	p.SetState(StateWaiting)
}

// Remaining returns the remaining execution time
func (p *Process) Remaining() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.RemainingTime
}

// Run consumes up to limit time units and returns the slice actually used
func (p *Process) Run(limit int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	slice := limit
	if p.RemainingTime < slice {
		slice = p.RemainingTime
	}
	p.RemainingTime -= slice
	return slice
}

// Allocation returns the resources currently held
func (p *Process) Allocation() Allocation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Allocated
}

// Grant credits the process with the supplied resources
func (p *Process) Grant(a Allocation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Allocated = p.Allocated.Add(a)
}

// Reclaim zeroes the allocation and returns what was held
func (p *Process) Reclaim() Allocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	held := p.Allocated
	p.Allocated = Allocation{}
	return held
}

// Terminate moves the process to StateTerminated with the given reason.
// Terminating an already terminated process keeps the first reason.
func (p *Process) Terminate(reason TerminationReason) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.State == StateTerminated {
		return
	}
	now := clock.Now()
	p.State = StateTerminated
	p.TerminationReason = reason
	p.FinishedAt = &now
}

// Snapshot returns a value copy safe to hand out beyond the owner
func (p *Process) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ret := Snapshot{
		ID:                p.ID,
		Priority:          p.Priority,
		ExecutionTime:     p.ExecutionTime,
		RemainingTime:     p.RemainingTime,
		State:             p.State,
		Allocated:         p.Allocated,
		TerminationReason: p.TerminationReason,
		CreatedAt:         p.CreatedAt,
	}
	if p.FinishedAt != nil {
		finished := *p.FinishedAt
		ret.FinishedAt = &finished
	}
	return ret
}

// String returns a one-line description, e.g. for listings
func (p *Process) String() string {
	return p.Snapshot().String()
}
