package process

import (
	"fmt"
	"time"
)

// Snapshot is an immutable copy of a process at a point in time. Sequence
// numbers terminations within a scheduler and is zero for live snapshots.
type Snapshot struct {
	Sequence          int               `json:"sequence,omitempty"`
	ID                int               `json:"id"`
	Priority          int               `json:"priority"`
	ExecutionTime     int               `json:"executionTime"`
	RemainingTime     int               `json:"remainingTime"`
	State             State             `json:"state"`
	Allocated         Allocation        `json:"allocated"`
	TerminationReason TerminationReason `json:"terminationReason,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	FinishedAt        *time.Time        `json:"finishedAt,omitempty"`
}

func (s Snapshot) String() string {
	ret := fmt.Sprintf("process %d | state: %s | priority: %d | remaining: %d | cpu: %d | memory: %d",
		s.ID, s.State, s.Priority, s.RemainingTime, s.Allocated.CPU, s.Allocated.Memory)
	if s.TerminationReason != ReasonNone {
		ret += " | reason: " + string(s.TerminationReason)
	}
	return ret
}
