package scheduler

import (
	"context"

	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/service/event"
	"github.com/viant/procsched/service/resource"
)

// Allocator grants and reclaims the per-step resource demand
type Allocator interface {
	Request(holder resource.Holder, demand process.Allocation) error
	Release(holder resource.Holder) process.Allocation
}

// Recorder receives one event per engine action
type Recorder interface {
	Record(ctx context.Context, e *event.Event[process.Snapshot])
}

// Archive stores snapshots of terminated processes
type Archive interface {
	Save(ctx context.Context, snapshot *process.Snapshot) error
}

// Listing is a point-in-time view of the queue and the running slot
type Listing struct {
	Ready   []process.Snapshot `json:"ready"`
	Current *process.Snapshot  `json:"current,omitempty"`
}

var _ Allocator = (*resource.Pool)(nil)
