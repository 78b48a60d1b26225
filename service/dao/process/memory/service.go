package memory

import (
	"context"

	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/service/dao"
	"github.com/viant/procsched/service/dao/criteria"
	"github.com/viant/procsched/service/dao/store"
)

// Service is an in-memory, thread-safe history of process snapshots keyed by
// termination sequence, so a reused pid never overwrites an earlier record.
// Snapshots are values, so stored records never alias a live process.
type Service struct {
	*store.MemoryStore[int, process.Snapshot]
}

var _ dao.Service[int, process.Snapshot] = (*Service)(nil)

// Save stores a snapshot keyed by its sequence
func (s *Service) Save(ctx context.Context, snapshot *process.Snapshot) error {
	if snapshot == nil {
		return dao.ErrNilEntity
	}
	if snapshot.Sequence <= 0 || snapshot.ID <= 0 {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Save(ctx, snapshot)
}

// Load returns the snapshot stored for sequence
func (s *Service) Load(ctx context.Context, sequence int) (*process.Snapshot, error) {
	if sequence <= 0 {
		return nil, dao.ErrInvalidID
	}
	return s.MemoryStore.Load(ctx, sequence)
}

func New() *Service {
	memoryStore := store.NewMemoryStore[int, process.Snapshot](func(s *process.Snapshot) int { return s.Sequence }).
		WithOrder(func(a, b *process.Snapshot) bool { return a.Sequence < b.Sequence }).
		WithFilter(func(s *process.Snapshot, parameters []*dao.Parameter) bool {
			return criteria.FilterByState(string(s.State), parameters)
		})
	return &Service{MemoryStore: memoryStore}
}
