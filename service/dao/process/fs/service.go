package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/service/dao"
	"github.com/viant/procsched/service/dao/criteria"
)

// Service stores process snapshots as JSON documents under a base URL, one
// document per termination named by its sequence
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[int, process.Snapshot] = (*Service)(nil)

// Save persists a snapshot
func (s *Service) Save(ctx context.Context, snapshot *process.Snapshot) error {
	if snapshot == nil {
		return dao.ErrNilEntity
	}
	if snapshot.Sequence <= 0 || snapshot.ID <= 0 {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal process %d: %w", snapshot.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.snapshotURL(snapshot.Sequence)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save process to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a snapshot
func (s *Service) Load(ctx context.Context, sequence int) (*process.Snapshot, error) {
	if sequence <= 0 {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	URL := s.snapshotURL(sequence)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if process exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: termination %d", dao.ErrNotFound, sequence)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read process file: %w", err)
	}
	var snapshot process.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal process data: %w", err)
	}
	return &snapshot, nil
}

// Delete removes a snapshot
func (s *Service) Delete(ctx context.Context, sequence int) error {
	if sequence <= 0 {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.snapshotURL(sequence)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if process exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: termination %d", dao.ErrNotFound, sequence)
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete process file: %w", err)
	}
	return nil
}

// List returns all stored snapshots in termination order
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list process files: %w", err)
	}
	var snapshots []*process.Snapshot
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read process file %s: %w", object.URL(), err)
		}
		var snapshot process.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal process from %s: %w", object.URL(), err)
		}
		if !criteria.FilterByState(string(snapshot.State), parameters) {
			continue
		}
		snapshots = append(snapshots, &snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Sequence < snapshots[j].Sequence })
	return snapshots, nil
}

func (s *Service) snapshotURL(sequence int) string {
	return url.Join(s.baseURL, fmt.Sprintf("%d.json", sequence))
}

// New creates a snapshot store rooted at baseURL, creating it if needed
func New(ctx context.Context, fs afs.Service, baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	baseURL = url.Normalize(baseURL, file.Scheme)
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}
