package procsched

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/procsched/internal/idgen"
	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/policy"
	"github.com/viant/procsched/progress"
	"github.com/viant/procsched/service/dao"
	pfs "github.com/viant/procsched/service/dao/process/fs"
	pmemory "github.com/viant/procsched/service/dao/process/memory"
	"github.com/viant/procsched/service/event"
	"github.com/viant/procsched/service/messaging"
	mmemory "github.com/viant/procsched/service/messaging/memory"
	"github.com/viant/procsched/service/report"
	"github.com/viant/procsched/service/resource"
	"github.com/viant/procsched/service/scheduler"
	"github.com/viant/procsched/tracing"
)

// Service is the engine facade: one scheduler, one resource pool and the
// observers around them.  Every method is safe to call from one driver at a
// time; the scheduler and pool serialise internally.
type Service struct {
	config     *Config
	session    string
	policy     *policy.Policy
	pool       *resource.Pool
	scheduler  *scheduler.Scheduler
	events     *event.Service[process.Snapshot]
	history    dao.Service[int, process.Snapshot]
	progress   *progress.Progress
	onProgress func(progress.Progress)
	listener   func(*event.Event[process.Snapshot])
}

// New creates a Service; an invalid configuration returns an error wrapping
// ErrInvalidConfiguration and no engine is created.
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	var err error
	if s.policy, err = policy.FromConfig(&s.config.Scheduler); err != nil {
		return err
	}
	if s.session == "" {
		s.session = idgen.New()
	}
	if s.history == nil {
		if s.history, err = s.newHistory(); err != nil {
			return err
		}
	}
	s.events, err = event.New[process.Snapshot](messaging.VendorMemory,
		event.WithMemoryQueueConfig(mmemory.Config{MaxRetries: mmemory.DefaultConfig().MaxRetries, Buffer: s.config.Events.Buffer}))
	if err != nil {
		return fmt.Errorf("failed to create event service: %w", err)
	}
	if s.listener != nil {
		s.events.SetListener(s.listener)
	}
	s.progress = progress.New(s.session, s.policy.String(), s.onProgress)
	s.pool = resource.New(s.config.Resources)
	s.scheduler, err = scheduler.New(s.policy,
		scheduler.WithDemand(s.config.Demand),
		scheduler.WithRecorder(s),
		scheduler.WithArchive(s.history))
	if err != nil {
		return err
	}
	message := s.policy.String()
	if s.policy.QuantumDefaulted {
		message += fmt.Sprintf(" (invalid quantum %d replaced by default)", s.config.Scheduler.Quantum)
	}
	s.Record(context.Background(), event.NewEvent(&event.Context{
		EventType: event.TypePolicySelected,
		Policy:    s.policy.String(),
		Message:   message,
	}, process.Snapshot{}))
	return nil
}

func (s *Service) newHistory() (dao.Service[int, process.Snapshot], error) {
	if s.config.History.URL == "" {
		return pmemory.New(), nil
	}
	ret, err := pfs.New(context.Background(), afs.New(), url.Join(url.Normalize(s.config.History.URL, file.Scheme), s.session))
	if err != nil {
		return nil, fmt.Errorf("failed to create history store: %w", err)
	}
	return ret, nil
}

// Record implements scheduler.Recorder: it updates the progress tracker bound
// to ctx, annotates the active span and forwards the event to the event
// service.
func (s *Service) Record(ctx context.Context, e *event.Event[process.Snapshot]) {
	progress.UpdateCtx(ctx, deltaOf(e))
	if span, ok := tracing.SpanFromContext(ctx); ok {
		span.AddEvent(string(e.Type()), map[string]string{"pid": tracing.Itoa(e.Context.ProcessID)})
	}
	s.events.Record(ctx, e)
}

func deltaOf(e *event.Event[process.Snapshot]) progress.Delta {
	switch e.Type() {
	case event.TypeCreated:
		return progress.Delta{Created: 1}
	case event.TypeCompleted:
		return progress.Delta{Completed: 1}
	case event.TypeTerminated:
		return progress.Delta{Terminated: 1}
	case event.TypeRejected:
		return progress.Delta{Rejected: 1}
	case event.TypeDenied:
		return progress.Delta{Denied: 1}
	case event.TypePreempted:
		return progress.Delta{Preempted: 1}
	case event.TypeIdle:
		return progress.Delta{IdleSteps: 1}
	case event.TypeExecuted:
		return progress.Delta{Elapsed: e.Context.TimeSlice}
	}
	return progress.Delta{}
}

// begin starts an operation span on a context carrying the session tracker
func (s *Service) begin(ctx context.Context, name string) (context.Context, *tracing.Span) {
	return tracing.StartSpan(progress.WithTracker(ctx, s.progress), name)
}

// CreateProcess adds a Ready process to the tail of the ready queue
func (s *Service) CreateProcess(ctx context.Context, id, priority, executionTime int) (snapshot process.Snapshot, err error) {
	ctx, span := s.begin(ctx, "procsched.createProcess")
	span.WithInt("pid", id).WithInt("priority", priority).WithInt("executionTime", executionTime)
	defer func() { tracing.EndSpan(span, err) }()
	return s.scheduler.Create(ctx, id, priority, executionTime)
}

// Step advances the engine by one unit of work and reports whether any
// process existed to act on
func (s *Service) Step(ctx context.Context) bool {
	ctx, span := s.begin(ctx, "procsched.step")
	span.WithAttributes(map[string]string{"policy": s.policy.String()})
	progressed := s.scheduler.AdvanceStep(ctx, s.pool)
	if progressed {
		progress.UpdateCtx(ctx, progress.Delta{Steps: 1})
	}
	span.WithInt("step", s.scheduler.Steps()).WithInt("elapsed", s.scheduler.Elapsed())
	tracing.EndSpan(span, nil)
	return progressed
}

// ForceTerminate terminates pid wherever it is queued or running
func (s *Service) ForceTerminate(ctx context.Context, pid int) (err error) {
	ctx, span := s.begin(ctx, "procsched.forceTerminate")
	span.WithInt("pid", pid)
	defer func() { tracing.EndSpan(span, err) }()
	return s.scheduler.ForceTerminate(ctx, pid, s.pool)
}

// Suspend moves the running process pid to Waiting
func (s *Service) Suspend(ctx context.Context, pid int) (err error) {
	ctx, span := s.begin(ctx, "procsched.suspend")
	span.WithInt("pid", pid)
	defer func() { tracing.EndSpan(span, err) }()
	return s.scheduler.Suspend(ctx, pid, s.pool)
}

// Resume makes the waiting process pid Ready again
func (s *Service) Resume(ctx context.Context, pid int) (err error) {
	ctx, span := s.begin(ctx, "procsched.resume")
	span.WithInt("pid", pid)
	defer func() { tracing.EndSpan(span, err) }()
	return s.scheduler.Resume(ctx, pid)
}

// Processes lists the ready queue and the running slot
func (s *Service) Processes() scheduler.Listing {
	return s.scheduler.Processes()
}

// Resources returns the available and total pool units
func (s *Service) Resources() (available, total process.Allocation) {
	return s.pool.Available(), s.pool.Total()
}

// Events returns every event recorded so far, in order
func (s *Service) Events() []*event.Event[process.Snapshot] {
	return s.events.Journal().All()
}

// History lists snapshots of terminated processes
func (s *Service) History(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Snapshot, error) {
	return s.history.List(ctx, parameters...)
}

// Progress returns a copy of the session counters
func (s *Service) Progress() progress.Progress {
	return s.progress.Snapshot()
}

// Policy returns the resolved policy
func (s *Service) Policy() *policy.Policy {
	return s.policy
}

// Session returns the session name
func (s *Service) Session() string {
	return s.session
}

// Elapsed returns the simulated time executed so far
func (s *Service) Elapsed() int {
	return s.scheduler.Elapsed()
}

// Live returns the number of queued and running processes
func (s *Service) Live() int {
	return s.scheduler.Len()
}

// Report assembles the end-of-session view: counters, pool, listing,
// history and the event log
func (s *Service) Report(ctx context.Context) (*report.Report, error) {
	ret := report.New(s.progress.Snapshot(), s.policy)
	ret.Resources.Available, ret.Resources.Total = s.Resources()
	listing := s.Processes()
	ret.Ready, ret.Current = listing.Ready, listing.Current
	history, err := s.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	ret.History = history
	ret.Events = s.Events()
	return ret, nil
}

// Close delivers pending events to the listener and stops it
func (s *Service) Close() {
	s.events.Close()
}

var _ scheduler.Recorder = (*Service)(nil)
