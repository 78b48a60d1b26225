package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/policy"
	"github.com/viant/procsched/service/event"
)

// DefaultDemand is the fixed resource demand of a running process per step.
var DefaultDemand = process.Allocation{CPU: 1, Memory: 1000}

// Scheduler arbitrates a ready queue and a single running slot
type Scheduler struct {
	policy   *policy.Policy
	demand   process.Allocation
	queue    []*process.Process
	current  *process.Process
	elapsed  int
	steps    int
	archived int
	recorder Recorder
	archive  Archive
	mu       sync.Mutex
}

// New creates a scheduler bound to the supplied policy
func New(p *policy.Policy, options ...Option) (*Scheduler, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: policy was nil", policy.ErrInvalidConfiguration)
	}
	if _, err := policy.ParseKind(string(p.Kind)); err != nil {
		return nil, err
	}
	if p.Quantum <= 0 {
		return nil, fmt.Errorf("%w: quantum must be > 0", policy.ErrInvalidConfiguration)
	}
	ret := &Scheduler{policy: p, demand: DefaultDemand}
	for _, option := range options {
		option(ret)
	}
	if ret.recorder == nil {
		ret.recorder = nopRecorder{}
	}
	return ret, nil
}

// Policy returns the active policy
func (s *Scheduler) Policy() *policy.Policy {
	return s.policy
}

// Create validates the attributes, then adds a new Ready process to the tail
// of the ready queue
func (s *Scheduler) Create(ctx context.Context, id, priority, executionTime int) (process.Snapshot, error) {
	p, err := process.New(id, priority, executionTime)
	if err != nil {
		err = admissionError(err)
		s.mu.Lock()
		s.reject(ctx, id, err)
		s.mu.Unlock()
		return process.Snapshot{}, err
	}
	if err = s.Add(ctx, p); err != nil {
		return process.Snapshot{}, err
	}
	return p.Snapshot(), nil
}

// Add hands ownership of p to the scheduler and appends it as Ready. A
// caller-built process must pass the same checks as New and hold no resources.
func (s *Scheduler) Add(ctx context.Context, p *process.Process) error {
	if p == nil {
		return fmt.Errorf("%w: process was nil", ErrInvalidIdentifier)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := p.Validate()
	switch {
	case p.GetState().IsTerminal():
		err = fmt.Errorf("%w: process %d already terminated", ErrInvalidState, p.ID)
	case err != nil:
		err = admissionError(err)
	case s.lookup(p.ID) != nil:
		err = fmt.Errorf("%w: duplicate id %d", ErrInvalidIdentifier, p.ID)
	}
	if err != nil {
		s.reject(ctx, p.ID, err)
		return err
	}
	p.SetState(process.StateReady)
	s.queue = append(s.queue, p)
	s.record(ctx, event.TypeCreated, p, "")
	return nil
}

// AdvanceStep performs one unit of work and reports whether any process
// existed to act on
func (s *Scheduler) AdvanceStep(ctx context.Context, pool Allocator) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil && len(s.queue) == 0 {
		s.record(ctx, event.TypeIdle, nil, "no processes to run")
		return false
	}
	s.steps++

	if s.current == nil {
		idx := selectIndex(s.policy.Kind, s.queue)
		if idx == -1 {
			s.record(ctx, event.TypeIdle, nil, "no eligible process")
			return true
		}
		s.current = s.queue[idx]
		s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
		s.current.SetState(process.StateRunning)
		s.record(ctx, event.TypeDispatched, s.current, "")
	}

	p := s.current
	if p.Allocation().IsZero() {
		if err := pool.Request(p, s.demand); err != nil {
			s.record(ctx, event.TypeDenied, p, err.Error())
			return true
		}
		s.record(ctx, event.TypeGranted, p, "")
	}

	slice := p.Run(s.policy.TimeSlice(p.Remaining()))
	s.elapsed += slice
	s.recordSlice(ctx, p, slice)

	switch {
	case p.Remaining() <= 0:
		p.Terminate(process.ReasonNormalCompletion)
		pool.Release(p)
		s.current = nil
		s.record(ctx, event.TypeCompleted, p, "")
		s.save(ctx, p)
	case s.policy.IsRoundRobin():
		pool.Release(p)
		p.SetState(process.StateReady)
		s.queue = append(s.queue, p)
		s.current = nil
		s.record(ctx, event.TypePreempted, p, "")
	}
	return true
}

// ForceTerminate terminates pid wherever it is, queue first, then the
// running slot, and returns its resources to pool
func (s *Scheduler) ForceTerminate(ctx context.Context, pid int, pool Allocator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var target *process.Process
	if idx := s.indexOf(pid); idx != -1 {
		target = s.queue[idx]
		s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
	} else if s.current != nil && s.current.ID == pid {
		target = s.current
		s.current = nil
	}
	if target == nil {
		err := notFound(pid)
		s.reject(ctx, pid, err)
		return err
	}
	target.Terminate(process.ReasonForcedTermination)
	s.release(ctx, target, pool)
	s.record(ctx, event.TypeTerminated, target, "")
	s.save(ctx, target)
	return nil
}

// Suspend moves the running process to Waiting at the tail of the ready
// queue and clears the running slot
func (s *Scheduler) Suspend(ctx context.Context, pid int, pool Allocator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != pid {
		err := s.misplaced(pid, "is not running")
		s.reject(ctx, pid, err)
		return err
	}
	p := s.current
	s.current = nil
	s.release(ctx, p, pool)
	p.SetState(process.StateWaiting)
	s.queue = append(s.queue, p)
	s.record(ctx, event.TypeSuspended, p, "")
	return nil
}

// Resume makes a Waiting queue entry Ready again in place
func (s *Scheduler) Resume(ctx context.Context, pid int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(pid)
	if idx == -1 || s.queue[idx].GetState() != process.StateWaiting {
		err := s.misplaced(pid, "is not waiting")
		s.reject(ctx, pid, err)
		return err
	}
	p := s.queue[idx]
	p.SetState(process.StateReady)
	s.record(ctx, event.TypeResumed, p, "")
	return nil
}

// Processes lists the ready queue in order and the running slot
func (s *Scheduler) Processes() Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := Listing{Ready: make([]process.Snapshot, 0, len(s.queue))}
	for _, p := range s.queue {
		ret.Ready = append(ret.Ready, p.Snapshot())
	}
	if s.current != nil {
		current := s.current.Snapshot()
		ret.Current = &current
	}
	return ret
}

// Elapsed returns the total simulated time executed so far
func (s *Scheduler) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Steps returns the number of steps that acted on at least one process
func (s *Scheduler) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Len returns the number of live processes, queued and running
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := len(s.queue)
	if s.current != nil {
		ret++
	}
	return ret
}

func (s *Scheduler) lookup(pid int) *process.Process {
	if s.current != nil && s.current.ID == pid {
		return s.current
	}
	if idx := s.indexOf(pid); idx != -1 {
		return s.queue[idx]
	}
	return nil
}

func (s *Scheduler) indexOf(pid int) int {
	for i, p := range s.queue {
		if p.ID == pid {
			return i
		}
	}
	return -1
}

func (s *Scheduler) misplaced(pid int, reason string) error {
	p := s.lookup(pid)
	if p == nil {
		return notFound(pid)
	}
	return fmt.Errorf("%w: process %d %s (state: %s)", ErrInvalidState, pid, reason, p.GetState())
}

func (s *Scheduler) release(ctx context.Context, p *process.Process, pool Allocator) {
	if p.Allocation().IsZero() || pool == nil {
		return
	}
	released := pool.Release(p)
	e := event.NewEvent(s.eventContext(event.TypeReleased, p.ID, ""), p.Snapshot())
	s.recorder.Record(ctx, e.WithMetadata("released", released))
}

func (s *Scheduler) save(ctx context.Context, p *process.Process) {
	if s.archive == nil {
		return
	}
	s.archived++
	snapshot := p.Snapshot()
	snapshot.Sequence = s.archived
	if err := s.archive.Save(ctx, &snapshot); err != nil {
		log.Printf("failed to archive process %d: %v", p.ID, err)
	}
}

func (s *Scheduler) eventContext(eventType event.Type, pid int, message string) *event.Context {
	return &event.Context{
		ProcessID: pid,
		EventType: eventType,
		Step:      s.steps,
		Elapsed:   s.elapsed,
		Policy:    s.policy.String(),
		Message:   message,
	}
}

func (s *Scheduler) record(ctx context.Context, eventType event.Type, p *process.Process, message string) {
	var data process.Snapshot
	pid := 0
	if p != nil {
		data = p.Snapshot()
		pid = p.ID
	}
	s.recorder.Record(ctx, event.NewEvent(s.eventContext(eventType, pid, message), data))
}

func (s *Scheduler) recordSlice(ctx context.Context, p *process.Process, slice int) {
	eventCtx := s.eventContext(event.TypeExecuted, p.ID, "")
	eventCtx.TimeSlice = slice
	s.recorder.Record(ctx, event.NewEvent(eventCtx, p.Snapshot()))
}

func (s *Scheduler) reject(ctx context.Context, pid int, err error) {
	e := event.NewEvent(s.eventContext(event.TypeRejected, pid, err.Error()), process.Snapshot{ID: pid})
	s.recorder.Record(ctx, e)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, *event.Event[process.Snapshot]) {}
