package procsched

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/procsched/service/meta"
	"github.com/viant/procsched/tracing"
)

// Runtime loads scenarios from any afs location and drives them through a
// fresh Service
type Runtime struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
	meta      *meta.Service
}

// RuntimeOption configures the Runtime
type RuntimeOption func(r *Runtime)

// WithMetaBaseURL sets the base URL relative scenario locations resolve against
func WithMetaBaseURL(baseURL string) RuntimeOption {
	return func(r *Runtime) {
		r.baseURL = baseURL
	}
}

// WithMetaFsOptions sets storage options (for example an embed.FS)
func WithMetaFsOptions(options ...storage.Option) RuntimeOption {
	return func(r *Runtime) {
		r.fsOptions = append(r.fsOptions, options...)
	}
}

// WithMetaService sets the afs service used to read scenarios
func WithMetaService(fs afs.Service) RuntimeOption {
	return func(r *Runtime) {
		r.fs = fs
	}
}

// NewRuntime creates a scenario runtime
func NewRuntime(options ...RuntimeOption) *Runtime {
	ret := &Runtime{}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.meta = meta.New(ret.fs, ret.baseURL, ret.fsOptions...)
	return ret
}

// LoadScenario loads and validates a YAML scenario
func (r *Runtime) LoadScenario(ctx context.Context, location string) (*Scenario, error) {
	ret := NewScenario("")
	if err := r.meta.Load(ctx, location, ret); err != nil {
		return nil, err
	}
	if ret.Name == "" {
		ret.Name = location
	}
	if ret.Config == nil {
		ret.Config = DefaultConfig()
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", r.meta.URL(location), err)
	}
	return ret, nil
}

// DecodeScenario decodes and validates a YAML scenario
func (r *Runtime) DecodeScenario(data []byte) (*Scenario, error) {
	ret := NewScenario("")
	if err := r.meta.Decode(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if ret.Config == nil {
		ret.Config = DefaultConfig()
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Run creates a Service for the scenario, admits its processes and steps it
// until no process is left and no scripted action is pending, or the step
// limit is reached.  Failed scripted operations are recorded as rejected
// events and do not stop the run.  The caller owns the returned Service.
func (r *Runtime) Run(ctx context.Context, scenario *Scenario, options ...Option) (srv *Service, err error) {
	if err = scenario.Validate(); err != nil {
		return nil, err
	}
	options = append([]Option{WithConfig(scenario.Config), WithSession(scenario.Name)}, options...)
	if srv, err = New(options...); err != nil {
		return nil, err
	}
	ctx, span := tracing.StartSpan(ctx, "procsched.run")
	span.WithAttributes(map[string]string{"scenario": scenario.Name, "policy": srv.Policy().String()})
	defer func() { tracing.EndSpan(span, err) }()
	for _, arrival := range scenario.Processes {
		if arrival == nil {
			continue
		}
		_, _ = srv.CreateProcess(ctx, arrival.ID, arrival.Priority, arrival.ExecutionTime)
	}
	actions := make([]*Action, len(scenario.Actions))
	copy(actions, scenario.Actions)
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Step < actions[j].Step })

	last := scenario.lastStep()
	next := 0
	for step := 1; step <= scenario.Limit(); step++ {
		if err = ctx.Err(); err != nil {
			return srv, err
		}
		for ; next < len(actions) && actions[next].Step == step; next++ {
			_ = r.apply(ctx, srv, actions[next])
		}
		if !srv.Step(ctx) && step >= last {
			break
		}
	}
	return srv, nil
}

func (r *Runtime) apply(ctx context.Context, srv *Service, action *Action) error {
	switch action.op() {
	case OpCreate:
		_, err := srv.CreateProcess(ctx, action.ID, action.Priority, action.ExecutionTime)
		return err
	case OpSuspend:
		return srv.Suspend(ctx, action.PID)
	case OpResume:
		return srv.Resume(ctx, action.PID)
	case OpTerminate:
		return srv.ForceTerminate(ctx, action.PID)
	}
	return fmt.Errorf("%w: unsupported op %q", ErrInvalidScenario, action.Op)
}
