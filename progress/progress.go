package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/procsched/internal/clock"
)

// Delta represents an incremental counter change derived from one engine
// event.  The fields are signed.
type Delta struct {
	Created    int
	Completed  int
	Terminated int
	Rejected   int
	Steps      int
	IdleSteps  int
	Denied     int
	Preempted  int
	Elapsed    int
}

// Progress keeps aggregated counters for a session.  It is safe for
// concurrent use.
type Progress struct {
	Session   string
	Policy    string
	StartedAt time.Time

	Created    int
	Completed  int
	Terminated int
	Rejected   int
	Steps      int
	IdleSteps  int
	Denied     int
	Preempted  int
	Elapsed    int

	sync.Mutex
	onChange func(Progress)
}

// New creates a tracker
func New(session, policy string, onChange func(Progress)) *Progress {
	return &Progress{
		Session:   session,
		Policy:    policy,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
}

// Live returns the number of processes created and not yet finished
func (p *Progress) Live() int {
	return p.Created - p.Completed - p.Terminated
}

// Update applies the delta.  The onChange callback supplied to New, if any,
// runs outside the lock with a copy of the updated counters.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.Created += d.Created
	p.Completed += d.Completed
	p.Terminated += d.Terminated
	p.Rejected += d.Rejected
	p.Steps += d.Steps
	p.IdleSteps += d.IdleSteps
	p.Denied += d.Denied
	p.Preempted += d.Preempted
	p.Elapsed += d.Elapsed
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

func (p *Progress) copy() Progress {
	return Progress{
		Session:    p.Session,
		Policy:     p.Policy,
		StartedAt:  p.StartedAt,
		Created:    p.Created,
		Completed:  p.Completed,
		Terminated: p.Terminated,
		Rejected:   p.Rejected,
		Steps:      p.Steps,
		IdleSteps:  p.IdleSteps,
		Denied:     p.Denied,
		Preempted:  p.Preempted,
		Elapsed:    p.Elapsed,
	}
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds tracker in a derived context
func WithTracker(ctx context.Context, tracker *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, tracker)
}

// FromContext extracts the Progress tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
