// Package report assembles the end-of-session view of an engine run and
// stores it as a JSON document on any afs supported location.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/procsched/internal/clock"
	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/policy"
	"github.com/viant/procsched/progress"
	"github.com/viant/procsched/service/event"
)

// Summary carries the session counters
type Summary struct {
	Created    int `json:"created"`
	Completed  int `json:"completed"`
	Terminated int `json:"terminated"`
	Rejected   int `json:"rejected"`
	Steps      int `json:"steps"`
	IdleSteps  int `json:"idleSteps"`
	Denied     int `json:"denied"`
	Preempted  int `json:"preempted"`
	Elapsed    int `json:"elapsed"`
}

// Resources carries the pool state at report time
type Resources struct {
	Available process.Allocation `json:"available"`
	Total     process.Allocation `json:"total"`
}

// Report is the end-of-session view of an engine run
type Report struct {
	Session     string                           `json:"session"`
	Policy      string                           `json:"policy"`
	Scheduler   *policy.Config                   `json:"scheduler,omitempty"`
	StartedAt   time.Time                        `json:"startedAt"`
	GeneratedAt time.Time                        `json:"generatedAt"`
	Summary     Summary                          `json:"summary"`
	Resources   Resources                        `json:"resources"`
	Ready       []process.Snapshot               `json:"ready,omitempty"`
	Current     *process.Snapshot                `json:"current,omitempty"`
	History     []*process.Snapshot              `json:"history,omitempty"`
	Events      []*event.Event[process.Snapshot] `json:"events,omitempty"`
}

// New creates a report from the session counters and the resolved policy
func New(p progress.Progress, resolved *policy.Policy) *Report {
	return &Report{
		Session:     p.Session,
		Policy:      p.Policy,
		Scheduler:   policy.ToConfig(resolved),
		StartedAt:   p.StartedAt,
		GeneratedAt: clock.Now(),
		Summary: Summary{
			Created:    p.Created,
			Completed:  p.Completed,
			Terminated: p.Terminated,
			Rejected:   p.Rejected,
			Steps:      p.Steps,
			IdleSteps:  p.IdleSteps,
			Denied:     p.Denied,
			Preempted:  p.Preempted,
			Elapsed:    p.Elapsed,
		},
	}
}

// String returns a one-line summary
func (r *Report) String() string {
	s := r.Summary
	return fmt.Sprintf("session %s | policy: %s | steps: %d | elapsed: %d | completed: %d | terminated: %d | rejected: %d | live: %d",
		r.Session, r.Policy, s.Steps, s.Elapsed, s.Completed, s.Terminated, s.Rejected, s.Created-s.Completed-s.Terminated)
}

// Upload writes the report as indented JSON to URL
func Upload(ctx context.Context, fs afs.Service, URL string, r *Report) error {
	if r == nil {
		return fmt.Errorf("report was nil")
	}
	if fs == nil {
		fs = afs.New()
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err = fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload report to %s: %w", URL, err)
	}
	return nil
}

// Load reads a report previously written by Upload
func Load(ctx context.Context, fs afs.Service, URL string) (*Report, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download report %s: %w", URL, err)
	}
	ret := &Report{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", URL, err)
	}
	return ret, nil
}
