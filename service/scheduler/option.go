package scheduler

import "github.com/viant/procsched/model/process"

type Option func(*Scheduler)

// WithDemand sets the fixed per-step resource demand
func WithDemand(demand process.Allocation) Option {
	return func(s *Scheduler) {
		s.demand = demand
	}
}

// WithRecorder sets the event recorder
func WithRecorder(recorder Recorder) Option {
	return func(s *Scheduler) {
		s.recorder = recorder
	}
}

// WithArchive sets where snapshots of terminated processes are saved
func WithArchive(archive Archive) Option {
	return func(s *Scheduler) {
		s.archive = archive
	}
}
