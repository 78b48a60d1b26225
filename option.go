package procsched

import (
	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/progress"
	"github.com/viant/procsched/service/dao"
	"github.com/viant/procsched/service/event"
	"github.com/viant/procsched/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service
type Option func(s *Service)

// WithConfig replaces the whole configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			copied := *config
			s.config = &copied
		}
	}
}

// WithPolicy sets the policy name, matched case-insensitively
func WithPolicy(name string) Option {
	return func(s *Service) {
		s.config.Scheduler.Name = name
	}
}

// WithQuantum sets the RoundRobin quantum
func WithQuantum(quantum int) Option {
	return func(s *Service) {
		s.config.Scheduler.Quantum = quantum
	}
}

// WithResources sets the pool totals
func WithResources(cpu, memory int) Option {
	return func(s *Service) {
		s.config.Resources.CPU = cpu
		s.config.Resources.Memory = memory
	}
}

// WithDemand sets the per-step demand of the running process
func WithDemand(cpu, memory int) Option {
	return func(s *Service) {
		s.config.Demand = process.Allocation{CPU: cpu, Memory: memory}
	}
}

// WithEventListener streams every event record to handler asynchronously
func WithEventListener(handler func(*event.Event[process.Snapshot])) Option {
	return func(s *Service) {
		s.listener = handler
	}
}

// WithProgressListener calls handler synchronously with a copy of the session
// counters after every change
func WithProgressListener(handler func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = handler
	}
}

// WithHistory sets the terminated-process history store
func WithHistory(history dao.Service[int, process.Snapshot]) Option {
	return func(s *Service) {
		s.history = history
	}
}

// WithSession sets the session name reported in progress and reports
func WithSession(name string) Option {
	return func(s *Service) {
		s.session = name
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty spans go to stdout; the first initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
