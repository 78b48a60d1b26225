package procsched

import (
	"fmt"

	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/policy"
	"github.com/viant/procsched/service/resource"
	"github.com/viant/procsched/service/scheduler"
)

// ErrInvalidConfiguration is returned for an unusable engine configuration.
var ErrInvalidConfiguration = policy.ErrInvalidConfiguration

// Config is a serialisable representation of the engine configuration. It can
// be populated from YAML or JSON; DefaultConfig fills every section.
type Config struct {
	Resources resource.Config    `json:"resources" yaml:"resources"`
	Demand    process.Allocation `json:"demand" yaml:"demand"`
	Scheduler policy.Config      `json:"scheduler" yaml:"scheduler"`
	Events    EventsConfig       `json:"events" yaml:"events"`
	History   HistoryConfig      `json:"history" yaml:"history"`
}

// EventsConfig controls asynchronous event delivery
type EventsConfig struct {
	Buffer int `json:"buffer" yaml:"buffer"`
}

// HistoryConfig selects where terminated process snapshots are kept; an
// empty URL keeps them in memory.
type HistoryConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// DefaultConfig returns a Config populated with the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Resources: resource.DefaultConfig(),
		Demand:    scheduler.DefaultDemand,
		Scheduler: policy.Config{Name: string(policy.FCFS), Quantum: policy.DefaultQuantum},
		Events:    EventsConfig{Buffer: 100},
	}
}

// Validate returns an error wrapping ErrInvalidConfiguration or nil. A
// non-positive quantum is not an error; it falls back to the default.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if _, err := policy.ParseKind(c.Scheduler.Name); err != nil {
		return fmt.Errorf("scheduler.policy: %w", err)
	}
	if c.Resources.CPU <= 0 || c.Resources.Memory <= 0 {
		return fmt.Errorf("%w: resources must be > 0 (cpu=%d memory=%d)", ErrInvalidConfiguration, c.Resources.CPU, c.Resources.Memory)
	}
	if c.Demand.CPU < 0 || c.Demand.Memory < 0 {
		return fmt.Errorf("%w: demand must be >= 0 (cpu=%d memory=%d)", ErrInvalidConfiguration, c.Demand.CPU, c.Demand.Memory)
	}
	total := process.Allocation{CPU: c.Resources.CPU, Memory: c.Resources.Memory}
	if !total.Covers(c.Demand) {
		return fmt.Errorf("%w: demand cpu=%d memory=%d exceeds resources cpu=%d memory=%d", ErrInvalidConfiguration,
			c.Demand.CPU, c.Demand.Memory, total.CPU, total.Memory)
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("%w: events.buffer must be >= 0", ErrInvalidConfiguration)
	}
	return nil
}
