package procsched

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxSteps bounds a scenario run that does not set MaxSteps
const DefaultMaxSteps = 1000

// ErrInvalidScenario is returned for a scenario that cannot be run
var ErrInvalidScenario = errors.New("procsched: invalid scenario")

// Op is a scripted operation applied during a scenario run
type Op string

const (
	OpCreate    Op = "create"
	OpSuspend   Op = "suspend"
	OpResume    Op = "resume"
	OpTerminate Op = "terminate"
)

// Scenario is a scripted engine session: a configuration, the processes
// admitted before the first step and operations applied at given steps.
type Scenario struct {
	Name      string     `json:"name" yaml:"name"`
	Config    *Config    `json:"config,omitempty" yaml:"config,omitempty"`
	Processes []*Arrival `json:"processes,omitempty" yaml:"processes,omitempty"`
	Actions   []*Action  `json:"actions,omitempty" yaml:"actions,omitempty"`
	MaxSteps  int        `json:"maxSteps,omitempty" yaml:"maxSteps,omitempty"`
}

// Arrival describes a process to create
type Arrival struct {
	ID            int `json:"id" yaml:"id"`
	Priority      int `json:"priority" yaml:"priority"`
	ExecutionTime int `json:"executionTime" yaml:"executionTime"`
}

// Action applies Op before step Step runs. Arrival attributes are used by
// OpCreate only; PID is used by the other operations.
type Action struct {
	Step    int `json:"step" yaml:"step"`
	Op      Op  `json:"op" yaml:"op"`
	PID     int `json:"pid,omitempty" yaml:"pid,omitempty"`
	Arrival `yaml:",inline"`
}

// NewScenario returns an empty scenario carrying the default configuration
func NewScenario(name string) *Scenario {
	return &Scenario{Name: name, Config: DefaultConfig()}
}

// Validate checks the scripted operations and the configuration
func (s *Scenario) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: scenario was nil", ErrInvalidScenario)
	}
	if s.MaxSteps < 0 {
		return fmt.Errorf("%w: maxSteps must be >= 0", ErrInvalidScenario)
	}
	for i, action := range s.Actions {
		if action == nil {
			return fmt.Errorf("%w: action[%d] was nil", ErrInvalidScenario, i)
		}
		if action.Step < 1 {
			return fmt.Errorf("%w: action[%d]: step must be >= 1", ErrInvalidScenario, i)
		}
		switch action.op() {
		case OpCreate, OpSuspend, OpResume, OpTerminate:
		default:
			return fmt.Errorf("%w: action[%d]: unsupported op %q", ErrInvalidScenario, i, action.Op)
		}
	}
	return s.Config.Validate()
}

// Limit returns the effective step limit
func (s *Scenario) Limit() int {
	if s.MaxSteps == 0 {
		return DefaultMaxSteps
	}
	return s.MaxSteps
}

// lastStep returns the highest step with a scripted action
func (s *Scenario) lastStep() int {
	ret := 0
	for _, action := range s.Actions {
		if action.Step > ret {
			ret = action.Step
		}
	}
	return ret
}

func (a *Action) op() Op {
	return Op(strings.ToLower(strings.TrimSpace(string(a.Op))))
}
