package policy

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a selection policy.
type Kind string

// Selection policies recognised by the scheduler.
const (
	FCFS       Kind = "FCFS"       // first come, first served
	SJF        Kind = "SJF"        // shortest remaining time first
	Priority   Kind = "Priority"   // lowest priority value first
	RoundRobin Kind = "RoundRobin" // FCFS with a quantum and re-queue
)

// DefaultQuantum is used when a RoundRobin quantum is missing or invalid.
const DefaultQuantum = 2

// ErrInvalidConfiguration is returned for an unrecognised policy name or
// an otherwise unusable engine configuration.
var ErrInvalidConfiguration = errors.New("policy: invalid configuration")

var kinds = []Kind{FCFS, SJF, Priority, RoundRobin}

// Kinds returns all supported policies in their canonical spelling.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind matches name case-insensitively against the supported policies.
func ParseKind(name string) (Kind, error) {
	normalized := strings.TrimSpace(name)
	for _, k := range kinds {
		if strings.EqualFold(normalized, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported policy %q", ErrInvalidConfiguration, name)
}

// Policy is the resolved selection policy used by a scheduler.
//
//   - Kind selects the candidate from the ready queue.
//   - Quantum bounds the time slice per selection; only RoundRobin uses it.
//   - QuantumDefaulted is true when an invalid quantum was replaced by
//     DefaultQuantum, so that callers can report the substitution.
type Policy struct {
	Kind             Kind
	Quantum          int
	QuantumDefaulted bool
}

// New resolves a policy from its name and quantum.  An unknown name is an
// error; a non-positive quantum falls back to DefaultQuantum.
func New(name string, quantum int) (*Policy, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	ret := &Policy{Kind: kind, Quantum: quantum}
	if quantum <= 0 {
		ret.Quantum = DefaultQuantum
		ret.QuantumDefaulted = kind == RoundRobin
	}
	return ret, nil
}

// IsRoundRobin reports whether the policy re-queues after each slice.
func (p *Policy) IsRoundRobin() bool {
	return p != nil && p.Kind == RoundRobin
}

// TimeSlice returns the number of time units granted for one step.
func (p *Policy) TimeSlice(remaining int) int {
	slice := 1
	if p.IsRoundRobin() {
		slice = p.Quantum
	}
	if remaining < slice {
		return remaining
	}
	return slice
}

func (p *Policy) String() string {
	if p == nil {
		return ""
	}
	if p.IsRoundRobin() {
		return fmt.Sprintf("%s(q=%d)", p.Kind, p.Quantum)
	}
	return string(p.Kind)
}

// ---------------------------------------------------------------------------
// Config <-> Policy converters
// ---------------------------------------------------------------------------

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Name    string `json:"policy,omitempty" yaml:"policy,omitempty"`
	Quantum int    `json:"quantum,omitempty" yaml:"quantum,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{Name: string(p.Kind), Quantum: p.Quantum}
}

// FromConfig converts a stored Config back to a runtime Policy.
func FromConfig(c *Config) (*Policy, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: policy config was nil", ErrInvalidConfiguration)
	}
	return New(c.Name, c.Quantum)
}
