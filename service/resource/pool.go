package resource

import (
	"errors"
	"fmt"
	"sync"

	"github.com/viant/procsched/model/process"
)

// Default pool totals.
const (
	DefaultCPU    = 1
	DefaultMemory = 4096
)

// ErrResourceExhausted is returned when a request exceeds what is available.
var ErrResourceExhausted = errors.New("resource: exhausted")

// Holder is anything that can be credited with and reclaimed from resources.
type Holder interface {
	Grant(a process.Allocation)
	Reclaim() process.Allocation
}

// Config represents pool totals
type Config struct {
	CPU    int `json:"cpu" yaml:"cpu"`
	Memory int `json:"memory" yaml:"memory"`
}

// DefaultConfig returns the default pool totals
func DefaultConfig() Config {
	return Config{CPU: DefaultCPU, Memory: DefaultMemory}
}

// Pool grants and reclaims resource allocations
type Pool struct {
	total     process.Allocation
	available process.Allocation
	mu        sync.Mutex
}

// New creates a pool with all units available
func New(config Config) *Pool {
	total := process.Allocation{CPU: config.CPU, Memory: config.Memory}
	return &Pool{total: total, available: total}
}

// Request debits the pool and credits holder only if every field of demand
// is available.  Check and debit happen under one lock.
func (p *Pool) Request(holder Holder, demand process.Allocation) error {
	if demand.CPU < 0 || demand.Memory < 0 {
		return fmt.Errorf("invalid demand cpu=%d memory=%d", demand.CPU, demand.Memory)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.available.Covers(demand) {
		return fmt.Errorf("%w: requested cpu=%d memory=%d, available cpu=%d memory=%d",
			ErrResourceExhausted, demand.CPU, demand.Memory, p.available.CPU, p.available.Memory)
	}
	p.available.CPU -= demand.CPU
	p.available.Memory -= demand.Memory
	holder.Grant(demand)
	return nil
}

// Release credits the pool with exactly what holder holds and zeroes the
// holder's allocation.  Releasing an empty holder is a no-op.
func (p *Pool) Release(holder Holder) process.Allocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	held := holder.Reclaim()
	p.available = p.available.Add(held)
	return held
}

// Available returns the currently free units
func (p *Pool) Available() process.Allocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

// Total returns the fixed totals the pool was created with
func (p *Pool) Total() process.Allocation {
	return p.total
}

func (p *Pool) String() string {
	available := p.Available()
	return fmt.Sprintf("cpu available: %d/%d | memory available: %d/%d",
		available.CPU, p.total.CPU, available.Memory, p.total.Memory)
}
