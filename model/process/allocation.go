package process

// Allocation is a fixed-field resource record used both for what a process
// holds and for what a pool has available.
type Allocation struct {
	CPU    int `json:"cpu" yaml:"cpu"`
	Memory int `json:"memory" yaml:"memory"`
}

// IsZero returns true when no resource unit is held
func (a Allocation) IsZero() bool {
	return a.CPU == 0 && a.Memory == 0
}

// Add returns the sum of both allocations
func (a Allocation) Add(other Allocation) Allocation {
	return Allocation{CPU: a.CPU + other.CPU, Memory: a.Memory + other.Memory}
}

// Covers reports whether a has at least as many units as demand in every field
func (a Allocation) Covers(demand Allocation) bool {
	return a.CPU >= demand.CPU && a.Memory >= demand.Memory
}
