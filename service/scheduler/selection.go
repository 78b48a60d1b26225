package scheduler

import (
	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/policy"
)

// selectIndex returns the queue index of the next candidate or -1.
// Waiting entries are never eligible; ties go to the earliest entry.
func selectIndex(kind policy.Kind, queue []*process.Process) int {
	selected := -1
	for i, candidate := range queue {
		if candidate.GetState() == process.StateWaiting {
			continue
		}
		if selected == -1 {
			selected = i
			if kind == policy.FCFS || kind == policy.RoundRobin {
				return selected
			}
			continue
		}
		switch kind {
		case policy.SJF:
			if candidate.Remaining() < queue[selected].Remaining() {
				selected = i
			}
		case policy.Priority:
			if candidate.Priority < queue[selected].Priority {
				selected = i
			}
		}
	}
	return selected
}
