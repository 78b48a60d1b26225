package process

// State represents the lifecycle state of a process
type State string

const (
	StateReady      State = "ready"
	StateRunning    State = "running"
	StateWaiting    State = "waiting" //suspended or blocked on a semaphore
	StateTerminated State = "terminated"
)

// IsTerminal returns true when no further transition is possible
func (s State) IsTerminal() bool {
	return s == StateTerminated
}

// TerminationReason explains why a process reached StateTerminated
type TerminationReason string

const (
	ReasonNone              TerminationReason = ""
	ReasonNormalCompletion  TerminationReason = "normalCompletion"
	ReasonForcedTermination TerminationReason = "forcedTermination"
)
