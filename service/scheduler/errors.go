package scheduler

import (
	"errors"
	"fmt"

	"github.com/viant/procsched/model/process"
)

var (
	// ErrInvalidIdentifier covers non-positive, duplicate and unknown process ids.
	ErrInvalidIdentifier = errors.New("scheduler: invalid identifier")

	// ErrNotFound is returned together with ErrInvalidIdentifier when a pid
	// is neither queued nor running.
	ErrNotFound = errors.New("process not found")

	// ErrInvalidState is returned when the target exists but is not in the
	// state or location the operation requires.
	ErrInvalidState = errors.New("scheduler: invalid state")
)

func notFound(pid int) error {
	return fmt.Errorf("%w: %w: %d", ErrInvalidIdentifier, ErrNotFound, pid)
}

func admissionError(err error) error {
	switch {
	case errors.Is(err, process.ErrInvalidID):
		return fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	case errors.Is(err, process.ErrAllocated):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return err
}
