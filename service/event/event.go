package event

import (
	"fmt"
	"time"

	"github.com/viant/procsched/internal/clock"
	"github.com/viant/procsched/internal/idgen"
)

// Type identifies what happened
type Type string

const (
	TypePolicySelected Type = "policySelected"
	TypeCreated        Type = "created"
	TypeRejected       Type = "rejected"
	TypeDispatched     Type = "dispatched"
	TypeGranted        Type = "granted"
	TypeDenied         Type = "denied"
	TypeExecuted       Type = "executed"
	TypeCompleted      Type = "completed"
	TypePreempted      Type = "preempted"
	TypeTerminated     Type = "terminated"
	TypeSuspended      Type = "suspended"
	TypeResumed        Type = "resumed"
	TypeReleased       Type = "released"
	TypeIdle           Type = "idle"
)

// Context carries the engine coordinates of an event
type Context struct {
	ProcessID int    `json:"processID,omitempty"`
	EventType Type   `json:"eventType"`
	Step      int    `json:"step"`
	Elapsed   int    `json:"elapsed"`
	TimeSlice int    `json:"timeSlice,omitempty"`
	Policy    string `json:"policy,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Event[T any] struct {
	ID        string                 `json:"id"`
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		ID:        idgen.New(),
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// WithMetadata sets a metadata entry and returns the event
func (e *Event[T]) WithMetadata(key string, value interface{}) *Event[T] {
	e.Metadata[key] = value
	return e
}

// Type returns the event type or empty string for a context-less event
func (e *Event[T]) Type() Type {
	if e == nil || e.Context == nil {
		return ""
	}
	return e.Context.EventType
}

func (e *Event[T]) String() string {
	if e == nil || e.Context == nil {
		return ""
	}
	c := e.Context
	ret := fmt.Sprintf("[step %d | t=%d] %s", c.Step, c.Elapsed, c.EventType)
	if c.ProcessID > 0 {
		ret += fmt.Sprintf(" process %d", c.ProcessID)
	}
	if c.Message != "" {
		ret += ": " + c.Message
	}
	return ret
}
