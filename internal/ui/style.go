// Package ui renders engine events and reports for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/service/event"
	"github.com/viant/procsched/service/report"
)

// Sprint color functions for building styled strings.
var (
	Bold       = color.New(color.Bold).SprintFunc()
	Dim        = color.New(color.Faint).SprintFunc()
	Cyan       = color.New(color.FgCyan).SprintFunc()
	Green      = color.New(color.FgGreen).SprintFunc()
	Red        = color.New(color.FgRed).SprintFunc()
	Yellow     = color.New(color.FgYellow).SprintFunc()
	Magenta    = color.New(color.FgMagenta).SprintFunc()
	BoldGreen  = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed    = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow = color.New(color.Bold, color.FgYellow).SprintFunc()
)

// typeColor picks a color per event type; unlisted types render plain.
func typeColor(t event.Type) func(a ...interface{}) string {
	switch t {
	case event.TypeCompleted:
		return BoldGreen
	case event.TypeTerminated, event.TypeRejected:
		return BoldRed
	case event.TypeDenied:
		return Red
	case event.TypePreempted, event.TypeSuspended:
		return Yellow
	case event.TypeResumed, event.TypeGranted:
		return Green
	case event.TypeDispatched, event.TypeExecuted:
		return Cyan
	case event.TypePolicySelected:
		return Magenta
	case event.TypeIdle, event.TypeReleased:
		return Dim
	}
	return fmt.Sprint
}

// EventLine returns a colored single-line rendering of e
func EventLine(e *event.Event[process.Snapshot]) string {
	if e == nil || e.Context == nil {
		return ""
	}
	c := e.Context
	var b strings.Builder
	b.WriteString(Dim(fmt.Sprintf("[step %3d | t=%3d]", c.Step, c.Elapsed)))
	b.WriteString(" ")
	b.WriteString(typeColor(c.EventType)(string(c.EventType)))
	if c.ProcessID > 0 {
		b.WriteString(" " + Bold(fmt.Sprintf("process %d", c.ProcessID)))
	}
	if c.TimeSlice > 0 {
		b.WriteString(fmt.Sprintf(" slice=%d remaining=%d", c.TimeSlice, e.Data.RemainingTime))
	}
	if c.Message != "" {
		b.WriteString(": " + c.Message)
	}
	return b.String()
}

// PrintEvents writes one line per event to w
func PrintEvents(w io.Writer, events []*event.Event[process.Snapshot]) {
	for _, e := range events {
		fmt.Fprintln(w, EventLine(e))
	}
}

// PrintReport writes the listing, pool state and counters of r to w
func PrintReport(w io.Writer, r *report.Report) {
	fmt.Fprintln(w, Bold("session ")+r.Session+Dim(" | ")+Magenta(r.Policy))
	if r.Current != nil {
		fmt.Fprintln(w, "  "+Cyan("running")+" "+r.Current.String())
	} else {
		fmt.Fprintln(w, "  "+Dim("running slot empty"))
	}
	for _, snapshot := range r.Ready {
		fmt.Fprintln(w, "  "+Yellow("queued ")+" "+snapshot.String())
	}
	for _, snapshot := range r.History {
		fmt.Fprintln(w, "  "+Green("finished")+" "+snapshot.String())
	}
	res := r.Resources
	fmt.Fprintf(w, "  cpu available: %d/%d | memory available: %d/%d\n",
		res.Available.CPU, res.Total.CPU, res.Available.Memory, res.Total.Memory)
	s := r.Summary
	fmt.Fprintf(w, "  steps: %d (idle %d) | elapsed: %d | completed: %s | terminated: %s | rejected: %s | denied: %d | preempted: %d\n",
		s.Steps, s.IdleSteps, s.Elapsed, BoldGreen(s.Completed), BoldRed(s.Terminated), BoldYellow(s.Rejected), s.Denied, s.Preempted)
}
