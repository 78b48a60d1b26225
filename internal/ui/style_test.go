package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/viant/procsched/model/process"
	"github.com/viant/procsched/progress"
	"github.com/viant/procsched/service/event"
	"github.com/viant/procsched/service/report"
)

func TestEventLine(t *testing.T) {
	color.NoColor = true
	testCases := []struct {
		description string
		event       *event.Event[process.Snapshot]
		expect      string
	}{
		{
			description: "executed",
			event:       event.NewEvent(&event.Context{ProcessID: 1, EventType: event.TypeExecuted, Step: 2, Elapsed: 4, TimeSlice: 2}, process.Snapshot{ID: 1, RemainingTime: 1}),
			expect:      "[step   2 | t=  4] executed process 1 slice=2 remaining=1",
		},
		{
			description: "idle",
			event:       event.NewEvent(&event.Context{EventType: event.TypeIdle, Step: 3, Elapsed: 4, Message: "no processes to run"}, process.Snapshot{}),
			expect:      "[step   3 | t=  4] idle: no processes to run",
		},
		{
			description: "nil",
			expect:      "",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, EventLine(testCase.event))
		})
	}
}

func TestPrintReport(t *testing.T) {
	color.NoColor = true
	r := report.New(progress.Progress{Session: "s1", Policy: "FCFS", Steps: 2, Elapsed: 2, Created: 1, Completed: 1}, nil)
	r.Resources.Total = process.Allocation{CPU: 1, Memory: 4096}
	r.Resources.Available = r.Resources.Total
	buf := &bytes.Buffer{}
	PrintReport(buf, r)
	output := buf.String()
	assert.Contains(t, output, "session s1 | FCFS")
	assert.Contains(t, output, "running slot empty")
	assert.Contains(t, output, "cpu available: 1/1 | memory available: 4096/4096")
	assert.Contains(t, output, "completed: 1")
}
