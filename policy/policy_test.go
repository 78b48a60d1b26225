package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Kind
		expectErr bool
	}{
		{name: "fcfs upper", input: "FCFS", expect: FCFS},
		{name: "sjf lower", input: "sjf", expect: SJF},
		{name: "priority mixed", input: "pRiOrItY", expect: Priority},
		{name: "round robin padded", input: " roundrobin ", expect: RoundRobin},
		{name: "unknown", input: "lottery", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseKind(tc.input)
			if tc.expectErr {
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestNew_Quantum(t *testing.T) {
	testCases := []struct {
		name            string
		policy          string
		quantum         int
		expectQuantum   int
		expectDefaulted bool
	}{
		{name: "round robin explicit", policy: "RoundRobin", quantum: 3, expectQuantum: 3},
		{name: "round robin zero", policy: "RoundRobin", quantum: 0, expectQuantum: DefaultQuantum, expectDefaulted: true},
		{name: "round robin negative", policy: "roundrobin", quantum: -1, expectQuantum: DefaultQuantum, expectDefaulted: true},
		{name: "fcfs ignores quantum", policy: "FCFS", quantum: 0, expectQuantum: DefaultQuantum},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.policy, tc.quantum)
			assert.NoError(t, err)
			assert.Equal(t, tc.expectQuantum, p.Quantum)
			assert.Equal(t, tc.expectDefaulted, p.QuantumDefaulted)
		})
	}
}

func TestPolicy_TimeSlice(t *testing.T) {
	rr, _ := New("RoundRobin", 2)
	fcfs, _ := New("FCFS", 2)

	assert.Equal(t, 2, rr.TimeSlice(5))
	assert.Equal(t, 1, rr.TimeSlice(1))
	assert.Equal(t, 1, fcfs.TimeSlice(5))
	assert.Equal(t, "RoundRobin(q=2)", rr.String())
	assert.Equal(t, "FCFS", fcfs.String())
}

func TestConfigRoundTrip(t *testing.T) {
	p, err := FromConfig(&Config{Name: "sjf", Quantum: 4})
	assert.NoError(t, err)
	assert.Equal(t, SJF, p.Kind)
	assert.Equal(t, &Config{Name: "SJF", Quantum: 4}, ToConfig(p))

	_, err = FromConfig(nil)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}
