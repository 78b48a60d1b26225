package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/procsched/model/process"
)

func newProcess(t *testing.T, id int) *process.Process {
	p, err := process.New(id, 5, 3)
	assert.NoError(t, err)
	return p
}

func TestPool_Request(t *testing.T) {
	testCases := []struct {
		name            string
		config          Config
		demand          process.Allocation
		expectErr       error
		expectAvailable process.Allocation
		expectHeld      process.Allocation
	}{
		{
			name:            "granted",
			config:          DefaultConfig(),
			demand:          process.Allocation{CPU: 1, Memory: 1000},
			expectAvailable: process.Allocation{CPU: 0, Memory: 3096},
			expectHeld:      process.Allocation{CPU: 1, Memory: 1000},
		},
		{
			name:            "cpu exhausted",
			config:          Config{CPU: 0, Memory: 4096},
			demand:          process.Allocation{CPU: 1, Memory: 1000},
			expectErr:       ErrResourceExhausted,
			expectAvailable: process.Allocation{CPU: 0, Memory: 4096},
		},
		{
			name:            "memory exhausted leaves cpu untouched",
			config:          Config{CPU: 2, Memory: 512},
			demand:          process.Allocation{CPU: 1, Memory: 1000},
			expectErr:       ErrResourceExhausted,
			expectAvailable: process.Allocation{CPU: 2, Memory: 512},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := New(tc.config)
			p := newProcess(t, 1)
			err := pool.Request(p, tc.demand)
			if tc.expectErr != nil {
				assert.True(t, errors.Is(err, tc.expectErr), "unexpected error: %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectAvailable, pool.Available())
			assert.Equal(t, tc.expectHeld, p.Allocation())
		})
	}
}

func TestPool_ReleaseIsIdempotent(t *testing.T) {
	pool := New(DefaultConfig())
	p := newProcess(t, 1)
	assert.NoError(t, pool.Request(p, process.Allocation{CPU: 1, Memory: 1000}))

	released := pool.Release(p)
	assert.Equal(t, process.Allocation{CPU: 1, Memory: 1000}, released)
	assert.Equal(t, pool.Total(), pool.Available())

	released = pool.Release(p)
	assert.True(t, released.IsZero())
	assert.Equal(t, pool.Total(), pool.Available())
}

func TestPool_Conservation(t *testing.T) {
	pool := New(Config{CPU: 2, Memory: 4096})
	p1, p2, p3 := newProcess(t, 1), newProcess(t, 2), newProcess(t, 3)
	demand := process.Allocation{CPU: 1, Memory: 1000}

	assert.NoError(t, pool.Request(p1, demand))
	assert.NoError(t, pool.Request(p2, demand))
	assert.Error(t, pool.Request(p3, demand))

	sum := pool.Available().Add(p1.Allocation()).Add(p2.Allocation()).Add(p3.Allocation())
	assert.Equal(t, pool.Total(), sum)

	pool.Release(p1)
	sum = pool.Available().Add(p1.Allocation()).Add(p2.Allocation()).Add(p3.Allocation())
	assert.Equal(t, pool.Total(), sum)
	assert.Equal(t, "cpu available: 1/2 | memory available: 3096/4096", pool.String())
}

func TestPool_InvalidDemand(t *testing.T) {
	pool := New(DefaultConfig())
	p := newProcess(t, 1)
	err := pool.Request(p, process.Allocation{CPU: -1})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrResourceExhausted))
	assert.Equal(t, pool.Total(), pool.Available())
}
