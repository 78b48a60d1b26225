package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier as string.
var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }

// Sequential replaces NewFunc with a deterministic prefix-N generator and
// returns a function restoring the previous one.
func Sequential(prefix string) (restore func()) {
	prev := NewFunc
	var counter int64
	NewFunc = func() string {
		return prefix + strconv.FormatInt(atomic.AddInt64(&counter, 1), 10)
	}
	return func() { NewFunc = prev }
}
