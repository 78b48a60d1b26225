package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/procsched/service/dao"
)

func TestFilterByState(t *testing.T) {
	testCases := []struct {
		name       string
		state      string
		parameters []*dao.Parameter
		expect     bool
	}{
		{name: "no parameters", state: "ready", expect: true},
		{name: "single match", state: "terminated", parameters: []*dao.Parameter{dao.NewParameter("State", "terminated")}, expect: true},
		{name: "single mismatch", state: "ready", parameters: []*dao.Parameter{dao.NewParameter("State", "terminated")}, expect: false},
		{name: "multi match", state: "waiting", parameters: []*dao.Parameter{dao.NewParameter("State", "ready", "waiting")}, expect: true},
		{name: "multi mismatch", state: "running", parameters: []*dao.Parameter{dao.NewParameter("State", "ready", "waiting")}, expect: false},
		{name: "other parameter ignored", state: "running", parameters: []*dao.Parameter{dao.NewParameter("Priority", "1")}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, FilterByState(tc.state, tc.parameters))
		})
	}
}
