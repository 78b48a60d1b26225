package criteria

import (
	"github.com/viant/procsched/service/dao"
)

// FilterByState returns true when state matches the State parameter, or
// when no State parameter was supplied.
func FilterByState(state string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.StateParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			return state == actual
		case []string:
			for _, s := range actual {
				if state == s {
					return true
				}
			}
			return false
		}
	}
	return true
}
