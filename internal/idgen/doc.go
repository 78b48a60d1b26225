// Package idgen wraps the UUID generator used for event and message ids so
// that it can be stubbed in tests.  Process ids are operator supplied
// integers and are never generated here.
package idgen
