// Package resource tracks the finite CPU and memory units shared by all
// simulated processes.  Requests are all-or-nothing and never block: a
// denied request leaves both the pool and the process unchanged.
package resource
