// Package scheduler owns the ready queue and the running slot and is the
// only service allowed to mutate a scheduled Process.  Each AdvanceStep call
// performs exactly one unit of simulated work under the active policy and
// reports every action as an event record.
package scheduler
