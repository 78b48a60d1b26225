// Package model defines the data structures shared by the scheduling engine.
//
// The process sub-package describes a single schedulable unit of work: its
// lifecycle state, priority, remaining execution time and the resources it
// currently holds.  Higher level services (scheduler, resource pool, channel)
// operate on these types but never own them beyond a single step.
package model
