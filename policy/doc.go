// Package policy defines the process selection policies understood by the
// scheduler (FCFS, SJF, Priority and RoundRobin) together with their
// serialisable configuration.  Policy names are matched case-insensitively.
package policy
