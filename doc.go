// Package procsched provides a didactic, single-threaded process scheduling
// engine.
//
// The engine keeps a ready queue and a single running slot, arbitrated by one
// of four policies (FCFS, SJF, Priority, RoundRobin), and grants CPU and
// memory units from a fixed resource pool while a process runs.  Time is
// simulated: each call to Step performs one unit of work.
//
// End-users typically interact with the engine via the Service façade
// exposed by the root package:
//
//	srv, _ := procsched.New(procsched.WithPolicy("RoundRobin"), procsched.WithQuantum(2))
//	_, _ = srv.CreateProcess(ctx, 1, 5, 3)
//	for srv.Step(ctx) {
//	}
//	for _, e := range srv.Events() {
//		fmt.Println(e)
//	}
//
// Scripted sessions can be loaded from YAML and replayed with a Runtime:
//
//	rt := procsched.NewRuntime(procsched.WithMetaBaseURL("file:///scenarios"))
//	scenario, _ := rt.LoadScenario(ctx, "roundrobin.yaml")
//	srv, _ := rt.Run(ctx, scenario)
//
// Building blocks (semaphore, bounded channel, resource pool, scheduler) are
// available in the service sub-packages.
package procsched
