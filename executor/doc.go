// Package executor provides an adaptive, self-tuning goroutine pool
// modeled on a classic adaptive service executor: a small reserve of
// worker goroutines that grows under sustained load or a stuck pool,
// and shrinks back down when idle.
//
// # Quick Start
//
// Wire an executor around a Reactor (the reference InMemoryReactor is
// enough for most non-network callers) and start it:
//
//	reactor := core.NewInMemoryReactor()
//	exec := executor.New(reactor, core.DefaultOptions(), nil, nil)
//	exec.Start()
//	defer exec.Shutdown(5 * time.Second)
//
//	exec.Schedule(context.Background(), func(ctx context.Context) {
//		// work here
//	}, 0)
//
// Or use the package-level global executor when a single process-wide
// pool is enough:
//
//	executor.InitGlobalExecutor(core.NewInMemoryReactor(), core.DefaultOptions())
//	defer executor.ShutdownGlobalExecutor(5 * time.Second)
//	executor.GetGlobalExecutor().Schedule(ctx, task, 0)
//
// # Key Concepts
//
// Reactor is the externally owned async I/O engine the pool drives;
// Options is the live-reconfiguration surface controlling reserve size,
// run-time slicing, and starvation thresholds. See package core for the
// full contract both types implement.
package executor
