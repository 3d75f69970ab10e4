// Package demo drives a small structured-concurrency workload on an
// asyncexec.Executor, for the CLI's run command and for tests that want
// a more realistic exerciser than a single hand-spawned task.
package demo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"concore/internal/asyncexec"
	"concore/internal/asynctask"
	"concore/internal/runevent"
)

// WorkloadOptions configures RunWorkload.
type WorkloadOptions struct {
	// ChildCount is how many group children the root task spawns.
	ChildCount int
	// WorkMs is the simulated (virtual) work duration for each child.
	WorkMs uint64
}

// ChildOutcome records one child task's final result.
type ChildOutcome struct {
	TaskID asyncexec.TaskID
	Value  any
}

// WorkloadResult is the outcome of running a whole workload to completion.
type WorkloadResult struct {
	RootID   asyncexec.TaskID
	Children []ChildOutcome
}

// RunWorkload spawns a root task that fans out opts.ChildCount group
// children via asynctask.TaskGroup, each simulating work with a virtual
// timer, and drives e.Run() to completion. Progress is reported to sink
// as tasks spawn, run, park, and finish. The scope is exited once every
// child has been collected, exercising the same live-children invariant
// a real caller would rely on.
func RunWorkload(e *asyncexec.Executor, opts WorkloadOptions, sink runevent.ProgressSink) WorkloadResult {
	if sink == nil {
		sink = runevent.NopSink{}
	}
	if opts.ChildCount <= 0 {
		opts.ChildCount = 1
	}

	var rootID asyncexec.TaskID
	var group *asynctask.TaskGroup
	var scopeID asyncexec.ScopeID
	var children []ChildOutcome

	rootID = e.Spawn(func(task *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
		for {
			value, _, outcome := group.Next(task)
			switch outcome {
			case asynctask.NextReady:
				children = append(children, ChildOutcome{Value: value})
			case asynctask.NextExhausted:
				e.ExitScope(scopeID)
				e.MarkDone(rootID, children, nil)
				return
			case asynctask.NextPending:
				return
			}
		}
	}, asynctask.NewTaskOptions{IsFuture: true})

	root := e.Task(rootID)
	scopeID = e.EnterScope(rootID, true)
	sink.OnEvent(runevent.Event{TaskID: uint64(rootID), Stage: runevent.StageSpawn, Status: runevent.StatusQueued})

	group = asynctask.NewTaskGroup(root.AsyncTask, func(waiter *asynctask.AsyncTask) {
		if id, ok := e.TaskIDOf(waiter); ok {
			e.Wake(id)
		}
	})

	for i := 0; i < opts.ChildCount; i++ {
		idx := i
		started := false
		child := group.Add(func(task *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
			childID, _ := e.TaskIDOf(task)
			if !started {
				started = true
				sink.OnEvent(runevent.Event{TaskID: uint64(childID), Stage: runevent.StageRunning, Status: runevent.StatusWorking})
				timerID := e.TimerScheduleAfter(childID, opts.WorkMs)
				e.ParkCurrent(asyncexec.TimerKey(timerID))
				sink.OnEvent(runevent.Event{TaskID: uint64(childID), Stage: runevent.StageParked, Status: runevent.StatusWorking})
				return
			}
			sink.OnEvent(runevent.Event{TaskID: uint64(childID), Stage: runevent.StageDone, Status: runevent.StatusDone})
			e.MarkDone(childID, idx, nil)
		}, asynctask.PriorityDefault)

		e.Enqueue(child.Job())
		childID, _ := e.TaskIDOf(child)
		e.RegisterChild(scopeID, childID)
	}

	e.Run()

	return WorkloadResult{RootID: rootID, Children: children}
}

// RunWorkloadsParallel runs each of opts as an independent workload on its
// own executor, up to jobs lanes concurrently (defaulting to
// runtime.GOMAXPROCS(0) when jobs <= 0). Each lane is a wholly separate
// asyncexec.Executor: this buys OS-thread parallelism across independent
// cooperative schedulers without giving any single executor work-stealing
// or preemption, which stay out of scope per the executor's own
// scheduling-policy non-goal.
//
// results[i] corresponds to opts[i]; since each goroutine only ever writes
// its own index, no mutex guards the slice. ctx is checked only before a
// lane starts: a lane that has not started when ctx is cancelled is
// skipped and the context's error is returned alongside whatever results
// completed; a running lane, including its sink writes, is not interrupted.
func RunWorkloadsParallel(ctx context.Context, opts []WorkloadOptions, jobs int, sink runevent.ProgressSink) ([]WorkloadResult, error) {
	if len(opts) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]WorkloadResult, len(opts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(opts)))

	for i, o := range opts {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			e := asyncexec.NewExecutor(asyncexec.Config{Deterministic: true})
			results[i] = RunWorkload(e, o, sink)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
