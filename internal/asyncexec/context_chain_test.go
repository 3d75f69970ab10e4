package asyncexec

import (
	"testing"

	"concore/internal/asynctask"
)

// relayExecutor forwards Enqueue to the wrapped Executor but is a
// distinct ExecutorRef identity from it, so AsyncContext.Yield/Return
// treat resuming onto it as a genuine executor hop rather than eliding
// the hop via the same-executor fast path.
type relayExecutor struct{ e *Executor }

func (r relayExecutor) Enqueue(job *asynctask.Job) { r.e.Enqueue(job) }

// TestAsyncContextYieldThenReturnDrivesTwoPhaseResumption drives the
// §4.6 AsyncContext linkage contract end to end through the reference
// executor: a task yields to its parent frame across an executor hop,
// the executor re-runs the task's job once relayExecutor hands it back,
// and the second phase returns, completing the task via MarkDone. This
// exercises Yield and Return with real scheduling rather than shape
// checks on their fields.
func TestAsyncContextYieldThenReturnDrivesTwoPhaseResumption(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	relay := relayExecutor{e: e}

	var id TaskID
	yielded := false
	returned := false

	secondPhase := func(task *asynctask.AsyncTask, executor asynctask.ExecutorRef, parent *asynctask.AsyncContext) {
		yielded = true
		returnCtx := asynctask.NewOrdinaryContext(parent, func(*asynctask.AsyncTask, asynctask.ExecutorRef, *asynctask.AsyncContext) {
			returned = true
			e.MarkDone(id, "done", nil)
		}, e)
		returnCtx.Return(task, executor)
	}

	id = e.Spawn(func(task *asynctask.AsyncTask, executor asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
		root := asynctask.NewOrdinaryContext(nil, func(*asynctask.AsyncTask, asynctask.ExecutorRef, *asynctask.AsyncContext) {}, e)
		yielding := asynctask.NewYieldingContext(root, func(*asynctask.AsyncTask, asynctask.ExecutorRef, *asynctask.AsyncContext) {}, e, secondPhase, relay)
		yielding.Yield(task, executor)
	}, asynctask.NewTaskOptions{IsFuture: true})

	e.Run()

	if !yielded {
		t.Fatalf("yield_to_parent was never invoked")
	}
	if !returned {
		t.Fatalf("expected the second phase to Return and complete the task")
	}
	if task := e.Task(id); task.Status != TaskDone {
		t.Fatalf("task status = %v, want TaskDone", task.Status)
	}
}
