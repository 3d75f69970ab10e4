package asyncexec

import (
	"errors"
	"testing"

	"concore/internal/asynctask"
)

func TestSpawnAndRunCompletesTask(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	ran := false
	var id TaskID
	id = e.Spawn(func(task *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
		ran = true
		e.MarkDone(id, 42, nil)
	}, asynctask.NewTaskOptions{IsFuture: true})

	if n := e.Run(); n != 1 {
		t.Fatalf("Run() ran %d jobs, want 1", n)
	}
	if !ran {
		t.Fatalf("spawned task never ran")
	}
	task := e.Task(id)
	if task.Status != TaskDone {
		t.Fatalf("task status = %v, want TaskDone", task.Status)
	}
}

func TestEnqueueAdoptsUntrackedTask(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	at := asynctask.NewTask(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	e.Enqueue(at.Job())

	if n := e.Run(); n != 1 {
		t.Fatalf("Run() ran %d jobs, want 1", n)
	}
	if _, ok := e.TaskIDOf(at); !ok {
		t.Fatalf("adopted task was never tracked")
	}
}

func TestMarkDoneWakesJoinWaiters(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	var childID TaskID
	childID = e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
		e.MarkDone(childID, "done", nil)
	}, asynctask.NewTaskOptions{IsFuture: true})

	childTask := e.Task(childID)
	var parentID TaskID
	resumed := false
	parentID = e.Spawn(func(parentAsync *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
		result, err, ready := asynctask.Await(parentAsync, childTask.AsyncTask)
		if !ready {
			e.ParkCurrent(JoinKey(childID))
			return
		}
		resumed = true
		if err != nil || result != "done" {
			t.Fatalf("unexpected await result: %v %v", result, err)
		}
	}, asynctask.NewTaskOptions{})
	_ = parentID

	e.Run()
	if !resumed {
		t.Fatalf("parent task never observed child completion")
	}
}

func TestCancelPropagatesToChildren(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	parentID := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	parent := e.Task(parentID)
	childID := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{Parent: parent.AsyncTask})
	parent.Children = append(parent.Children, childID)

	e.Cancel(parentID)

	child := e.Task(childID)
	if !child.Cancelled || !child.AsyncTask.IsCancelled() {
		t.Fatalf("child was not cancelled transitively")
	}
}

func TestRunAdvancesVirtualTimeWhenIdle(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	var id TaskID
	woke := false
	first := true
	id = e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
		if first {
			first = false
			e.TimerScheduleAfter(id, 10)
			e.ParkCurrent(TimerKey(1))
			return
		}
		woke = true
	}, asynctask.NewTaskOptions{})

	e.Run()
	if !woke {
		t.Fatalf("task never woke after virtual timer fired")
	}
}

func TestMarkDoneTriggersFailfastCancellation(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	ownerID := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	scopeID := e.EnterScope(ownerID, true)

	owner := e.Task(ownerID)
	var failing TaskID
	failing = e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {
		e.MarkDone(failing, nil, errors.New("boom"))
	}, asynctask.NewTaskOptions{Parent: owner.AsyncTask, IsFuture: true})
	e.RegisterChild(scopeID, failing)

	survivor := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{Parent: owner.AsyncTask})
	e.RegisterChild(scopeID, survivor)

	e.Run()

	scope := e.scopes[scopeID]
	if scope == nil || !scope.FailfastTriggered {
		t.Fatalf("failfast was not triggered")
	}
	if !e.Task(survivor).Cancelled {
		t.Fatalf("sibling was not cancelled by failfast")
	}
}
