package asyncexec

import (
	"fmt"
	"testing"

	"concore/internal/asynctask"
)

func TestScopeExitPanicsOnLiveChildren(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	owner := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	scopeID := e.EnterScope(owner, false)
	child := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	e.RegisterChild(scopeID, child)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic on scope exit with live children")
		}
		msg := fmt.Sprint(r)
		want := fmt.Sprintf("asyncexec: scope %d exited with live children: [%d]", scopeID, child)
		if msg != want {
			t.Fatalf("panic mismatch: want %q, got %q", want, msg)
		}
	}()

	e.ExitScope(scopeID)
}

func TestExitScopeSucceedsWhenChildrenDone(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	owner := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	scopeID := e.EnterScope(owner, false)
	child := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	e.RegisterChild(scopeID, child)
	e.Task(child).Status = TaskDone

	e.ExitScope(scopeID)
	if _, ok := e.scopes[scopeID]; ok {
		t.Fatalf("scope should be forgotten after a clean exit")
	}
}

func TestJoinAllChildrenBlockingReportsNextPending(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	owner := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	scopeID := e.EnterScope(owner, false)
	first := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	second := e.Spawn(func(_ *asynctask.AsyncTask, _ asynctask.ExecutorRef, _ *asynctask.AsyncContext) {}, asynctask.NewTaskOptions{})
	e.RegisterChild(scopeID, first)
	e.RegisterChild(scopeID, second)
	e.Task(first).Status = TaskDone

	done, pending, failfast := e.JoinAllChildrenBlocking(scopeID)
	if done || pending != second || failfast {
		t.Fatalf("JoinAllChildrenBlocking = (%v, %v, %v), want (false, %v, false)", done, pending, failfast, second)
	}
}
