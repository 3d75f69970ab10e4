package asynctask

import (
	"errors"
	"testing"
)

func TestGroupAddAndCollectInCompletionOrder(t *testing.T) {
	owner := NewTask(noopResume, NewTaskOptions{})
	group := NewTaskGroup(owner, nil)

	first := group.Add(noopResume, DefaultPriority)
	second := group.Add(noopResume, DefaultPriority)

	// Complete out of creation order.
	second.Complete("second-done", nil)
	first.Complete("first-done", nil)

	v1, _, outcome1 := group.Next(owner)
	if outcome1 != NextReady || v1 != "second-done" {
		t.Fatalf("got (%v, %v), want (second-done, NextReady)", v1, outcome1)
	}

	v2, _, outcome2 := group.Next(owner)
	if outcome2 != NextReady || v2 != "first-done" {
		t.Fatalf("got (%v, %v), want (first-done, NextReady)", v2, outcome2)
	}

	_, _, outcome3 := group.Next(owner)
	if outcome3 != NextExhausted {
		t.Fatalf("got %v, want NextExhausted", outcome3)
	}
}

func TestGroupNextPendingWhenNoResultYet(t *testing.T) {
	owner := NewTask(noopResume, NewTaskOptions{})
	group := NewTaskGroup(owner, nil)
	group.Add(noopResume, DefaultPriority)

	_, _, outcome := group.Next(owner)
	if outcome != NextPending {
		t.Fatalf("got %v, want NextPending", outcome)
	}
}

func TestGroupWakeCallbackFiresOnOffer(t *testing.T) {
	owner := NewTask(noopResume, NewTaskOptions{})
	var woken *AsyncTask
	group := NewTaskGroup(owner, func(t *AsyncTask) { woken = t })

	child := group.Add(noopResume, DefaultPriority)
	if _, _, outcome := group.Next(owner); outcome != NextPending {
		t.Fatalf("expected NextPending before completion")
	}

	child.Complete("done", nil)

	if woken != owner {
		t.Fatalf("expected wake callback to fire with the parked waiter")
	}
}

func TestGroupCancelAllCancelsOutstandingChildren(t *testing.T) {
	owner := NewTask(noopResume, NewTaskOptions{})
	group := NewTaskGroup(owner, nil)

	a := group.Add(noopResume, DefaultPriority)
	b := group.Add(noopResume, DefaultPriority)

	group.CancelAll()

	if !a.IsCancelled() || !b.IsCancelled() {
		t.Fatalf("expected all outstanding children cancelled")
	}
}

func TestGroupWaitAllReturnsFirstError(t *testing.T) {
	owner := NewTask(noopResume, NewTaskOptions{})
	group := NewTaskGroup(owner, nil)

	a := group.Add(noopResume, DefaultPriority)
	b := group.Add(noopResume, DefaultPriority)

	sentinel := errors.New("boom")
	a.Complete("ok", nil)
	b.Complete(nil, sentinel)

	parkCalls := 0
	err := group.WaitAll(func(*AsyncTask) { parkCalls++ })
	if err != sentinel {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
	if parkCalls != 0 {
		t.Fatalf("did not expect park calls when all results are already ready")
	}

	if !group.Exhausted() {
		t.Fatalf("expected group exhausted after WaitAll")
	}
}
