package asynctask

import (
	"errors"
	"testing"
)

func TestFutureWaitBeforeCompletionParks(t *testing.T) {
	producer := NewTask(noopResume, NewTaskOptions{IsFuture: true})
	waiter := NewTask(noopResume, NewTaskOptions{})

	_, _, ready := Await(waiter, producer)
	if ready {
		t.Fatalf("expected the waiter to park")
	}

	waiters := producer.Complete("done", nil)
	if len(waiters) != 1 || waiters[0] != waiter {
		t.Fatalf("expected exactly the parked waiter back, got %v", waiters)
	}
}

func TestFutureWaitAfterCompletionIsImmediate(t *testing.T) {
	producer := NewTask(noopResume, NewTaskOptions{IsFuture: true})
	producer.Complete(42, nil)

	waiter := NewTask(noopResume, NewTaskOptions{})
	result, err, ready := Await(waiter, producer)
	if !ready {
		t.Fatalf("expected immediate readiness")
	}
	if err != nil || result != 42 {
		t.Fatalf("got (%v, %v), want (42, nil)", result, err)
	}
}

func TestCompleteFutureTwicePanics(t *testing.T) {
	producer := NewTask(noopResume, NewTaskOptions{IsFuture: true})
	producer.Complete("first", nil)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on double completion")
		}
	}()
	producer.Complete("second", nil)
}

func TestAwaitPanicsWithoutFutureFragment(t *testing.T) {
	notAFuture := NewTask(noopResume, NewTaskOptions{})
	waiter := NewTask(noopResume, NewTaskOptions{})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Await(waiter, notAFuture)
}

func TestFutureCarriesErrorPayload(t *testing.T) {
	producer := NewTask(noopResume, NewTaskOptions{IsFuture: true})
	sentinel := errors.New("boom")
	producer.Complete(nil, sentinel)

	waiter := NewTask(noopResume, NewTaskOptions{})
	_, err, ready := Await(waiter, producer)
	if !ready || !errors.Is(err, sentinel) {
		t.Fatalf("got (ready=%v, err=%v), want (true, %v)", ready, err, sentinel)
	}
}

func TestManyWaitersAllResumedOnCompletion(t *testing.T) {
	producer := NewTask(noopResume, NewTaskOptions{IsFuture: true})

	const n = 5
	waiters := make([]*AsyncTask, n)
	for i := range waiters {
		waiters[i] = NewTask(noopResume, NewTaskOptions{})
		if _, _, ready := Await(waiters[i], producer); ready {
			t.Fatalf("waiter %d should have parked", i)
		}
	}

	resumed := producer.Complete("value", nil)
	if len(resumed) != n {
		t.Fatalf("got %d resumed waiters, want %d", len(resumed), n)
	}
}
