package asynctask

import "sync/atomic"

// ChildFragment is present on every task created as a structural child of
// another task (AsyncTask.Flags.IsChildTask()). It records the parent so
// cancellation and status-record bookkeeping can walk up the tree.
type ChildFragment struct {
	Parent *AsyncTask
}

// GroupChildFragment is present on tasks created via TaskGroup.Add. It
// points back at the group record so the task can offer its result (or
// error) to the group's queue on completion.
type GroupChildFragment struct {
	Group *TaskGroup
}

// futureState is the immutable snapshot a FutureFragment's wait queue
// atomically swaps between. It plays the role the original ABI gives a
// single tagged pointer (status in the low bits, waiter-list head in the
// high bits): Go has no tagged pointers, so the tag and the pointer travel
// together in one allocated value instead, swapped via CompareAndSwap.
type futureState struct {
	status  futureStatus
	waiters *AsyncTask // head of the singly-linked list of parked waiters
	result  any
	err     error
}

type futureStatus uint8

const (
	futureExecuting futureStatus = iota
	futureSuccess
	futureError
)

// FutureFragment is present on every task created with IsFuture() set. It
// holds the eventual result (or error) and the queue of tasks parked in
// WaitFuture, completed exactly once by CompleteFuture.
type FutureFragment struct {
	state atomic.Pointer[futureState]
}

func newFutureFragment() *FutureFragment {
	f := &FutureFragment{}
	f.state.Store(&futureState{status: futureExecuting})
	return f
}

// WaitFuture parks waiter on this future's wait queue and returns
// (result, err, true) if the future had already completed, or
// (nil, nil, false) if waiter was successfully enqueued and must suspend.
// A caller that gets false is responsible for actually suspending waiter
// (e.g. by not re-enqueuing its job) — this method only performs the
// queue linkage.
func (f *FutureFragment) WaitFuture(waiter *AsyncTask) (result any, err error, ready bool) {
	for {
		cur := f.state.Load()
		if cur.status != futureExecuting {
			return cur.result, cur.err, true
		}
		next := &futureState{
			status:  futureExecuting,
			waiters: waiter,
			result:  cur.result,
			err:     cur.err,
		}
		waiter.job.nextWaiting = cur.waiters
		if f.state.CompareAndSwap(cur, next) {
			return nil, nil, false
		}
	}
}

// CompleteFuture completes the future exactly once and returns the chain
// of waiters that were parked on it (to be resumed/enqueued by the
// caller). Calling CompleteFuture a second time panics: a future's result
// is produced by exactly one completion point, matching the single
// completing-context invariant of §4.4.
func (f *FutureFragment) CompleteFuture(result any, err error) []*AsyncTask {
	status := futureSuccess
	if err != nil {
		status = futureError
	}
	for {
		cur := f.state.Load()
		if cur.status != futureExecuting {
			panic("asynctask: future completed more than once")
		}
		next := &futureState{status: status, result: result, err: err}
		if f.state.CompareAndSwap(cur, next) {
			return collectWaiters(cur.waiters)
		}
	}
}

// IsCompleted reports whether the future has already completed.
func (f *FutureFragment) IsCompleted() bool {
	return f.state.Load().status != futureExecuting
}

// PollFuture returns the future's result without blocking if it has
// completed.
func (f *FutureFragment) PollFuture() (result any, err error, ready bool) {
	cur := f.state.Load()
	if cur.status == futureExecuting {
		return nil, nil, false
	}
	return cur.result, cur.err, true
}

func collectWaiters(head *AsyncTask) []*AsyncTask {
	var out []*AsyncTask
	for t := head; t != nil; t = t.job.nextWaiting {
		out = append(out, t)
	}
	return out
}
