package asynctask

import "sync"

// TaskGroup collects the results of a dynamic set of child tasks created
// via Add, in completion order rather than creation order. It is a plain
// mutex-guarded structure rather than lock-free: unlike the future and
// status-record chains (which are touched from arbitrary executor
// threads at task-resume time), a group's own queue is only ever touched
// while its owning task holds it, so there is no contention to design
// lock-free CAS around.
type TaskGroup struct {
	owner *AsyncTask

	mu       sync.Mutex
	pending  []groupResult // completed children awaiting Next
	outNum   int           // children added but not yet completed-and-collected
	waiter   *AsyncTask    // task parked in Next, if any
	wakeFunc func(*AsyncTask)
}

type groupResult struct {
	value any
	err   error
}

// NewTaskGroup creates a group owned by owner. wake is called (possibly
// from another goroutine/executor thread) when a child the group was
// waiting on completes, so the caller's executor can re-enqueue the
// parked waiter; it may be nil if the caller drives Next via polling only.
func NewTaskGroup(owner *AsyncTask, wake func(*AsyncTask)) *TaskGroup {
	return &TaskGroup{owner: owner, wakeFunc: wake}
}

// Add creates a new group-child task of owner and registers it with the
// group. The caller is responsible for actually enqueueing the returned
// task's Job on an executor.
func (g *TaskGroup) Add(resume TaskResume, priority Priority) *AsyncTask {
	g.mu.Lock()
	g.outNum++
	g.mu.Unlock()

	return NewTask(resume, NewTaskOptions{
		Priority: priority,
		Parent:   g.owner,
		Group:    g,
		IsFuture: true,
	})
}

// offer is called by a group-child task's completion path (see
// asynctask's future-completion plumbing) to hand its result to the
// group. It wakes a parked Next caller, if any.
func (g *TaskGroup) offer(value any, err error) {
	g.mu.Lock()
	g.pending = append(g.pending, groupResult{value: value, err: err})
	g.outNum--
	waiter := g.waiter
	g.waiter = nil
	g.mu.Unlock()

	if waiter != nil && g.wakeFunc != nil {
		g.wakeFunc(waiter)
	}
}

// NextOutcome discriminates the three things Next can report: a result
// is ready, the group is exhausted, or the caller must suspend waiter
// and retry once woken.
type NextOutcome uint8

const (
	NextReady NextOutcome = iota
	NextExhausted
	NextPending
)

// Next returns the next completed child's result, if any.
func (g *TaskGroup) Next(waiter *AsyncTask) (value any, err error, outcome NextOutcome) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.pending) > 0 {
		r := g.pending[0]
		g.pending = g.pending[1:]
		return r.value, r.err, NextReady
	}
	if g.outNum == 0 {
		return nil, nil, NextExhausted
	}
	g.waiter = waiter
	return nil, nil, NextPending
}

// Exhausted reports whether every added child has completed and been
// collected, with nothing left pending.
func (g *TaskGroup) Exhausted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outNum == 0 && len(g.pending) == 0
}

// CancelAll cancels every outstanding structural child of the group's
// owner. It does not distinguish group children from other structural
// children the owner may have — those never coexist in the scopes this
// core is used from, so a plain CancelTree-style sweep over the owner's
// status chain suffices.
func (g *TaskGroup) CancelAll() {
	for _, r := range g.owner.StatusRecords() {
		if child, ok := r.(*ChildTaskStatusRecord); ok {
			child.Child.Cancel()
		}
	}
}

// WaitAll drains Next until the group is exhausted, returning the first
// error encountered (if any) without cancelling siblings. This is a
// convenience absent from the minimal core surface but present on the
// original runtime's TaskGroup; unlike a fail-fast scope it never calls
// CancelAll on its own.
func (g *TaskGroup) WaitAll(park func(*AsyncTask)) error {
	var firstErr error
	for {
		_, err, outcome := g.Next(g.owner)
		switch outcome {
		case NextExhausted:
			return firstErr
		case NextPending:
			park(g.owner)
		case NextReady:
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
}
