package asyncexec

import "container/heap"

// TimerID identifies a scheduled timer.
type TimerID uint64

// Timer represents a single scheduled wakeup.
type Timer struct {
	id         TimerID
	deadlineMs uint64
	key        WakerKey
	taskID     TaskID
	cancelled  bool
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadlineMs == h[j].deadlineMs {
		return h[i].id < h[j].id
	}
	return h[i].deadlineMs < h[j].deadlineMs
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	timer, ok := x.(*Timer)
	if !ok || timer == nil {
		return
	}
	*h = append(*h, timer)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	if n == 0 {
		return (*Timer)(nil)
	}
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TimerScheduleAfter schedules a timer for now (virtual time) + delayMs,
// waking taskID (or, if taskID is zero, every waiter on TimerKey(id)).
func (e *Executor) TimerScheduleAfter(taskID TaskID, delayMs uint64) TimerID {
	if e.nextTimerID == 0 {
		e.nextTimerID = 1
	}
	id := e.nextTimerID
	e.nextTimerID++
	timer := &Timer{
		id:         id,
		deadlineMs: e.nowMs + delayMs,
		key:        TimerKey(id),
		taskID:     taskID,
	}
	if e.timerByID == nil {
		e.timerByID = make(map[TimerID]*Timer)
	}
	e.timerByID[id] = timer
	heap.Push(&e.timers, timer)
	return id
}

// TimerCancel marks a timer cancelled and drops it from lookup.
func (e *Executor) TimerCancel(id TimerID) {
	if id == 0 {
		return
	}
	timer := e.timerByID[id]
	if timer == nil {
		return
	}
	timer.cancelled = true
	delete(e.timerByID, id)
}

// TimerActive reports whether a timer is still pending.
func (e *Executor) TimerActive(id TimerID) bool {
	if id == 0 {
		return false
	}
	timer := e.timerByID[id]
	return timer != nil && !timer.cancelled
}

// advanceTimeToNextTimer fires the earliest pending timer (and any other
// timer sharing its deadline) and reports whether one fired. Run calls
// this whenever the ready queue is empty, so a program whose only
// remaining work is "wait for a timer" makes progress deterministically
// instead of needing a real clock.
func (e *Executor) advanceTimeToNextTimer() bool {
	for {
		if len(e.timers) == 0 {
			return false
		}
		timer, ok := heap.Pop(&e.timers).(*Timer)
		if !ok || timer == nil {
			continue
		}
		if timer.cancelled {
			continue
		}
		e.nowMs = timer.deadlineMs
		e.fireTimer(timer)
		for len(e.timers) > 0 {
			next := e.timers[0]
			if next == nil || next.cancelled {
				heap.Pop(&e.timers)
				continue
			}
			if next.deadlineMs > e.nowMs {
				break
			}
			heap.Pop(&e.timers)
			e.fireTimer(next)
		}
		return true
	}
}

func (e *Executor) fireTimer(timer *Timer) {
	timer.cancelled = true
	delete(e.timerByID, timer.id)
	if timer.taskID != 0 {
		e.Wake(timer.taskID)
		return
	}
	e.WakeKeyAll(timer.key)
}
