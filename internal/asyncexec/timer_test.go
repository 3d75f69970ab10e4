package asyncexec

import "testing"

func TestTimerScheduleAfterFiresInDeadlineOrder(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	e.tasks[1] = &Task{ID: 1, Status: TaskReady}
	e.tasks[2] = &Task{ID: 2, Status: TaskReady}

	late := e.TimerScheduleAfter(2, 100)
	early := e.TimerScheduleAfter(1, 10)

	if !e.advanceTimeToNextTimer() {
		t.Fatalf("expected a timer to fire")
	}
	if e.nowMs != 10 {
		t.Fatalf("nowMs = %d, want 10 (the earlier timer's deadline)", e.nowMs)
	}
	if e.TimerActive(early) {
		t.Fatalf("fired timer should no longer be active")
	}
	if !e.TimerActive(late) {
		t.Fatalf("later timer should still be pending")
	}
}

func TestTimerCancelPreventsFiring(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	id := e.TimerScheduleAfter(0, 10)
	e.TimerCancel(id)

	if e.advanceTimeToNextTimer() {
		t.Fatalf("a cancelled timer should not fire")
	}
}

func TestAdvanceTimeFiresAllTimersAtSameDeadline(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	e.tasks[1] = &Task{ID: 1, Status: TaskReady}
	e.tasks[2] = &Task{ID: 2, Status: TaskReady}

	e.TimerScheduleAfter(1, 5)
	e.TimerScheduleAfter(2, 5)

	if !e.advanceTimeToNextTimer() {
		t.Fatalf("expected timers to fire")
	}
	if e.tasks[1].Status != TaskReady || e.tasks[2].Status != TaskReady {
		t.Fatalf("both tasks sharing a deadline should be woken in one advance")
	}
	if len(e.timers) != 0 {
		t.Fatalf("both timers should be drained: %d left", len(e.timers))
	}
}
