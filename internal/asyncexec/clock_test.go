package asyncexec

import "testing"

func TestVirtualClockTracksExecutorTime(t *testing.T) {
	e := NewExecutor(Config{Deterministic: true})
	clock := NewVirtualClock(e)

	if clock.NowMs() != 0 {
		t.Fatalf("NowMs() = %d, want 0 before any timer fires", clock.NowMs())
	}

	e.TimerScheduleAfter(0, 25)
	e.advanceTimeToNextTimer()

	if clock.NowMs() != 25 {
		t.Fatalf("NowMs() = %d, want 25 after the timer fired", clock.NowMs())
	}
	clock.SleepMs(100) // no-op; virtual time only advances via timers
	if clock.NowMs() != 25 {
		t.Fatalf("SleepMs should not advance virtual time on its own")
	}
}

func TestRealClockNowMsIsMonotonicNonNegative(t *testing.T) {
	clock := NewRealClock()
	first := clock.NowMs()
	clock.SleepMs(1)
	second := clock.NowMs()
	if second < first {
		t.Fatalf("real clock went backwards: %d then %d", first, second)
	}
}
