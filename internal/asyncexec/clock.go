package asyncexec

import (
	"time"

	"fortio.org/safecast"
)

// TimerMode names the two time sources a Clock can provide. The
// executor's own timer heap (TimerScheduleAfter, SelectSetTimer) does not
// consult it and always runs on virtual time.
type TimerMode uint8

const (
	// TimerVirtual advances only when the executor calls
	// advanceTimeToNextTimer, giving deterministic, instant-replay timing
	// with no wall-clock dependency. Suited to tests and fuzzing.
	TimerVirtual TimerMode = iota
	// TimerReal schedules against the actual wall clock.
	TimerReal
)

// Clock abstracts "now" and "sleep until" so the executor can run against
// either virtual time (deterministic tests) or the real wall clock.
type Clock interface {
	NowMs() uint64
	SleepMs(ms uint64)
}

// VirtualClock reports the executor's own virtual-time counter and never
// actually blocks: SleepMs is a no-op, since advancing past a sleep is the
// executor's job (advanceTimeToNextTimer), not the clock's.
type VirtualClock struct {
	e *Executor
}

// NewVirtualClock returns a Clock backed by e's virtual time.
func NewVirtualClock(e *Executor) *VirtualClock { return &VirtualClock{e: e} }

func (c *VirtualClock) NowMs() uint64    { return c.e.nowMs }
func (c *VirtualClock) SleepMs(_ uint64) {}

// RealClock reports wall-clock time and actually sleeps; useful for a
// "run" mode that drives the executor against real time rather than a
// fuzzed or replayed schedule.
type RealClock struct{}

// NewRealClock returns a Clock backed by time.Now.
func NewRealClock() RealClock { return RealClock{} }

func (RealClock) NowMs() uint64 {
	ms, err := safecast.Conv[uint64](time.Now().UnixMilli())
	if err != nil {
		panic(err)
	}
	return ms
}

func (RealClock) SleepMs(ms uint64) {
	millis, err := safecast.Conv[int64](ms)
	if err != nil {
		panic(err)
	}
	time.Sleep(time.Duration(millis) * time.Millisecond)
}
