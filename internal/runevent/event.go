// Package runevent carries progress notifications out of a running
// asyncexec.Executor so a CLI can render them without coupling the
// executor itself to any particular output.
package runevent

import "time"

// Stage describes where in a task's lifecycle an Event was raised.
type Stage string

const (
	// StageSpawn is emitted when a task is first created and enqueued.
	StageSpawn Stage = "spawn"
	// StageRunning is emitted while a task is actively executing.
	StageRunning Stage = "running"
	// StageParked is emitted when a task suspends (timer, join, channel).
	StageParked Stage = "parked"
	// StageDone is emitted when a task's future completes.
	StageDone Stage = "done"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one task (or for the overall workload when
// TaskID is zero).
type Event struct {
	TaskID  uint64
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
