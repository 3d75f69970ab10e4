package asynctask

import "sync/atomic"

// TaskStatusRecord is a node in a task's cancellation/status chain. The
// chain is a singly-linked LIFO list: pushing adds at the head, popping
// removes from the head, and every record knows only its successor.
//
// Concrete record kinds (ChildTaskStatusRecord, and whatever an executor
// or TaskGroup needs) embed statusRecordBase to participate in the chain.
type TaskStatusRecord interface {
	next() TaskStatusRecord
	setNext(TaskStatusRecord)
}

type statusRecordBase struct {
	nextRecord TaskStatusRecord
}

func (b *statusRecordBase) next() TaskStatusRecord        { return b.nextRecord }
func (b *statusRecordBase) setNext(r TaskStatusRecord)    { b.nextRecord = r }

// ChildTaskStatusRecord links a structural child into its parent's status
// chain so CancelTree can reach it without consulting any other registry.
type ChildTaskStatusRecord struct {
	statusRecordBase
	Child *AsyncTask
}

// statusState is the immutable snapshot a task's status word atomically
// swaps between: the innermost (most recently pushed) status record and
// the cancelled/locked bits travel together. This is the Go-native
// replacement for a single tagged atomic pointer with the cancelled and
// locked bits packed into its low tag bits.
type statusState struct {
	innermost TaskStatusRecord
	cancelled bool
	locked    bool
}

type taskStatus struct {
	word atomic.Pointer[statusState]
}

func newTaskStatus() *taskStatus {
	s := &taskStatus{}
	s.word.Store(&statusState{})
	return s
}

// lockStatus spins until it can swap in a locked snapshot, returning the
// state as observed at the moment of acquisition. Status-record mutation
// (push/pop) happens while holding the lock and finishes by calling
// unlockStatus with the new innermost record.
func (s *taskStatus) lockStatus() *statusState {
	for {
		cur := s.word.Load()
		if cur.locked {
			continue
		}
		next := &statusState{innermost: cur.innermost, cancelled: cur.cancelled, locked: true}
		if s.word.CompareAndSwap(cur, next) {
			return next
		}
	}
}

func (s *taskStatus) unlockStatus(innermost TaskStatusRecord) {
	for {
		cur := s.word.Load()
		if !cur.locked {
			panic("asynctask: unlockStatus called on an unlocked status word")
		}
		next := &statusState{innermost: innermost, cancelled: cur.cancelled, locked: false}
		if s.word.CompareAndSwap(cur, next) {
			return
		}
	}
}

// PushStatusRecord adds r to the head of the chain.
func (s *taskStatus) PushStatusRecord(r TaskStatusRecord) {
	cur := s.lockStatus()
	r.setNext(cur.innermost)
	s.unlockStatus(r)
}

// PopStatusRecord removes the head of the chain. It panics if r is not
// the innermost record, matching the original ABI's requirement that
// records be popped in exact reverse push order.
func (s *taskStatus) PopStatusRecord(r TaskStatusRecord) {
	cur := s.lockStatus()
	if cur.innermost != r {
		s.unlockStatus(cur.innermost)
		panic("asynctask: PopStatusRecord called out of order")
	}
	s.unlockStatus(r.next())
}

// Records returns the chain from innermost to outermost. Intended for
// tests and debug dumps, not hot paths.
func (s *taskStatus) Records() []TaskStatusRecord {
	var out []TaskStatusRecord
	for r := s.word.Load().innermost; r != nil; r = r.next() {
		out = append(out, r)
	}
	return out
}

// Cancel sets the cancelled bit. Cancellation is sticky and monotonic: it
// is never cleared once set, and setting it twice is a harmless no-op.
// It does not itself touch the record chain.
func (s *taskStatus) Cancel() {
	for {
		cur := s.word.Load()
		if cur.cancelled {
			return
		}
		next := &statusState{innermost: cur.innermost, cancelled: true, locked: cur.locked}
		if s.word.CompareAndSwap(cur, next) {
			return
		}
	}
}

func (s *taskStatus) IsCancelled() bool {
	return s.word.Load().cancelled
}

// CancelTree marks t cancelled and recursively cancels every structural
// child reachable through ChildTaskStatusRecord entries in its chain.
// Cancellation never re-enters a task (each task's own Cancel is
// idempotent), so a cycle-free tree always terminates.
func CancelTree(t *AsyncTask) {
	t.status.Cancel()
	for _, r := range t.status.Records() {
		if child, ok := r.(*ChildTaskStatusRecord); ok {
			CancelTree(child.Child)
		}
	}
}
