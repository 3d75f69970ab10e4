package asyncexec

import (
	"fmt"
	"math/rand"
	"time"

	"concore/internal/asynctask"
	"concore/internal/trace"
)

// Executor runs AsyncTask jobs on a single goroutine with a deterministic
// FIFO scheduler by default. Fuzz scheduling is supported for
// reproducible interleavings in tests.
type Executor struct {
	cfg    Config
	tracer trace.Tracer

	nextID      TaskID
	nextScopeID ScopeID
	nextChanID  ChannelID
	nextSelectID SelectID
	nextTimerID TimerID

	ready    []TaskID
	readySet map[TaskID]struct{}

	tasks    map[TaskID]*Task
	byTask   map[*asynctask.AsyncTask]TaskID
	scopes   map[ScopeID]*Scope
	channels map[ChannelID]*Channel
	selectSubs map[SelectID]*selectSub

	waiters map[WakerKey][]Waiter
	parked  map[TaskID]WakerKey

	timers    timerHeap
	timerByID map[TimerID]*Timer
	nowMs     uint64

	current TaskID
	rng     *rand.Rand
}

// TaskID identifies a task tracked by this executor.
type TaskID uint64

// TaskStatus describes a task's scheduling state.
type TaskStatus uint8

const (
	TaskReady TaskStatus = iota
	TaskRunning
	TaskWaiting
	TaskDone
)

// ResumeKind records why a parked task is being resumed, so its
// suspension point (a select arm, a channel op) can tell what actually
// happened without re-polling shared state.
type ResumeKind uint8

const (
	ResumeNone ResumeKind = iota
	ResumeChanRecvValue
	ResumeChanRecvClosed
	ResumeChanSendAck
	ResumeChanSendClosed
)

// Task is the executor's own bookkeeping record for an AsyncTask: its
// scheduling status, structured-concurrency membership, and whatever
// resume payload a suspension point left for it.
type Task struct {
	ID        TaskID
	AsyncTask *asynctask.AsyncTask

	Status    TaskStatus
	Cancelled bool

	ScopeID       ScopeID
	ParentScopeID ScopeID
	Children      []TaskID

	ResumeKind  ResumeKind
	ResumeValue any
}

// Config configures executor scheduling behavior. A nil Tracer disables
// trace emission with zero overhead.
type Config struct {
	Deterministic bool
	Fuzz          bool
	Seed          uint64
	Tracer        trace.Tracer
}

// NewExecutor constructs an executor with the given configuration.
func NewExecutor(cfg Config) *Executor {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	e := &Executor{
		cfg:         cfg,
		tracer:      tracer,
		nextID:      1,
		nextScopeID: 1,
		readySet:    make(map[TaskID]struct{}),
		tasks:       make(map[TaskID]*Task),
		byTask:      make(map[*asynctask.AsyncTask]TaskID),
		scopes:      make(map[ScopeID]*Scope),
	}
	if cfg.Fuzz {
		e.rng = rand.New(rand.NewSource(int64(seedOrDefault(cfg.Seed)))) //nolint:gosec // deterministic scheduler seed
	}
	return e
}

func (e *Executor) point(scope trace.Scope, name, detail string) {
	if e.tracer == nil || !e.tracer.Enabled() || !e.tracer.Level().ShouldEmit(scope) {
		return
	}
	e.tracer.Emit(&trace.Event{
		Time:   time.Now(),
		Kind:   trace.KindPoint,
		Scope:  scope,
		Seq:    trace.NextSeq(),
		Name:   name,
		Detail: detail,
	})
}

func seedOrDefault(seed uint64) uint64 {
	if seed == 0 {
		return 1
	}
	return seed
}

// Current returns the TaskID currently being run.
func (e *Executor) Current() TaskID { return e.current }

// Task returns the executor's bookkeeping record for id.
func (e *Executor) Task(id TaskID) *Task { return e.tasks[id] }

// Spawn creates a new AsyncTask via asynctask.NewTask, registers it with
// the executor, and enqueues it for its first run. opts.Parent/Group, if
// set, must themselves already be tracked by this executor (their TaskID
// is looked up internally for scope bookkeeping).
func (e *Executor) Spawn(resume asynctask.TaskResume, opts asynctask.NewTaskOptions) TaskID {
	t := asynctask.NewTask(resume, opts)
	id := e.track(t)

	if opts.Parent != nil {
		if parentID, ok := e.byTask[opts.Parent]; ok {
			if parent := e.tasks[parentID]; parent != nil {
				parent.Children = append(parent.Children, id)
			}
		}
	}
	e.enqueue(id)
	e.point(trace.ScopeTask, "spawn", fmt.Sprintf("task=%d", id))
	return id
}

func (e *Executor) track(t *asynctask.AsyncTask) TaskID {
	if e.nextID == 0 {
		e.nextID = 1
	}
	id := e.nextID
	e.nextID++
	e.tasks[id] = &Task{ID: id, AsyncTask: t, Status: TaskReady}
	e.byTask[t] = id
	return id
}

// TaskIDOf returns the TaskID this executor assigned to t, if tracked.
func (e *Executor) TaskIDOf(t *asynctask.AsyncTask) (TaskID, bool) {
	id, ok := e.byTask[t]
	return id, ok
}

// Enqueue implements asynctask.ExecutorRef. A job belonging to a task
// not yet tracked by this executor (e.g. handed off from elsewhere) is
// adopted on the fly.
func (e *Executor) Enqueue(job *asynctask.Job) {
	t := job.Task()
	if t == nil {
		panic("asyncexec: Enqueue given a job with no owning AsyncTask")
	}
	id, ok := e.byTask[t]
	if !ok {
		id = e.track(t)
	}
	e.enqueue(id)
}

// Run drains the ready queue until empty, advancing virtual time through
// pending timers when no task is immediately ready, and returns the
// number of jobs actually run.
func (e *Executor) Run() int {
	ran := 0
	for {
		id, ok := e.NextReady()
		if !ok {
			if !e.advanceTimeToNextTimer() {
				return ran
			}
			continue
		}
		e.runOne(id)
		ran++
	}
}

func (e *Executor) runOne(id TaskID) {
	task := e.tasks[id]
	if task == nil || task.Status == TaskDone {
		return
	}
	task.Status = TaskRunning
	prev := e.current
	e.current = id
	task.AsyncTask.Job().RunInFullyEstablishedContext(e)
	e.current = prev
	if task.Status == TaskRunning {
		task.Status = TaskReady
	}
}

// NextReady returns the next ready task according to scheduler policy
// (FIFO, or a uniformly random pick among ready tasks in fuzz mode).
func (e *Executor) NextReady() (TaskID, bool) {
	for len(e.ready) > 0 {
		idx := 0
		if e.cfg.Fuzz {
			if e.rng == nil {
				e.rng = rand.New(rand.NewSource(int64(seedOrDefault(e.cfg.Seed)))) //nolint:gosec // deterministic scheduler seed
			}
			idx = e.rng.Intn(len(e.ready))
		}
		id := e.ready[idx]
		copy(e.ready[idx:], e.ready[idx+1:])
		e.ready = e.ready[:len(e.ready)-1]
		delete(e.readySet, id)
		task := e.tasks[id]
		if task == nil || task.Status == TaskDone {
			continue
		}
		return id, true
	}
	return 0, false
}

// Wake re-enqueues a parked task.
func (e *Executor) Wake(id TaskID) {
	task := e.tasks[id]
	if task == nil || task.Status == TaskDone {
		return
	}
	if key, ok := e.parked[id]; ok {
		e.removeWaiter(key, id)
		delete(e.parked, id)
	}
	e.enqueue(id)
}

// Yield requeues a task after it voluntarily yielded.
func (e *Executor) Yield(id TaskID) {
	task := e.tasks[id]
	if task == nil || task.Status == TaskDone {
		return
	}
	e.enqueue(id)
}

// ParkCurrent moves the currently running task into the wait queue for key.
func (e *Executor) ParkCurrent(key WakerKey) {
	if !key.IsValid() || e.current == 0 {
		return
	}
	e.parkTask(e.current, key)
}

// WakeKeyOne wakes the oldest task waiting on key.
func (e *Executor) WakeKeyOne(key WakerKey) {
	if !key.IsValid() {
		return
	}
	waiters := e.waiters[key]
	if len(waiters) == 0 {
		return
	}
	w := waiters[0]
	waiters = waiters[1:]
	if len(waiters) == 0 {
		delete(e.waiters, key)
	} else {
		e.waiters[key] = waiters
	}
	delete(e.parked, w.TaskID)
	e.Wake(w.TaskID)
}

// WakeKeyAll wakes every task waiting on key.
func (e *Executor) WakeKeyAll(key WakerKey) {
	if !key.IsValid() {
		return
	}
	waiters := e.waiters[key]
	if len(waiters) == 0 {
		return
	}
	delete(e.waiters, key)
	for _, w := range waiters {
		delete(e.parked, w.TaskID)
		e.Wake(w.TaskID)
	}
}

// MarkDone completes id's AsyncTask future (result, err), wakes its
// join waiters, and triggers the owning scope's failfast cancellation if
// configured and err is non-nil.
func (e *Executor) MarkDone(id TaskID, result any, err error) {
	task := e.tasks[id]
	if task == nil {
		return
	}
	task.Status = TaskDone
	if key, ok := e.parked[id]; ok {
		e.removeWaiter(key, id)
		delete(e.parked, id)
	}
	e.point(trace.ScopeFragment, "future-complete", fmt.Sprintf("task=%d err=%v", id, err))
	for _, w := range task.AsyncTask.Complete(result, err) {
		if waiterID, ok := e.byTask[w]; ok {
			e.Wake(waiterID)
		}
	}
	if err != nil && task.ParentScopeID != 0 {
		if scope := e.scopes[task.ParentScopeID]; scope != nil && scope.Failfast && !scope.FailfastTriggered {
			scope.FailfastTriggered = true
			e.CancelAllChildren(scope.ID)
			if owner := e.tasks[scope.Owner]; owner != nil && owner.Status != TaskDone {
				e.Wake(scope.Owner)
			}
		}
	}
	e.WakeKeyAll(JoinKey(id))
}

// Cancel marks id's task (and every structural descendant, via
// asynctask.CancelTree) cancelled.
func (e *Executor) Cancel(id TaskID) {
	task := e.tasks[id]
	if task == nil || task.Status == TaskDone {
		return
	}
	task.Cancelled = true
	task.AsyncTask.Cancel()
	e.point(trace.ScopeTask, "cancel", fmt.Sprintf("task=%d", id))
	for _, child := range task.Children {
		e.Cancel(child)
	}
}

func (e *Executor) enqueue(id TaskID) {
	if _, ok := e.readySet[id]; ok {
		return
	}
	e.ready = append(e.ready, id)
	e.readySet[id] = struct{}{}
	if task := e.tasks[id]; task != nil && task.Status != TaskDone {
		task.Status = TaskReady
	}
}

func (e *Executor) parkTask(id TaskID, key WakerKey) {
	if !key.IsValid() {
		return
	}
	task := e.tasks[id]
	if task == nil || task.Status == TaskDone {
		return
	}
	if e.waiters == nil {
		e.waiters = make(map[WakerKey][]Waiter)
	}
	if e.parked == nil {
		e.parked = make(map[TaskID]WakerKey)
	}
	if prev, ok := e.parked[id]; ok {
		if prev == key {
			task.Status = TaskWaiting
			return
		}
		e.removeWaiter(prev, id)
	}
	e.parked[id] = key
	e.waiters[key] = append(e.waiters[key], Waiter{TaskID: id})
	task.Status = TaskWaiting
}

func (e *Executor) removeWaiter(key WakerKey, id TaskID) {
	waiters := e.waiters[key]
	n := 0
	for _, w := range waiters {
		if w.TaskID == id {
			continue
		}
		waiters[n] = w
		n++
	}
	if n == 0 {
		delete(e.waiters, key)
		return
	}
	e.waiters[key] = waiters[:n]
}
