package asynctask

import "fmt"

// JobFlags is a packed descriptor word carrying the discriminator bits the
// rest of the core relies on to classify a Job without a type switch:
// whether it is an AsyncTask, whether it is structurally a child task, a
// task-group child, or a future, plus its scheduling priority.
type JobFlags uint32

const (
	jobFlagIsAsyncTask  JobFlags = 1 << 0
	jobFlagIsChildTask  JobFlags = 1 << 1
	jobFlagIsGroupChild JobFlags = 1 << 2
	jobFlagIsFuture     JobFlags = 1 << 3

	jobPriorityShift = 8
	jobPriorityMask  = JobFlags(0xFF) << jobPriorityShift
)

// NewJobFlags builds a bare JobFlags for a simple (non-task) job at the
// given priority.
func NewJobFlags(priority Priority) JobFlags {
	return JobFlags(priority) << jobPriorityShift
}

func (f JobFlags) IsAsyncTask() bool  { return f&jobFlagIsAsyncTask != 0 }
func (f JobFlags) IsChildTask() bool  { return f&jobFlagIsChildTask != 0 }
func (f JobFlags) IsGroupChild() bool { return f&jobFlagIsGroupChild != 0 }
func (f JobFlags) IsFuture() bool     { return f&jobFlagIsFuture != 0 }

func (f JobFlags) Priority() Priority {
	return Priority((f & jobPriorityMask) >> jobPriorityShift)
}

func (f JobFlags) WithAsyncTask() JobFlags  { return f | jobFlagIsAsyncTask }
func (f JobFlags) WithChildTask() JobFlags  { return f | jobFlagIsChildTask }
func (f JobFlags) WithGroupChild() JobFlags { return f | jobFlagIsGroupChild }
func (f JobFlags) WithFuture() JobFlags     { return f | jobFlagIsFuture }

func (f JobFlags) String() string {
	s := fmt.Sprintf("priority=%s", f.Priority())
	if f.IsAsyncTask() {
		s += " async-task"
	}
	if f.IsChildTask() {
		s += " child"
	}
	if f.IsGroupChild() {
		s += " group-child"
	}
	if f.IsFuture() {
		s += " future"
	}
	return s
}

// ContextKind discriminates the AsyncContext variants described in §3.1.
type ContextKind uint8

const (
	ContextOrdinary ContextKind = iota
	ContextYielding
	ContextFuture
	ContextFutureClosure
)

// ContextFlags is the packed descriptor word carried by every AsyncContext.
type ContextFlags uint32

// NewContextFlags builds a ContextFlags for the given activation-record kind.
func NewContextFlags(kind ContextKind) ContextFlags {
	return ContextFlags(kind)
}

func (f ContextFlags) Kind() ContextKind { return ContextKind(f) }

// ExecutorRef is an opaque reference to a scheduler capable of running jobs.
// Equality between two ExecutorRef values is meaningful (it answers "is this
// the executor I'm already running on") and is left to Go's native interface
// comparison, which works for any comparable concrete executor type.
type ExecutorRef interface {
	// Enqueue takes ownership of job for scheduling; it must eventually
	// invoke job.RunInFullyEstablishedContext(self) with the
	// current-executor thread-local set to self.
	Enqueue(job *Job)
}

// SameExecutor reports whether a and b identify the same executor.
func SameExecutor(a, b ExecutorRef) bool { return a == b }

// SimpleInvoke is the entrypoint type for a Job that is not an AsyncTask.
type SimpleInvoke func(job *Job, executor ExecutorRef)

// TaskResume is the entrypoint type for a Job that is an AsyncTask: it
// resumes the task at the given activation record.
type TaskResume func(task *AsyncTask, executor ExecutorRef, resumeContext *AsyncContext)

// Job is the minimal schedulable unit. Every AsyncTask embeds one.
//
// SchedulerPrivate is reserved for an owning executor's own intrusive
// queues (e.g. a ready-queue link); this core never reads it.
type Job struct {
	SchedulerPrivate [2]uintptr
	Flags            JobFlags

	simple SimpleInvoke
	resume TaskResume
	task   *AsyncTask // back-reference to the owning AsyncTask; nil for simple jobs

	// nextWaiting links this job's owning task into a FutureFragment's
	// wait queue (see fragments.go). Not an executor scheduling concern.
	nextWaiting *AsyncTask
}

// NewSimpleJob constructs a schedulable Job that is not an AsyncTask.
// flags.IsAsyncTask() must be false.
func NewSimpleJob(flags JobFlags, invoke SimpleInvoke) *Job {
	if flags.IsAsyncTask() {
		panic("asynctask: NewSimpleJob called with an is_async_task flag set")
	}
	if invoke == nil {
		panic("asynctask: NewSimpleJob requires a non-nil entrypoint")
	}
	return &Job{Flags: flags, simple: invoke}
}

// Task returns the AsyncTask this job belongs to, or nil for a simple
// (non-task) job. An executor uses this to recover task-level state
// (cancellation, status records) from a bare *Job handed to Enqueue.
func (j *Job) Task() *AsyncTask { return j.task }

// RunInFullyEstablishedContext dispatches to whichever entrypoint this Job's
// flags select. The caller must already have established currentExecutor as
// the thread's current executor (see ExecutorRef).
func (j *Job) RunInFullyEstablishedContext(currentExecutor ExecutorRef) {
	if j.Flags.IsAsyncTask() {
		if j.resume == nil || j.task == nil {
			panic("asynctask: async-task job has no resume entrypoint installed")
		}
		j.resume(j.task, currentExecutor, j.task.resumeContext)
		return
	}
	if j.simple == nil {
		panic("asynctask: simple job has no run entrypoint installed")
	}
	j.simple(j, currentExecutor)
}
