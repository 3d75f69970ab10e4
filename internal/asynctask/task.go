package asynctask

import "fortio.org/safecast"

// AsyncTask is a Job that additionally carries the machinery needed to
// suspend and resume: a resume context, task-local storage, and whichever
// trailing fragments its flags select.
//
// Fragment storage is direct typed fields rather than a packed trailing
// allocation (the original ABI lays fragments out after the task object
// in memory, in the fixed order child < group-child < future, and derives
// their addresses by pointer arithmetic over the flags that are set). Go
// has no reinterpret_cast equivalent and a GC that relocates nothing the
// program can see pointer arithmetic into, so each fragment is simply a
// field set or left nil. FragmentOffsets preserves the *ordering*
// invariant for anything (tests, dumps) that wants to observe it.
type AsyncTask struct {
	job Job

	status *taskStatus

	resumeContext *AsyncContext

	locals *localFrame

	child *ChildFragment
	group *GroupChildFragment
	fut   *FutureFragment
}

// NewTaskOptions configures NewTask.
type NewTaskOptions struct {
	Priority Priority
	Parent   *AsyncTask // non-nil makes this a structural child task
	Group    *TaskGroup // non-nil makes this a group-child task (Parent must also be set)
	IsFuture bool
	Inherit  InheritPolicy // local-value inheritance from Parent; ignored if Parent is nil
}

// NewTask constructs an AsyncTask, attaching exactly the fragments implied
// by opts, and registers it as a structural child of opts.Parent (pushing
// a ChildTaskStatusRecord there) if one is given.
func NewTask(resume TaskResume, opts NewTaskOptions) *AsyncTask {
	if opts.Group != nil && opts.Parent == nil {
		panic("asynctask: NewTask with a Group requires a Parent")
	}
	flags := NewJobFlags(opts.Priority).WithAsyncTask()

	t := &AsyncTask{status: newTaskStatus()}
	t.job.Flags = flags
	t.job.resume = resume
	t.job.task = t

	if opts.Parent != nil {
		flags = flags.WithChildTask()
		t.child = &ChildFragment{Parent: opts.Parent}
	}
	if opts.Group != nil {
		flags = flags.WithGroupChild()
		t.group = &GroupChildFragment{Group: opts.Group}
	}
	if opts.IsFuture {
		flags = flags.WithFuture()
		t.fut = newFutureFragment()
	}
	t.job.Flags = flags

	if opts.Parent != nil {
		opts.Parent.status.PushStatusRecord(&ChildTaskStatusRecord{Child: t})
		inheritLocals(opts.Parent, t, opts.Inherit)
	}
	return t
}

// Job returns the embedded Job for enqueueing on an ExecutorRef.
func (t *AsyncTask) Job() *Job { return &t.job }

// Flags returns the task's JobFlags.
func (t *AsyncTask) Flags() JobFlags { return t.job.Flags }

// IsCancelled reports whether this task (or an ancestor that cancelled
// structurally) has had cancellation requested. Checking this is the
// only way cancellation is observed — nothing forcibly unwinds a task.
func (t *AsyncTask) IsCancelled() bool { return t.status.IsCancelled() }

// Cancel requests cancellation of t and every structural descendant.
func (t *AsyncTask) Cancel() { CancelTree(t) }

// ChildFragment returns the task's child fragment, or nil if it is not a
// structural child task.
func (t *AsyncTask) ChildFragment() *ChildFragment { return t.child }

// GroupChildFragment returns the task's group-child fragment, or nil if
// it was not created via TaskGroup.Add.
func (t *AsyncTask) GroupChildFragment() *GroupChildFragment { return t.group }

// FutureFragment returns the task's future fragment, or nil if the task
// was not created with IsFuture set.
func (t *AsyncTask) FutureFragment() *FutureFragment { return t.fut }

// ResumeContext returns the activation record this task will resume at
// when its job next runs.
func (t *AsyncTask) ResumeContext() *AsyncContext { return t.resumeContext }

// SetResumeContext installs the activation record the task's next
// resumption will use. Called by suspension points before handing the
// task back to an executor (or parking it) and by AsyncContext.Return.
func (t *AsyncTask) SetResumeContext(ctx *AsyncContext) { t.resumeContext = ctx }

// StatusRecords exposes the task's status-record chain, innermost first.
func (t *AsyncTask) StatusRecords() []TaskStatusRecord { return t.status.Records() }

// PushStatusRecord and PopStatusRecord expose the task's status chain to
// collaborators (e.g. a TaskGroup registering a park record) that are not
// themselves fragments.
func (t *AsyncTask) PushStatusRecord(r TaskStatusRecord) { t.status.PushStatusRecord(r) }
func (t *AsyncTask) PopStatusRecord(r TaskStatusRecord)  { t.status.PopStatusRecord(r) }

// FragmentOffset identifies a fragment's position in the canonical
// trailing-fragment order (child < group-child < future) used by the
// original ABI's layout. It exists purely so tests and debug tooling can
// assert on that ordering without this package exposing real memory
// offsets, which would be meaningless over Go's relocatable, GC-managed
// heap.
type FragmentOffset struct {
	Name  string
	Index uint32
}

// Complete finishes t's future (t must have been created with IsFuture),
// offers the result to t's group if it is a group child, and returns the
// tasks parked in WaitFuture that must now be resumed (e.g. re-enqueued
// on an executor). Calling Complete on a task with no FutureFragment
// panics.
func (t *AsyncTask) Complete(result any, err error) []*AsyncTask {
	if t.fut == nil {
		panic("asynctask: Complete called on a task with no future fragment")
	}
	waiters := t.fut.CompleteFuture(result, err)
	if t.group != nil {
		t.group.Group.offer(result, err)
	}
	return waiters
}

// FragmentOffsets lists, in canonical order, the fragments actually
// present on t.
func (t *AsyncTask) FragmentOffsets() []FragmentOffset {
	var out []FragmentOffset
	idx := uint32(0)
	add := func(name string) {
		out = append(out, FragmentOffset{Name: name, Index: idx})
		n, err := safecast.Conv[uint32](idx + 1)
		if err != nil {
			panic(err)
		}
		idx = n
	}
	if t.child != nil {
		add("child")
	}
	if t.group != nil {
		add("group-child")
	}
	if t.fut != nil {
		add("future")
	}
	return out
}
