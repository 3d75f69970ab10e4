package asynctask

// AsyncContext is the activation record an async task resumes into. It
// forms a singly-linked chain mirroring the suspended call stack: each
// frame points at its caller's frame via Parent, and resuming a frame
// means invoking ResumeParent with this frame as the new "current" one.
//
// Ordinary frames (ContextOrdinary) carry nothing beyond the chain link.
// Yielding, Future and FutureClosure frames add the fields their kind
// needs; Kind() on Flags tells a walker which fields are valid.
type AsyncContext struct {
	Parent *AsyncContext
	Flags  ContextFlags

	// ResumeParent continues execution in Parent once this frame's async
	// operation completes. It is set by whoever pushed this frame.
	ResumeParent TaskResume

	// ResumeParentExecutor is the executor ResumeParent expects to run on.
	// A resumer hops onto it first unless the task's current executor
	// already matches (see asyncexec and §5's "unconditional executor
	// hop" design note).
	ResumeParentExecutor ExecutorRef

	yielding *yieldingContext
	future   *futureContext
}

// yieldingContext backs a ContextYielding frame: suspension at a yield
// point inside a generator/async-sequence-like construct. Unlike a
// return, yielding does not pop this frame — it hands control to the
// parent via yield_to_parent while the task may later be re-entered at
// whatever resume function it has installed by then.
type yieldingContext struct {
	yieldToParent         TaskResume
	yieldToParentExecutor ExecutorRef
	yieldedValue          any
}

// futureContext backs ContextFuture and ContextFutureClosure frames: the
// frame that eventually produces the task's FutureFragment result. A
// ContextFutureClosure frame additionally holds the captured closure
// object reference that produced it; a plain ContextFuture frame (an
// ordinary async function body, not a closure literal) leaves it nil.
// The kind is derived from this field's presence rather than carried as
// a second, independently settable tag.
type futureContext struct {
	closure any
}

// NewOrdinaryContext creates a plain activation record with no payload.
func NewOrdinaryContext(parent *AsyncContext, resume TaskResume, executor ExecutorRef) *AsyncContext {
	return &AsyncContext{
		Parent:               parent,
		Flags:                NewContextFlags(ContextOrdinary),
		ResumeParent:         resume,
		ResumeParentExecutor: executor,
	}
}

// NewYieldingContext creates an activation record for a suspension at a
// yield point. yieldToParent/yieldToParentExecutor are the continuation
// and executor Yield hands control to; resume/executor remain the
// eventual return path, exactly as for any other frame.
func NewYieldingContext(parent *AsyncContext, resume TaskResume, executor ExecutorRef, yieldToParent TaskResume, yieldToParentExecutor ExecutorRef) *AsyncContext {
	return &AsyncContext{
		Parent:               parent,
		Flags:                NewContextFlags(ContextYielding),
		ResumeParent:         resume,
		ResumeParentExecutor: executor,
		yielding: &yieldingContext{
			yieldToParent:         yieldToParent,
			yieldToParentExecutor: yieldToParentExecutor,
		},
	}
}

// NewFutureContext creates the activation record that, on completion,
// feeds a task's own FutureFragment. A non-nil closure marks the frame
// as ContextFutureClosure (produced by a bare async closure, carrying a
// reference to the closure object it captured) rather than ContextFuture
// (an ordinary async function body); both complete the same way.
func NewFutureContext(parent *AsyncContext, resume TaskResume, executor ExecutorRef, closure any) *AsyncContext {
	kind := ContextFuture
	if closure != nil {
		kind = ContextFutureClosure
	}
	return &AsyncContext{
		Parent:               parent,
		Flags:                NewContextFlags(kind),
		ResumeParent:         resume,
		ResumeParentExecutor: executor,
		future:               &futureContext{closure: closure},
	}
}

// YieldedValue returns the value yielded at this frame and whether the
// frame is actually a ContextYielding frame.
func (c *AsyncContext) YieldedValue() (any, bool) {
	if c.yielding == nil {
		return nil, false
	}
	return c.yielding.yieldedValue, true
}

// SetYieldedValue records the value yielded at this frame. Panics if the
// frame is not a ContextYielding frame.
func (c *AsyncContext) SetYieldedValue(v any) {
	if c.yielding == nil {
		panic("asynctask: SetYieldedValue on a non-yielding context")
	}
	c.yielding.yieldedValue = v
}

// IsFutureFrame reports whether this frame's completion feeds a
// FutureFragment (either ContextFuture or ContextFutureClosure).
func (c *AsyncContext) IsFutureFrame() bool {
	return c.future != nil
}

// ClosureObject returns the captured closure object reference carried by
// a ContextFutureClosure frame, or nil for a plain ContextFuture frame
// (or any non-future frame).
func (c *AsyncContext) ClosureObject() any {
	if c.future == nil {
		return nil
	}
	return c.future.closure
}

// Return performs the chain's return operation (§4.6): it commits
// c.Parent as task's next resume context, then tail-calls ResumeParent.
// If ResumeParentExecutor differs from currentExecutor this is suspension
// point (c) — the hop is performed by installing a continuation that
// invokes ResumeParent at c.Parent and re-enqueuing task's job there,
// rather than calling straight through.
func (c *AsyncContext) Return(task *AsyncTask, currentExecutor ExecutorRef) {
	task.SetResumeContext(c.Parent)
	if c.ResumeParentExecutor != nil && !SameExecutor(c.ResumeParentExecutor, currentExecutor) {
		parent, resume := c.Parent, c.ResumeParent
		task.job.resume = func(t *AsyncTask, executor ExecutorRef, _ *AsyncContext) {
			resume(t, executor, parent)
		}
		c.ResumeParentExecutor.Enqueue(task.Job())
		return
	}
	c.ResumeParent(task, currentExecutor, c.Parent)
}

// Yield performs the yielding suspension point (§5 (b)): it hands
// control to the parent frame via yield_to_parent without popping this
// frame — task.ResumeContext is left as c, so a later resumption re-enters
// at whatever resume function the task has installed by then, not
// necessarily this same yielding frame. Panics if c is not a
// ContextYielding frame. Hops onto yield_to_parent's executor first,
// exactly as Return does for resume_parent, if it differs from
// currentExecutor.
func (c *AsyncContext) Yield(task *AsyncTask, currentExecutor ExecutorRef) {
	if c.yielding == nil {
		panic("asynctask: Yield on a non-yielding context")
	}
	y := c.yielding
	if y.yieldToParentExecutor != nil && !SameExecutor(y.yieldToParentExecutor, currentExecutor) {
		parent, resume := c.Parent, y.yieldToParent
		task.job.resume = func(t *AsyncTask, executor ExecutorRef, _ *AsyncContext) {
			resume(t, executor, parent)
		}
		y.yieldToParentExecutor.Enqueue(task.Job())
		return
	}
	y.yieldToParent(task, currentExecutor, c.Parent)
}
