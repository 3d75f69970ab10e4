package asynctask

// InheritPolicy controls whether a newly created child task sees the
// parent's task-local bindings at the moment it is created.
type InheritPolicy uint8

const (
	// InheritAll copies the parent's local-value stack by reference: the
	// child walks the same frames the parent had pushed so far.
	InheritAll InheritPolicy = iota
	// InheritNone starts the child with an empty local-value stack.
	InheritNone
)

// localKey identifies a task-local slot. Any comparable value works;
// callers conventionally use a package-level unexported type to avoid
// collisions, the same convention context.Context keys use.
type localKey any

// localFrame is one entry of a task's local-value stack, linked to the
// frame active when it was pushed.
type localFrame struct {
	key   localKey
	value any
	prev  *localFrame
}

// LocalValuePush pushes a new binding onto t's local-value stack, shadowing
// any earlier binding for the same key until popped.
func (t *AsyncTask) LocalValuePush(key, value any) {
	t.locals = &localFrame{key: key, value: value, prev: t.locals}
}

// LocalValueGet looks up the innermost binding for key, walking outward.
func (t *AsyncTask) LocalValueGet(key any) (any, bool) {
	for f := t.locals; f != nil; f = f.prev {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// LocalValuePop removes the innermost binding, regardless of key. It
// panics if the stack is empty, matching the push/pop discipline the
// status-record chain also enforces.
func (t *AsyncTask) LocalValuePop() {
	if t.locals == nil {
		panic("asynctask: LocalValuePop on an empty local-value stack")
	}
	t.locals = t.locals.prev
}

// inheritLocals sets child's initial local-value stack from parent
// according to policy. NewTask calls it whenever TaskOptions.Parent is
// set, passing TaskOptions.Inherit, so each call site chooses the policy
// through the options it builds.
func inheritLocals(parent, child *AsyncTask, policy InheritPolicy) {
	if policy == InheritAll && parent != nil {
		child.locals = parent.locals
	}
}
