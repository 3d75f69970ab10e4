// Package trace provides a tracing subsystem for the task runtime and
// raw syntax core.
//
// The reference executor (internal/asyncexec) emits task lifecycle
// points through it: spawn and cancel (ScopeTask) and future-complete
// (ScopeFragment). Status-record push/pop and the raw syntax arena emit
// no events; ScopeArenaNode is defined but nothing in this module uses it.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	concore run --trace=- --trace-level=phase
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Executor and task boundaries
//   - LevelDetail: Fragment-level events
//   - LevelDebug: Everything including arena/node events
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeExecutor: Run-level executor operations
//   - ScopeTask: Per-task lifecycle
//   - ScopeFragment: Status-record/future/group fragment events
//   - ScopeArenaNode: Raw syntax arena/node events
//
// # Context Propagation
//
// Tracers are propagated via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeTask, "spawn", parentID)
//	defer span.End("")
package trace
