// Package asyncexec provides a concrete reference executor implementing
// asynctask.ExecutorRef: a single-threaded, deterministic FIFO scheduler
// (with an optional fuzz mode for reproducible interleaving tests), plus
// the Scope, Channel, Select and Timer machinery a structured-concurrency
// program built on internal/asynctask needs to actually run end to end.
//
// None of this is part of the frozen task ABI in internal/asynctask —
// it is one possible collaborator, swappable for any other type
// implementing asynctask.ExecutorRef.
package asyncexec
