// Package asynctask implements the core object model of a structured-concurrency
// asynchronous task system: jobs, async contexts, async tasks and their
// trailing fragments, the status-record cancellation chain, futures, and
// task groups.
//
// The package deliberately knows nothing about how jobs actually get run.
// It assumes "some executor" identified by an ExecutorRef and calls
// Enqueue on it; internal/asyncexec provides a concrete reference executor
// used by tests and the CLI.
package asynctask
