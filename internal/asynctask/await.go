package asynctask

// Await parks waiter on target's future and reports whether the caller
// must actually suspend. On ready==true, result/err are valid immediately
// and waiter was never enqueued anywhere. On ready==false, waiter has
// been linked into target's wait queue and the caller must not resume it
// until CompleteFuture later hands it back via the waiters slice.
//
// target must have been created with IsFuture set.
func Await(waiter *AsyncTask, target *AsyncTask) (result any, err error, ready bool) {
	fut := target.FutureFragment()
	if fut == nil {
		panic("asynctask: Await on a task with no future fragment")
	}
	return fut.WaitFuture(waiter)
}
