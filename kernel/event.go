package kernel

// Event is a one-shot broadcast latch with a FIFO waiter list. trigger
// transitions triggered false->true and resumes every waiter registered
// before the call, in registration order; waiters registered during the
// trigger (by resumed tasks that immediately await the same event again)
// land in the next batch, never the in-progress one.
type Event struct {
	triggered bool
	waiters   []handle
}

// NewEvent constructs an untriggered Event.
func NewEvent() *Event { return &Event{} }

// Trigger snapshots and clears the waiter list before resuming anyone,
// so re-entrant registrations from resumed waiters are deferred to the
// next Trigger rather than drained by this one.
func (e *Event) Trigger() {
	e.triggered = true
	waiters := e.waiters
	e.waiters = nil
	for _, w := range waiters {
		resumeWaiter(w)
	}
}

// Reset clears triggered and the waiter list. Per the source design this
// is documented as idempotent, but calling it while waiters are queued
// is almost certainly a bug in the caller (a waiter would be silently
// dropped rather than resumed or cancelled), so this port treats it as a
// contract violation rather than staying silent about it.
func (e *Event) Reset() {
	if len(e.waiters) != 0 {
		panic(newContractError("Event.Reset called with %d waiter(s) still queued", len(e.waiters)))
	}
	e.triggered = false
}

// Wait suspends the calling task until the event is triggered. If the
// event is already triggered, it returns immediately without
// suspending.
func (e *Event) Wait(tc *TaskContext) {
	if e.triggered {
		return
	}
	suspend(tc.self, func() {
		e.waiters = append(e.waiters, tc.self)
	})
}

// resumeWaiter wakes a suspended waiter and blocks until it (or whatever
// it transfers control to) reports back, exactly like a scheduler
// callback driving a resumed task.
func resumeWaiter(w handle) {
	notify := make(chan struct{})
	w.wake(notify)
	<-notify
}
