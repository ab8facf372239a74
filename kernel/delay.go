package kernel

// Delay suspends the calling task for ps picoseconds of virtual time. A
// zero delay returns immediately without suspending; otherwise an async
// event is scheduled at current_time+ps with default priority, whose
// callback resumes the suspended task.
func Delay(tc *TaskContext, ps Time) {
	if ps == 0 {
		return
	}
	suspend(tc.self, func() {
		self := tc.self
		tc.Scheduler.ScheduleAsyncDelay(ps, func() {
			resumeWaiter(self)
		}, PriorityDefault)
	})
}

// DelayNs suspends for ns nanoseconds.
func DelayNs(tc *TaskContext, ns Time) { Delay(tc, ns*Nanosecond) }

// DelayUs suspends for us microseconds.
func DelayUs(tc *TaskContext, us Time) { Delay(tc, us*Microsecond) }

// DelayMs suspends for ms milliseconds.
func DelayMs(tc *TaskContext, ms Time) { Delay(tc, ms*Millisecond) }
