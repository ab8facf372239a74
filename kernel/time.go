package kernel

// Time is the simulation's picosecond-resolution logical clock. It is
// monotonically non-decreasing for the lifetime of a run and is mutated
// only by the Kernel.
type Time uint64

const (
	// Nanosecond is the number of picoseconds in one nanosecond.
	Nanosecond Time = 1_000
	// Microsecond is the number of picoseconds in one microsecond.
	Microsecond Time = 1_000_000
	// Millisecond is the number of picoseconds in one millisecond.
	Millisecond Time = 1_000_000_000
)

// MaxTime is used as the "no more events" sentinel when peeking the
// scheduler's next time.
const MaxTime Time = ^Time(0)
