package kernel

// ClockStep names the four sub-phases of one clock cycle.
type ClockStep int

const (
	RisingEdge ClockStep = iota
	PositiveMid
	FallingEdge
	NegativeMid
)

func (s ClockStep) String() string {
	switch s {
	case RisingEdge:
		return "RisingEdge"
	case PositiveMid:
		return "PositiveMid"
	case FallingEdge:
		return "FallingEdge"
	case NegativeMid:
		return "NegativeMid"
	default:
		return "unknown"
	}
}

// phase names the four waiter buckets a PhaseEvent drains, in order.
// phase is an alias of ClockStep, not a distinct type: the four
// sub-phase constants share ClockStep's values and ordering (PreDrive
// is RisingEdge, Drive is PositiveMid, and so on), so a ClockStep value
// can be passed wherever a phase is expected.
type phase = ClockStep

const (
	PreDrive    phase = RisingEdge
	Drive       phase = PositiveMid
	Monitor     phase = FallingEdge
	PostMonitor phase = NegativeMid
)

var allPhases = [...]phase{PreDrive, Drive, Monitor, PostMonitor}

// PhaseEvent is a fixed-arity, non-latching (edge-triggered) event with
// four independent waiter buckets. Each call to Trigger flushes the
// buckets in PreDrive, Drive, Monitor, PostMonitor order, resuming
// waiters within a bucket in insertion order.
//
// Re-entrant registration during a Trigger is permitted: a handler
// resumed from bucket k may enqueue into bucket k+1 (or later), which
// this same Trigger call will still drain, because each bucket is
// snapshotted-then-cleared immediately before it is drained rather than
// all four being snapshotted up front.
type PhaseEvent struct {
	buckets [4][]handle
}

// NewPhaseEvent constructs an empty PhaseEvent.
func NewPhaseEvent() *PhaseEvent { return &PhaseEvent{} }

// Trigger drains all four buckets in phase order.
func (p *PhaseEvent) Trigger() {
	for _, ph := range allPhases {
		waiters := p.buckets[ph]
		p.buckets[ph] = nil
		for _, w := range waiters {
			resumeWaiter(w)
		}
	}
}

// Wait suspends the calling task until the given phase next fires.
func (p *PhaseEvent) Wait(tc *TaskContext, ph phase) {
	suspend(tc.self, func() {
		p.buckets[ph] = append(p.buckets[ph], tc.self)
	})
}
