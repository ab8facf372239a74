package kernel

import "sync/atomic"

var clockIDCounter atomic.Uint64

// Clock drives a DUT input pin through a 4-step cycle (RisingEdge,
// PositiveMid, FallingEdge, NegativeMid), notifies phase waiters on each
// step, and self-schedules its next step on the shared Scheduler.
type Clock struct {
	id        uint64
	name      string
	periodPs  Time
	drive     func(level bool)
	level     bool

	Rising      *PhaseEvent
	PositiveMid *PhaseEvent
	Falling     *PhaseEvent
	NegativeMid *PhaseEvent
}

// NewClock constructs a clock with the given name and period. drive may
// be nil if the clock only needs to notify phase waiters without
// writing a DUT pin (e.g. a clock used purely for timing in a unit
// test).
func NewClock(name string, periodPs Time, drive func(level bool)) *Clock {
	return &Clock{
		id:          clockIDCounter.Add(1),
		name:        name,
		periodPs:    periodPs,
		drive:       drive,
		Rising:      NewPhaseEvent(),
		PositiveMid: NewPhaseEvent(),
		Falling:     NewPhaseEvent(),
		NegativeMid: NewPhaseEvent(),
	}
}

// Name returns the clock's diagnostic name.
func (c *Clock) Name() string { return c.name }

// Level returns the DUT pin level this clock last drove.
func (c *Clock) Level() bool { return c.level }

// phaseEventFor returns the PhaseEvent wired to the given step.
func (c *Clock) phaseEventFor(step ClockStep) *PhaseEvent {
	switch step {
	case RisingEdge:
		return c.Rising
	case PositiveMid:
		return c.PositiveMid
	case FallingEdge:
		return c.Falling
	case NegativeMid:
		return c.NegativeMid
	default:
		panic(newContractError("clock %q: unknown step %v", c.name, step))
	}
}

// Register schedules this clock's first event at t=0, RisingEdge.
func (c *Clock) Register(s *Scheduler) {
	s.ScheduleClockEvent(0, c, RisingEdge)
}

// Step executes one clock step: optionally drives the DUT pin, triggers
// the corresponding PhaseEvent, then self-schedules the next step a
// quarter-period later.
func (c *Clock) Step(s *Scheduler, now Time, step ClockStep) {
	switch step {
	case RisingEdge, PositiveMid:
		c.level = true
	case FallingEdge, NegativeMid:
		c.level = false
	}
	if c.drive != nil {
		c.drive(c.level)
	}
	c.phaseEventFor(step).Trigger()

	nextStep := (step + 1) % 4
	s.ScheduleClockEvent(now+c.periodPs/4, c, nextStep)
}

// WaitEdge is syntactic sugar for awaiting this clock's given edge at a
// given sub-phase (PreDrive/Drive/Monitor/PostMonitor), so e.g. drivers
// can register at the Drive sub-phase of RisingEdge while monitors
// register at RisingEdge's Monitor sub-phase, guaranteeing drive-before-
// monitor ordering within the same edge.
func (c *Clock) WaitEdge(tc *TaskContext, step ClockStep, ph phase) {
	c.phaseEventFor(step).Wait(tc, ph)
}
