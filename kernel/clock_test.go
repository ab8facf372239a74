package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockStepsThroughFourPhasesPerPeriod(t *testing.T) {
	s := NewScheduler()
	var levels []bool
	c := NewClock("clk", 4, func(level bool) { levels = append(levels, level) })
	c.Register(s)

	for i := 0; i < 4; i++ {
		next := s.PeekNextTime()
		s.SetCurrentTime(next)
		batch := s.GetNextBatch()
		for _, ce := range batch.ClockEvents {
			ce.clock.Step(s, next, ce.step)
		}
	}

	assert.Equal(t, []bool{true, true, false, false}, levels)
}

func TestClockWaitEdgeOrdersDriveBeforeMonitor(t *testing.T) {
	s := NewScheduler()
	c := NewClock("clk", 4, nil)
	c.Register(s)

	var order []string
	driver := NewTask("driver", func(tc *TaskContext) (struct{}, error) {
		c.WaitEdge(tc, RisingEdge, Drive)
		order = append(order, "drive")
		return struct{}{}, nil
	})
	monitor := NewTask("monitor", func(tc *TaskContext) (struct{}, error) {
		c.WaitEdge(tc, RisingEdge, Monitor)
		order = append(order, "monitor")
		return struct{}{}, nil
	})
	driver.Start()
	monitor.Start()

	next := s.PeekNextTime()
	s.SetCurrentTime(next)
	batch := s.GetNextBatch()
	for _, ce := range batch.ClockEvents {
		ce.clock.Step(s, next, ce.step)
	}

	assert.Equal(t, []string{"drive", "monitor"}, order)
}

func TestClockPhaseEventForUnknownStepPanics(t *testing.T) {
	c := NewClock("clk", 4, nil)
	assert.Panics(t, func() { c.phaseEventFor(ClockStep(99)) })
}
