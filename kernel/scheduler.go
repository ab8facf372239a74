package kernel

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// minOf returns the smaller of a and b, grounded on the same
// constraints.Ordered generic idiom the pack's rate-limiting ring buffer
// uses for its own comparisons.
func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// AsyncPriority orders async events at the same time_ps; lower values
// run first.
type AsyncPriority int

const (
	PriorityDefault AsyncPriority = 0
	PriorityHigh    AsyncPriority = -1
	PriorityLow     AsyncPriority = 1
)

// clockEvent is a time-tagged clock step callback. clockID and step
// break ties deterministically: the original C++ design tie-breaks on raw
// coroutine-frame/clock pointer addresses, which is not reproducible
// across runs or processes; this port instead tie-breaks on a
// registration-order sequence number assigned per clock at construction
// (see Clock.id), then on the step value itself, which guarantees
// byte-identical event ordering across runs.
type clockEvent struct {
	time    Time
	clockID uint64
	step    ClockStep
	clock   *Clock
}

// asyncEvent is a time-tagged callback with an explicit priority and an
// insertion sequence number used to break ties between equal
// priorities, preserving submission order.
type asyncEvent struct {
	time     Time
	priority AsyncPriority
	seq      uint64
	callback func()
}

type clockEventHeap []clockEvent

func (h clockEventHeap) Len() int { return len(h) }
func (h clockEventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	if h[i].clockID != h[j].clockID {
		return h[i].clockID < h[j].clockID
	}
	return h[i].step < h[j].step
}
func (h clockEventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *clockEventHeap) Push(x any)        { *h = append(*h, x.(clockEvent)) }
func (h *clockEventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type asyncEventHeap []asyncEvent

func (h asyncEventHeap) Len() int { return len(h) }
func (h asyncEventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h asyncEventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *asyncEventHeap) Push(x any)   { *h = append(*h, x.(asyncEvent)) }
func (h *asyncEventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Batch groups every clock and async event popped for a single instant,
// in the deterministic order the Kernel must process them in.
type Batch struct {
	ClockEvents []clockEvent
	AsyncEvents []asyncEvent
}

// Scheduler is a min-heap pair (clock events, async events) plus an
// unordered bucket of immediate callbacks, grounded on the teacher's
// container/heap-based timerHeap (eventloop/loop.go), generalised from
// wall-clock durations to the kernel's virtual Time.
type Scheduler struct {
	clockEvents clockEventHeap
	asyncEvents asyncEventHeap
	immediate   []func()
	asyncSeq    uint64
	now         Time
}

// NewScheduler constructs an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// ScheduleClockEvent registers a clock step callback at time t.
func (s *Scheduler) ScheduleClockEvent(t Time, clock *Clock, step ClockStep) {
	heap.Push(&s.clockEvents, clockEvent{time: t, clockID: clock.id, step: step, clock: clock})
}

// ScheduleAsyncEvent registers a one-shot callback at time t.
func (s *Scheduler) ScheduleAsyncEvent(t Time, cb func(), priority AsyncPriority) {
	s.asyncSeq++
	heap.Push(&s.asyncEvents, asyncEvent{time: t, priority: priority, seq: s.asyncSeq, callback: cb})
}

// ScheduleAsyncDelay registers cb to run d picoseconds from now.
func (s *Scheduler) ScheduleAsyncDelay(d Time, cb func(), priority AsyncPriority) {
	s.ScheduleAsyncEvent(s.now+d, cb, priority)
}

// ExecuteAsyncImmediate appends cb to the immediate bucket, to be run
// after all time-tagged work at the current instant.
func (s *Scheduler) ExecuteAsyncImmediate(cb func()) {
	s.immediate = append(s.immediate, cb)
}

// PeekNextTime returns the earliest pending time-tagged event's time, or
// MaxTime if none remain.
func (s *Scheduler) PeekNextTime() Time {
	next := MaxTime
	if len(s.clockEvents) > 0 {
		next = minOf(next, s.clockEvents[0].time)
	}
	if len(s.asyncEvents) > 0 {
		next = minOf(next, s.asyncEvents[0].time)
	}
	return next
}

// GetNextBatch pops every clock and async event whose time equals
// PeekNextTime, in scheduler order.
func (s *Scheduler) GetNextBatch() Batch {
	t := s.PeekNextTime()
	var b Batch
	if t == MaxTime {
		return b
	}
	for len(s.clockEvents) > 0 && s.clockEvents[0].time == t {
		b.ClockEvents = append(b.ClockEvents, heap.Pop(&s.clockEvents).(clockEvent))
	}
	for len(s.asyncEvents) > 0 && s.asyncEvents[0].time == t {
		b.AsyncEvents = append(b.AsyncEvents, heap.Pop(&s.asyncEvents).(asyncEvent))
	}
	return b
}

// ProcessAsyncImmediateEvents drains the immediate bucket once; any
// callback enqueued during this drain belongs to the next drain.
func (s *Scheduler) ProcessAsyncImmediateEvents() {
	pending := s.immediate
	s.immediate = nil
	for _, cb := range pending {
		cb()
	}
}

// SetCurrentTime sets the scheduler's notion of "now", used by
// ScheduleAsyncDelay.
func (s *Scheduler) SetCurrentTime(t Time) { s.now = t }

// Clear empties every queue. Exposed for test harnesses that reuse a
// Scheduler across runs (not used by the Kernel itself).
func (s *Scheduler) Clear() {
	s.clockEvents = nil
	s.asyncEvents = nil
	s.immediate = nil
}
