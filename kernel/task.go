package kernel

import (
	"sync/atomic"
)

// Task[T] is a lazily-started, single-shot cooperative computation
// producing a value of type T. It owns a dedicated goroutine that never
// runs concurrently with any other task's goroutine: control is handed
// from one goroutine to exactly one other via an unbuffered channel,
// strictly alternating which goroutine is runnable. Because every
// handoff is a channel operation, the Go memory model's happens-before
// guarantee for channel send/receive is sufficient on its own to make
// every field below safe to read and write without a mutex, despite
// being touched from more than one goroutine over the task's lifetime:
// whichever goroutine becomes "active" only does so as the direct
// result of a channel send performed by the previously active one, so
// every write made before that send is visible after the corresponding
// receive.
//
// Symmetric transfer (awaiting an unstarted task, or a task completing
// with a continuation set) is realised by forwarding the notify channel
// itself down the chain instead of looping back through a driver: the
// completing (or newly-started) goroutine either becomes the next link
// in the chain or exits immediately, so no call stack or goroutine count
// grows with the length of an await chain.
type Task[T any] struct {
	name string
	body func(*TaskContext) (T, error)

	state atomic.Int32 // one of taskCreated..taskDone

	resumeCh chan struct{} // driver sends here to hand this task the CPU
	notify   chan struct{} // where this task reports back once it yields control

	started bool
	cont    handle // the (at most one) task waiting on this one

	result T
	err    error
	doneCh chan struct{}
}

const (
	taskCreated int32 = iota
	taskRunning
	taskDone
)

// handle is the non-generic surface a Task exposes to the scheduler,
// events, queues, other tasks, and structured-concurrency helpers so
// they can drive it without depending on its result type T.
type handle interface {
	wake(notify chan struct{})
	isDone() bool
	checkException() error
	setContinuation(h handle)
	hasStarted() bool
	markStarted()
	currentNotify() chan struct{}
	resumeChan() chan struct{}
}

// NewTask constructs a Task in the Created state. body is not invoked
// until Start is called or the task is awaited.
func NewTask[T any](name string, body func(*TaskContext) (T, error)) *Task[T] {
	t := &Task[T]{
		name:     name,
		body:     body,
		resumeCh: make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go t.run()
	return t
}

// run is the task's permanent goroutine body: it waits for the first
// wake (from Start or from being awaited), executes body with panic
// recovery, and finishes.
func (t *Task[T]) run() {
	<-t.resumeCh
	t.state.Store(taskRunning)

	self := &TaskContext{Context: globalRunContext, self: t}

	var result T
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ce, ok := r.(*ContractError); ok {
					// Contract misuse is raised immediately at the misuse
					// site and is not intended to be caught: let it
					// propagate out of this goroutine rather than
					// capturing it into the task's result slot.
					panic(ce)
				}
				err = recoverToError(r)
			}
		}()
		result, err = t.body(self)
	}()

	t.finish(result, err)
}

// globalRunContext is set exactly once, by NewKernel, before any task is
// started. It is never mutated again, so reading it from any
// task goroutine afterwards is race-free.
var globalRunContext *Context

func (t *Task[T]) wake(notify chan struct{}) {
	t.notify = notify
	t.resumeCh <- struct{}{}
}

func (t *Task[T]) currentNotify() chan struct{} { return t.notify }
func (t *Task[T]) resumeChan() chan struct{}    { return t.resumeCh }
func (t *Task[T]) hasStarted() bool             { return t.started }
func (t *Task[T]) markStarted()                 { t.started = true }

func (t *Task[T]) setContinuation(h handle) {
	if t.cont != nil {
		panic(newContractError("task %q already has an awaiter", t.name))
	}
	t.cont = h
}

// Start transitions Created -> Running. Legal only once; calling it
// again is a contract violation. Blocks until the task either suspends
// or completes (possibly synchronously, within this call).
func (t *Task[T]) Start() {
	if t.started {
		panic(newContractError("task %q started twice", t.name))
	}
	t.started = true
	notify := make(chan struct{})
	t.wake(notify)
	<-notify
}

// finish stores the result, marks the task Done, and either transfers
// control symmetrically to the continuation or reports completion back
// to whoever is currently driving this task.
func (t *Task[T]) finish(result T, err error) {
	t.result = result
	t.err = err
	t.state.Store(taskDone)
	close(t.doneCh)

	notify := t.notify
	if t.cont != nil {
		t.cont.wake(notify)
		return
	}
	notify <- struct{}{}
}

func (t *Task[T]) isDone() bool { return t.state.Load() == taskDone }

// Done reports whether the task has reached Done(*).
func (t *Task[T]) Done() bool { return t.isDone() }

func (t *Task[T]) checkException() error {
	if t.isDone() {
		return t.err
	}
	return nil
}

// CheckException surfaces a captured failure, if the task has completed
// with one.
func (t *Task[T]) CheckException() error { return t.checkException() }

// Result returns the stored value and error. Only meaningful once Done()
// is true.
func (t *Task[T]) Result() (T, error) { return t.result, t.err }

// Name returns the task's diagnostic name.
func (t *Task[T]) Name() string { return t.name }

// Await suspends the calling task (identified implicitly by tc) until
// other completes, then returns its result (propagating its failure as
// an error). If other is already Done, it returns immediately without
// suspending. If other has not yet been started, starting it happens as
// part of this call via direct symmetric transfer, with no extra
// scheduler round-trip.
func Await[T any](tc *TaskContext, other *Task[T]) (T, error) {
	if other.isDone() {
		return other.result, other.err
	}
	other.setContinuation(tc.self)
	needsStart := !other.hasStarted()
	other.markStarted()

	notify := tc.self.currentNotify()
	if needsStart {
		other.wake(notify)
	} else {
		notify <- struct{}{}
	}
	<-tc.self.resumeChan()

	return other.result, other.err
}

// suspend is the shared shape used by every non-Task awaitable (Delay,
// Event, PhaseEvent, TLMQueue, when_all proxies): register arranges some
// future wake() call against the current task, after which suspend
// reports the suspension back to whoever is currently driving it and
// blocks until woken again.
func suspend(self handle, register func()) {
	register()
	notify := self.currentNotify()
	notify <- struct{}{}
	<-self.resumeChan()
}
