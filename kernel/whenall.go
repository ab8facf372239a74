package kernel

// whenAllCounter implements the shared counter-based core described by
// the structured-concurrency design: the counter starts at N+1 so the
// parent's own final decrement (after it has started every child) can
// never race with a child that completes before all children have even
// been started. Because only one goroutine in this kernel is ever
// active at a time, the counter needs no atomic operations of its own;
// see task.go's top comment for why that invariant makes plain fields
// safe here too.
type whenAllCounter struct {
	remaining int
	ev        *Event
}

func (c *whenAllCounter) decrement() {
	c.remaining--
	if c.remaining == 0 {
		c.ev.Trigger()
	}
}

// startWhenAllChild wraps child in a proxy task that awaits it and then
// decrements state, and starts the proxy. Start() returns once the
// proxy (and, via symmetric transfer, child) has run to its first
// suspension or to completion, handing control back so the caller can
// start the next child in input order.
func startWhenAllChild[T any](state *whenAllCounter, child *Task[T]) {
	proxy := NewTask[struct{}](child.Name()+":when_all_proxy", func(ptc *TaskContext) (struct{}, error) {
		_, _ = Await(ptc, child)
		state.decrement()
		return struct{}{}, nil
	})
	proxy.Start()
}

// WhenAllSlice awaits every child in the (homogeneous) slice, starting
// them in input order. On success it returns their results in input
// order; if any child fails, it returns one of the failures once every
// child has completed. An empty slice completes immediately with a nil
// result; a single-element slice is equivalent to awaiting it directly.
func WhenAllSlice[T any](tc *TaskContext, children []*Task[T]) ([]T, error) {
	n := len(children)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		v, err := Await(tc, children[0])
		return []T{v}, err
	}

	state := &whenAllCounter{remaining: n + 1, ev: NewEvent()}
	for _, child := range children {
		startWhenAllChild(state, child)
	}
	state.decrement()
	state.ev.Wait(tc)

	results := make([]T, n)
	var firstErr error
	for i, child := range children {
		v, err := child.Result()
		results[i] = v
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}

// WhenAllReadySlice awaits every child exactly like WhenAllSlice but
// never fails: it returns the (now Done) child tasks themselves so the
// caller can inspect each outcome individually.
func WhenAllReadySlice[T any](tc *TaskContext, children []*Task[T]) []*Task[T] {
	n := len(children)
	if n == 0 {
		return nil
	}
	if n == 1 {
		_, _ = Await(tc, children[0])
		return children
	}

	state := &whenAllCounter{remaining: n + 1, ev: NewEvent()}
	for _, child := range children {
		startWhenAllChild(state, child)
	}
	state.decrement()
	state.ev.Wait(tc)
	return children
}

// WhenAll2Result preserves the per-element types of a fixed-arity
// when_all over two heterogeneous awaitables.
type WhenAll2Result[A, B any] struct {
	A A
	B B
}

// WhenAll2 is the two-element heterogeneous counterpart to
// WhenAllSlice.
func WhenAll2[A, B any](tc *TaskContext, ta *Task[A], tb *Task[B]) (WhenAll2Result[A, B], error) {
	state := &whenAllCounter{remaining: 3, ev: NewEvent()}
	startWhenAllChild(state, ta)
	startWhenAllChild(state, tb)
	state.decrement()
	state.ev.Wait(tc)

	va, ea := ta.Result()
	vb, eb := tb.Result()
	err := firstNonNil(ea, eb)
	return WhenAll2Result[A, B]{A: va, B: vb}, err
}

// WhenAllReady2Result holds the two child tasks themselves, post
// completion, for individual inspection.
type WhenAllReady2Result[A, B any] struct {
	A *Task[A]
	B *Task[B]
}

// WhenAllReady2 is the never-failing counterpart to WhenAll2.
func WhenAllReady2[A, B any](tc *TaskContext, ta *Task[A], tb *Task[B]) WhenAllReady2Result[A, B] {
	state := &whenAllCounter{remaining: 3, ev: NewEvent()}
	startWhenAllChild(state, ta)
	startWhenAllChild(state, tb)
	state.decrement()
	state.ev.Wait(tc)
	return WhenAllReady2Result[A, B]{A: ta, B: tb}
}

// WhenAll3Result is the three-element heterogeneous counterpart.
type WhenAll3Result[A, B, C any] struct {
	A A
	B B
	C C
}

// WhenAll3 is the three-element heterogeneous counterpart to
// WhenAllSlice.
func WhenAll3[A, B, C any](tc *TaskContext, ta *Task[A], tb *Task[B], tcC *Task[C]) (WhenAll3Result[A, B, C], error) {
	state := &whenAllCounter{remaining: 4, ev: NewEvent()}
	startWhenAllChild(state, ta)
	startWhenAllChild(state, tb)
	startWhenAllChild(state, tcC)
	state.decrement()
	state.ev.Wait(tc)

	va, ea := ta.Result()
	vb, eb := tb.Result()
	vc, ec := tcC.Result()
	err := firstNonNil(ea, eb, ec)
	return WhenAll3Result[A, B, C]{A: va, B: vb, C: vc}, err
}

// WhenAllReady3Result holds the three child tasks themselves.
type WhenAllReady3Result[A, B, C any] struct {
	A *Task[A]
	B *Task[B]
	C *Task[C]
}

// WhenAllReady3 is the never-failing counterpart to WhenAll3.
func WhenAllReady3[A, B, C any](tc *TaskContext, ta *Task[A], tb *Task[B], tcC *Task[C]) WhenAllReady3Result[A, B, C] {
	state := &whenAllCounter{remaining: 4, ev: NewEvent()}
	startWhenAllChild(state, ta)
	startWhenAllChild(state, tb)
	startWhenAllChild(state, tcC)
	state.decrement()
	state.ev.Wait(tc)
	return WhenAllReady3Result[A, B, C]{A: ta, B: tb, C: tcC}
}

func firstNonNil(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
