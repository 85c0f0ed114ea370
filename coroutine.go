package taskexec

import (
	"context"

	"github.com/webriots/coro"
)

// Coroutine is a Future backed by a straight-line function. The body
// runs on its own stack and returns control to the executor each time
// it calls Suspend, so waiting on an event reads as a plain call.
type Coroutine struct {
	ctx     context.Context
	cx      *Context
	resume  func(struct{}) (struct{}, bool)
	suspend func() struct{}
	cancel  func()
	done    bool
}

// Go returns a Task running fn as a coroutine. The context passed to
// fn carries the coroutine, see CoroutineFromContext.
func Go(ctx context.Context, fn func(context.Context, *Coroutine)) *Task {
	return NewTask(NewCoroutine(ctx, fn))
}

// NewCoroutine wraps fn in a Coroutine. The body does not start until
// the first poll.
func NewCoroutine(ctx context.Context, fn func(context.Context, *Coroutine)) *Coroutine {
	co := new(Coroutine)
	co.ctx = withCoroutineContext(ctx, co)

	co.resume, co.cancel = coro.New(
		func(_ func(struct{}) struct{}, suspend func() struct{}) (z struct{}) {
			co.suspend = suspend
			fn(co.ctx, co)
			return
		},
	)

	return co
}

// Poll resumes the body until it suspends or returns.
func (co *Coroutine) Poll(cx *Context) Poll {
	if co.done {
		return Ready
	}

	co.cx = cx
	if _, ok := co.resume(struct{}{}); ok {
		return Pending
	}

	co.done = true
	co.cx = nil
	return Ready
}

// release abandons a suspended body and frees its stack. The
// coroutine reports Ready from then on without resuming.
func (co *Coroutine) release() {
	if co.done {
		return
	}
	co.done = true
	co.cx = nil
	co.cancel()
}

// Suspend hands control back to the executor. It returns on the next
// poll, which happens only after the task's waker has been invoked.
// It must be called from inside the body.
func (co *Coroutine) Suspend() {
	if co.suspend == nil || co.done {
		panic("taskexec: suspend outside coroutine")
	}
	co.suspend()
}

// Await polls f with the coroutine's poll context until it is Ready,
// suspending whenever f is Pending.
func (co *Coroutine) Await(f Future) {
	for f.Poll(co.Context()) == Pending {
		co.Suspend()
	}
}

// Yield requeues the task and suspends, letting other ready tasks run
// first.
func (co *Coroutine) Yield() {
	co.Waker().Wake()
	co.Suspend()
}

// Context returns the poll context of the current resumption.
func (co *Coroutine) Context() *Context {
	if co.cx == nil {
		panic("taskexec: coroutine is not being polled")
	}
	return co.cx
}

// Waker returns the waker of the task running the coroutine.
func (co *Coroutine) Waker() *Waker {
	return co.Context().Waker()
}

// Done reports whether the body has returned.
func (co *Coroutine) Done() bool {
	return co.done
}
