package taskexec

import (
	"context"
)

// Context is handed to a Future on every poll. It carries the waker
// that must be triggered once the future can make progress.
type Context struct {
	waker *Waker
}

// NewContext returns a poll context for the given waker.
func NewContext(w *Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the waker of the task being polled.
func (cx *Context) Waker() *Waker {
	return cx.waker
}

type coroutineContextKey struct{}

func withCoroutineContext(ctx context.Context, co *Coroutine) context.Context {
	return context.WithValue(ctx, coroutineContextKey{}, co)
}

// CoroutineFromContext returns the coroutine whose body received ctx.
func CoroutineFromContext(ctx context.Context) (*Coroutine, bool) {
	co, ok := ctx.Value(coroutineContextKey{}).(*Coroutine)
	return co, ok
}

// MustCoroutineFromContext is CoroutineFromContext for callers that
// only run inside a coroutine body.
func MustCoroutineFromContext(ctx context.Context) *Coroutine {
	co, ok := CoroutineFromContext(ctx)
	if !ok {
		panic("taskexec: context has no coroutine")
	}
	return co
}
