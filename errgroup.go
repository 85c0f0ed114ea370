package taskexec

import "context"

// Group runs a set of coroutine tasks on an executor and collects the
// first error. The first failure cancels the group context.
type Group struct {
	exec   *Executor
	prio   Priority
	ctx    context.Context
	cancel context.CancelCauseFunc
	wg     WaitGroup
	err    error
}

// NewGroup returns a group whose tasks are spawned on e at priority p
// with a context derived from ctx.
func NewGroup(ctx context.Context, e *Executor, p Priority) *Group {
	ctx, cancel := context.WithCancelCause(ctx)
	return &Group{exec: e, prio: p, ctx: ctx, cancel: cancel}
}

// Context returns the group context. It is cancelled with the first
// error returned by a member, or when Wait returns.
func (g *Group) Context() context.Context {
	return g.ctx
}

// Go spawns fn as a new task in the group.
func (g *Group) Go(fn func(context.Context, *Coroutine) error) {
	g.wg.Add(1)
	g.exec.Spawn(Go(g.ctx, func(ctx context.Context, co *Coroutine) {
		defer g.wg.Done()
		if err := fn(ctx, co); err != nil && g.err == nil {
			g.err = err
			g.cancel(err)
		}
	}), g.prio)
}

// Wait suspends co until every member has returned and yields the
// first error, if any.
func (g *Group) Wait(co *Coroutine) error {
	g.wg.Wait(co)
	g.cancel(g.err)
	return g.err
}
