package taskexec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoroutineAwait(t *testing.T) {
	r := require.New(t)

	e, core := newTestExecutor(DefaultQueueCapacity)

	var sig Signal
	var steps []string
	task := Go(context.Background(), func(_ context.Context, co *Coroutine) {
		steps = append(steps, "start")
		co.Await(&sig)
		steps = append(steps, "first")
		co.Await(&sig)
		steps = append(steps, "second")
	})
	e.Spawn(task, High)

	e.RunReadyTasks()
	r.Equal([]string{"start"}, steps)
	r.True(e.HasWaker(task.ID()))

	core.Deliver(sig.Notify)
	e.RunReadyTasks()
	r.Equal([]string{"start", "first"}, steps)

	core.Deliver(sig.Notify)
	e.RunReadyTasks()
	r.Equal([]string{"start", "first", "second"}, steps)
	r.True(task.Done())
	r.Equal(0, e.Len())
}

func TestCoroutineYieldInterleaves(t *testing.T) {
	r := require.New(t)

	e, _ := newTestExecutor(DefaultQueueCapacity)

	var log []string
	for _, name := range []string{"a", "b"} {
		name := name
		e.Spawn(Go(context.Background(), func(_ context.Context, co *Coroutine) {
			for i := 0; i < 3; i++ {
				log = append(log, name)
				co.Yield()
			}
		}), High)
	}

	e.RunReadyTasks()

	r.Equal([]string{"a", "b", "a", "b", "a", "b"}, log)
	r.Equal(0, e.Len())
}

func TestCoroutineFromContext(t *testing.T) {
	r := require.New(t)

	e, _ := newTestExecutor(DefaultQueueCapacity)

	var same bool
	e.Spawn(Go(context.Background(), func(ctx context.Context, co *Coroutine) {
		got, ok := CoroutineFromContext(ctx)
		same = ok && got == co && MustCoroutineFromContext(ctx) == co
	}), High)
	e.RunReadyTasks()
	r.True(same)

	_, ok := CoroutineFromContext(context.Background())
	r.False(ok)
	r.Panics(func() { MustCoroutineFromContext(context.Background()) })
}

func TestCoroutineContextOutsidePoll(t *testing.T) {
	co := NewCoroutine(context.Background(), func(context.Context, *Coroutine) {})
	require.Panics(t, func() { co.Context() })
	require.Panics(t, co.Suspend)
}

func TestCoroutinePanicIsFatal(t *testing.T) {
	e, _ := newTestExecutor(DefaultQueueCapacity)
	e.Spawn(Go(context.Background(), func(context.Context, *Coroutine) {
		panic("boom")
	}), High)
	require.Panics(t, e.RunReadyTasks)
}

func TestRunReleasesSuspendedCoroutines(t *testing.T) {
	r := require.New(t)

	core := NewCore()
	e := NewExecutor(core)

	var sig Signal
	task := Go(context.Background(), func(_ context.Context, co *Coroutine) {
		co.Await(&sig)
	})
	e.Spawn(task, High)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- e.Run(ctx) }()

	r.Eventually(func() bool { return core.Halts() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		r.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		r.FailNow("Run did not return after cancel")
	}

	r.Equal(0, e.Len())
	r.True(task.Done())
	r.False(e.HasWaker(task.ID()))

	// the body is gone: a late event is a stale id, not a resumption
	polls := e.Stats().Polls
	core.Deliver(sig.Notify)
	r.NotPanics(e.RunReadyTasks)
	r.Equal(polls, e.Stats().Polls)
	r.Equal(uint64(1), e.Stats().Stale)
}
