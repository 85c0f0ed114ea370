package taskexec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignalCoalesces(t *testing.T) {
	r := require.New(t)

	q := NewTaskQueue(4)
	cx := NewContext(newWaker(1, q))

	var sig Signal
	r.Equal(Pending, sig.Poll(cx))

	sig.Notify()
	sig.Notify()
	r.Equal(1, q.Len(High))

	r.Equal(Ready, sig.Poll(cx))
	r.Equal(Pending, sig.Poll(cx))
}

func TestAtomicWakerTake(t *testing.T) {
	r := require.New(t)

	q := NewTaskQueue(4)
	var aw AtomicWaker
	aw.Wake()
	r.True(q.IsEmpty())

	aw.Register(newWaker(7, q))
	aw.Wake()
	aw.Wake()

	id, ok := q.Pop()
	r.True(ok)
	r.Equal(TaskID(7), id)
	r.True(q.IsEmpty())
	r.Nil(aw.Take())
}

func TestStream(t *testing.T) {
	r := require.New(t)

	e, core := newTestExecutor(DefaultQueueCapacity)
	keys := NewStream[byte](4)

	var got []byte
	e.Spawn(Go(context.Background(), func(_ context.Context, co *Coroutine) {
		for {
			b := keys.Recv(co)
			if b == 0 {
				return
			}
			got = append(got, b)
		}
	}), High)

	e.RunReadyTasks()
	r.Empty(got)

	for _, b := range []byte("hi") {
		b := b
		core.Deliver(func() { r.NoError(keys.Push(b)) })
	}
	e.RunReadyTasks()
	r.Equal([]byte("hi"), got)

	core.Deliver(func() { r.NoError(keys.Push(0)) })
	e.RunReadyTasks()
	r.Equal(0, e.Len())
}

func TestStreamFull(t *testing.T) {
	r := require.New(t)

	s := NewStream[int](2)
	r.NoError(s.Push(1))
	r.NoError(s.Push(2))
	r.ErrorIs(s.Push(3), ErrStreamFull)
	r.Equal(uint64(1), s.Dropped())
	r.Equal(2, s.Len())
}

func TestTickClock(t *testing.T) {
	r := require.New(t)

	core := NewCore()
	clock := NewTickClock(core, 32)

	clock.Tick()
	clock.Tick()
	r.Equal(int64(2), clock.Count())

	clock.Start(time.Millisecond)
	r.Eventually(func() bool { return clock.Count() >= 5 }, time.Second, time.Millisecond)
	clock.Stop()
	clock.Stop()
}

func TestTimersSleep(t *testing.T) {
	r := require.New(t)

	e, core := newTestExecutor(DefaultQueueCapacity)
	clock := NewTickClock(core, 32)
	timers := NewTimers(clock)
	ctx := context.Background()

	e.Spawn(timers.Task(ctx), Low)

	var woke []int64
	for _, ticks := range []int64{3, 1} {
		ticks := ticks
		e.Spawn(Go(ctx, func(_ context.Context, co *Coroutine) {
			co.Await(timers.Sleep(ticks))
			woke = append(woke, ticks)
		}), High)
	}

	e.RunReadyTasks()
	r.Equal(2, timers.Pending())

	clock.Tick()
	e.RunReadyTasks()
	r.Equal([]int64{1}, woke)

	clock.Tick()
	e.RunReadyTasks()
	r.Equal([]int64{1}, woke)

	clock.Tick()
	e.RunReadyTasks()
	r.Equal([]int64{1, 3}, woke)
	r.Equal(0, timers.Pending())

	// only the timer service remains
	r.Equal(1, e.Len())
}

func TestTimersSleepZero(t *testing.T) {
	r := require.New(t)

	e, core := newTestExecutor(DefaultQueueCapacity)
	timers := NewTimers(NewTickClock(core, 32))

	done := false
	e.Spawn(Go(context.Background(), func(_ context.Context, co *Coroutine) {
		co.Await(timers.Sleep(0))
		done = true
	}), High)
	e.RunReadyTasks()

	r.True(done)
	r.Equal(0, timers.Pending())
}

func TestStreamCapacityOne(t *testing.T) {
	r := require.New(t)

	s := NewStream[int](1)
	r.NoError(s.Push(1))
	r.ErrorIs(s.Push(2), ErrStreamFull)

	cx := NewContext(newWaker(1, NewTaskQueue(4)))
	v, p := s.Next(cx)
	r.Equal(Ready, p)
	r.Equal(1, v)

	r.NoError(s.Push(3))
	r.ErrorIs(s.Push(4), ErrStreamFull)
	r.Equal(uint64(2), s.Dropped())
}
