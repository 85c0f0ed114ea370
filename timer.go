package taskexec

import (
	"context"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Timers wakes tasks once the TickClock reaches their deadline. It
// runs as a task on the same executor as the sleepers, so its tree
// needs no locking.
type Timers struct {
	clock *TickClock
	tree  *redblacktree.Tree // timerKey -> *Waker
	seq   uint64
}

// timerKey orders sleepers by deadline, then by registration order.
type timerKey struct {
	deadline int64
	seq      uint64
}

func timerCmp(a, b any) int {
	ka, kb := a.(timerKey), b.(timerKey)
	switch {
	case ka.deadline < kb.deadline:
		return -1
	case ka.deadline > kb.deadline:
		return 1
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// NewTimers returns a timer service driven by clock.
func NewTimers(clock *TickClock) *Timers {
	return &Timers{
		clock: clock,
		tree:  redblacktree.NewWith(timerCmp),
	}
}

// Task returns the service task. Spawn it once, normally at Low
// priority; it never completes.
func (t *Timers) Task(ctx context.Context) *Task {
	return Go(ctx, t.run)
}

func (t *Timers) run(_ context.Context, co *Coroutine) {
	for {
		co.Await(t.clock.Signal())
		t.fire()
	}
}

// fire wakes every sleeper whose deadline has passed.
func (t *Timers) fire() {
	now := t.clock.Count()
	for node := t.tree.Left(); node != nil; node = t.tree.Left() {
		key := node.Key.(timerKey)
		if key.deadline > now {
			return
		}
		t.tree.Remove(key)
		node.Value.(*Waker).Wake()
	}
}

// Pending returns the number of registered sleepers.
func (t *Timers) Pending() int {
	return t.tree.Size()
}

// Sleep returns a Future that is Ready once ticks timer interrupts
// have been delivered after its first poll.
func (t *Timers) Sleep(ticks int64) Future {
	return &sleep{timers: t, ticks: ticks}
}

type sleep struct {
	timers     *Timers
	ticks      int64
	key        timerKey
	armed      bool
	registered bool
}

func (s *sleep) Poll(cx *Context) Poll {
	t := s.timers
	now := t.clock.Count()

	if !s.armed {
		s.armed = true
		s.key.deadline = now + s.ticks
	}

	if now >= s.key.deadline {
		if s.registered {
			t.tree.Remove(s.key)
			s.registered = false
		}
		return Ready
	}

	if !s.registered {
		t.seq++
		s.key.seq = t.seq
		s.registered = true
	}
	t.tree.Put(s.key, cx.Waker())
	return Pending
}
