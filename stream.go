package taskexec

import (
	"fmt"
	"sync/atomic"
)

// DefaultStreamCapacity is the buffer size of streams created from the
// default configuration.
const DefaultStreamCapacity = 100

// Stream carries values from an interrupt handler to one task. The
// handler pushes without blocking; values are dropped when the buffer
// is full.
type Stream[T any] struct {
	buf     *ring[T]
	waker   AtomicWaker
	dropped atomic.Uint64
}

// NewStream returns a stream buffering up to capacity values.
func NewStream[T any](capacity int) *Stream[T] {
	return &Stream[T]{buf: newRing[T](capacity)}
}

// Push appends v and wakes the consumer. It returns an error wrapping
// ErrStreamFull, and drops v, if the buffer is full. Safe from
// interrupt context.
func (s *Stream[T]) Push(v T) error {
	if !s.buf.push(v) {
		s.dropped.Add(1)
		return fmt.Errorf("stream push: %w", ErrStreamFull)
	}
	s.waker.Wake()
	return nil
}

// Next returns the next value, or Pending after registering the waker
// of cx.
func (s *Stream[T]) Next(cx *Context) (T, Poll) {
	if v, ok := s.buf.pop(); ok {
		return v, Ready
	}

	s.waker.Register(cx.Waker())

	if v, ok := s.buf.pop(); ok {
		s.waker.Take()
		return v, Ready
	}

	var zero T
	return zero, Pending
}

// Recv waits for the next value from inside a coroutine.
func (s *Stream[T]) Recv(co *Coroutine) T {
	for {
		if v, p := s.Next(co.Context()); p == Ready {
			return v
		}
		co.Suspend()
	}
}

// Len returns the number of buffered values.
func (s *Stream[T]) Len() int {
	return s.buf.len()
}

// Dropped returns the number of values lost to a full buffer.
func (s *Stream[T]) Dropped() uint64 {
	return s.dropped.Load()
}
