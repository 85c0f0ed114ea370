package taskexec

import "github.com/gammazero/deque"

// semaWaiter is one coroutine parked in a sema. ready is set by the
// releaser before the waker fires.
type semaWaiter struct {
	waker *Waker
	ready bool
}

// sema implements a semaphore for coroutines on one executor. It
// manages a count of available resources and a FIFO of waiters.
type sema struct {
	noCopy noCopy                   // Prevents copying of the semaphore
	v      uint32                   // Value (available resources)
	w      deque.Deque[*semaWaiter] // Waiting coroutines
}

// acquire takes one resource, suspending co until one is handed to it
// if none is available.
func (s *sema) acquire(co *Coroutine) {
	if s.v > 0 {
		s.v--
		return
	}

	sw := &semaWaiter{waker: co.Waker()}
	s.w.PushBack(sw)
	for !sw.ready {
		co.Suspend()
	}
}

// release hands a resource to the oldest waiter, or returns it to the
// pool if nobody waits.
func (s *sema) release() {
	if s.w.Len() == 0 {
		s.v++
		return
	}

	sw := s.w.PopFront()
	sw.ready = true
	sw.waker.Wake()
}

// waiters returns the number of parked coroutines.
func (s *sema) waiters() int {
	return s.w.Len()
}
