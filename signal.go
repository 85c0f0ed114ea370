package taskexec

import "sync/atomic"

// Signal is an edge-triggered event that interrupt handlers can raise.
// As a Future it becomes Ready once per notification; notifications
// that arrive while nobody is waiting coalesce into one.
//
// The zero value is ready to use.
type Signal struct {
	noCopy noCopy
	set    atomic.Bool
	waker  AtomicWaker
}

// Notify marks the signal and wakes the registered task. Safe from
// interrupt context.
func (s *Signal) Notify() {
	s.set.Store(true)
	s.waker.Wake()
}

// Poll consumes a pending notification or registers the waker of cx.
func (s *Signal) Poll(cx *Context) Poll {
	if s.set.Swap(false) {
		return Ready
	}

	s.waker.Register(cx.Waker())

	// a Notify may have landed before the registration
	if s.set.Swap(false) {
		s.waker.Take()
		return Ready
	}
	return Pending
}
