package taskexec

import (
	"fmt"
	"sync/atomic"
)

// Waker re-enqueues one task. The executor caches one per pending
// task; event sources hold clones and call Wake from any context,
// including interrupt handlers.
type Waker struct {
	id    TaskID
	queue *TaskQueue
}

func newWaker(id TaskID, queue *TaskQueue) *Waker {
	return &Waker{id: id, queue: queue}
}

// ID returns the id of the task the waker is bound to.
func (w *Waker) ID() TaskID {
	return w.id
}

// Clone returns a handle sharing the same binding. Wakers are
// immutable, so the clone is the waker itself.
func (w *Waker) Clone() *Waker {
	return w
}

// Wake pushes the task id at High priority regardless of the priority
// the task was spawned with. A full queue is fatal: a wake must never
// be dropped.
func (w *Waker) Wake() {
	w.wake()
}

// WakeByRef is equivalent to Wake. Both leave the waker usable.
func (w *Waker) WakeByRef() {
	w.wake()
}

func (w *Waker) wake() {
	if err := w.queue.Push(w.id, High); err != nil {
		fatal(fmt.Errorf("taskexec: wake: %w", err))
	}
}

// AtomicWaker is a single waker slot shared between a task and an
// interrupt handler. The task registers its waker before returning
// Pending and the handler takes and wakes it.
//
// The zero value is ready to use.
type AtomicWaker struct {
	noCopy noCopy
	w      atomic.Pointer[Waker]
}

// Register stores w, replacing any previously registered waker.
func (aw *AtomicWaker) Register(w *Waker) {
	aw.w.Store(w)
}

// Take removes and returns the registered waker, or nil.
func (aw *AtomicWaker) Take() *Waker {
	return aw.w.Swap(nil)
}

// Wake takes the registered waker, if any, and wakes it.
func (aw *AtomicWaker) Wake() {
	if w := aw.Take(); w != nil {
		w.Wake()
	}
}
