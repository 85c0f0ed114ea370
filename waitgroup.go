package taskexec

// WaitGroup waits for a collection of coroutines to finish. Add is
// called before the work starts, Done when it ends, and Wait suspends
// the caller until the counter drops to zero.
type WaitGroup struct {
	noCopy noCopy // Prevents copying of the WaitGroup
	v      int32  // Counter of outstanding work
	w      uint32 // Number of coroutines waiting
	sema   sema   // Semaphore for queuing waiting coroutines
}

// Add adds delta to the counter. Waiters are woken when it reaches
// zero. A negative counter panics.
func (wg *WaitGroup) Add(delta int) {
	wg.v += int32(delta)

	if wg.v < 0 {
		panic("taskexec: negative WaitGroup counter")
	}

	if wg.v > 0 || wg.w == 0 {
		return
	}

	for ; wg.w != 0; wg.w-- {
		wg.sema.release()
	}
}

// Done decrements the counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Wait suspends co until the counter is zero. It returns immediately
// if it already is.
func (wg *WaitGroup) Wait(co *Coroutine) {
	if wg.v == 0 {
		return
	}

	wg.w++
	wg.sema.acquire(co)
}
