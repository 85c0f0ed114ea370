package taskexec

// Mutex provides mutual exclusion for coroutines running on the same
// executor. Ownership passes to waiters in FIFO order.
type Mutex struct {
	noCopy noCopy // Prevents copying of the mutex
	locked bool   // Whether a coroutine holds the lock
	sema   sema   // Semaphore for queuing waiting coroutines
}

// Lock acquires the mutex for co, suspending it until the mutex is
// handed over if it is already held.
func (m *Mutex) Lock(co *Coroutine) {
	if !m.locked {
		m.locked = true
		return
	}

	m.sema.acquire(co)
}

// TryLock acquires the mutex if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	if m.locked {
		return false
	}
	m.locked = true
	return true
}

// Unlock releases the mutex. If coroutines are waiting, the oldest one
// becomes the owner and is woken.
func (m *Mutex) Unlock() {
	if !m.locked {
		panic("taskexec: unlock of unlocked mutex")
	}

	if m.sema.waiters() == 0 {
		m.locked = false
		return
	}

	m.sema.release()
}

// WaitCount returns the number of coroutines waiting for the mutex.
func (m *Mutex) WaitCount() int {
	return m.sema.waiters()
}
