package taskexec

// Interrupts controls interrupt delivery on the core the executor runs
// on.
type Interrupts interface {
	// Disable masks interrupts.
	Disable()
	// Enable unmasks interrupts.
	Enable()
	// EnableAndHalt unmasks interrupts and halts the core until the
	// next interrupt, as one step: an interrupt that becomes pending
	// after Disable must still end the halt.
	EnableAndHalt()
}

// kicker is implemented by Interrupts that can be woken from outside
// interrupt context.
type kicker interface {
	Kick()
}

// sleepIfIdle halts the core if no task is ready. Interrupts are
// masked across the emptiness check so a handler cannot enqueue work
// between the check and the halt.
func (e *Executor) sleepIfIdle() {
	e.irq.Disable()
	if e.queue.IsEmpty() {
		e.stats.Halts++
		e.log("HALT")
		e.irq.EnableAndHalt()
		return
	}
	e.irq.Enable()
}
