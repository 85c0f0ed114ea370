package taskexec

import (
	"sync"
	"sync/atomic"
)

// Vector identifies an interrupt line of a Core.
type Vector uint8

// Core emulates the interrupt controller of a single core on a hosted
// Go runtime. Interrupts are delivered by Raise from any goroutine,
// standing in for hardware. A handler never runs while interrupts are
// disabled, and handlers never overlap one another, as on the real
// core; they may overlap task code that runs with interrupts enabled,
// which is why handlers must only touch lock-free state such as the
// TaskQueue.
type Core struct {
	noCopy   noCopy
	mask     sync.Mutex // held while interrupts are disabled
	wake     chan struct{}
	handlers [256]func()
	halts    atomic.Uint64
	raised   atomic.Uint64
}

// NewCore returns a core with interrupts enabled and no handlers.
func NewCore() *Core {
	return &Core{wake: make(chan struct{}, 1)}
}

// Handle installs fn as the handler of vector v, replacing any previous
// handler.
func (c *Core) Handle(v Vector, fn func()) {
	c.mask.Lock()
	defer c.mask.Unlock()
	c.handlers[v] = fn
}

// Raise delivers interrupt v. It waits while interrupts are disabled,
// runs the handler if one is installed and then ends a pending halt.
func (c *Core) Raise(v Vector) {
	c.mask.Lock()
	fn := c.handlers[v]
	c.deliver(fn)
}

// Deliver runs fn as if it were the handler of an interrupt.
func (c *Core) Deliver(fn func()) {
	c.mask.Lock()
	c.deliver(fn)
}

// Kick delivers an interrupt with no handler. It only ends a halt.
func (c *Core) Kick() {
	c.Deliver(nil)
}

func (c *Core) deliver(fn func()) {
	defer c.mask.Unlock()
	c.raised.Add(1)
	if fn != nil {
		fn()
	}
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Disable masks interrupts. Calls do not nest: every Disable must be
// followed by exactly one Enable or EnableAndHalt.
func (c *Core) Disable() {
	c.mask.Lock()
}

// Enable unmasks interrupts.
func (c *Core) Enable() {
	c.mask.Unlock()
}

// EnableAndHalt unmasks interrupts and waits for an interrupt. The
// wake token is buffered, so an interrupt delivered between the unmask
// and the wait still ends the halt.
func (c *Core) EnableAndHalt() {
	c.halts.Add(1)
	c.mask.Unlock()
	<-c.wake
}

// WithoutInterrupts runs fn with interrupts masked.
func (c *Core) WithoutInterrupts(fn func()) {
	c.Disable()
	defer c.Enable()
	fn()
}

// Halts returns the number of times the core has halted.
func (c *Core) Halts() uint64 {
	return c.halts.Load()
}

// Raised returns the number of interrupts delivered.
func (c *Core) Raised() uint64 {
	return c.raised.Load()
}
