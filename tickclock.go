package taskexec

import (
	"sync"
	"sync/atomic"
	"time"
)

// TickClock is the timer interrupt source. Its handler counts ticks
// and notifies a Signal; Start drives it from a hosted ticker.
type TickClock struct {
	core   *Core
	vector Vector
	count  atomic.Int64
	signal Signal
	stop   chan struct{}
	once   sync.Once
}

// NewTickClock installs the clock's handler on vector v of core. It
// does not start ticking.
func NewTickClock(core *Core, v Vector) *TickClock {
	c := &TickClock{
		core:   core,
		vector: v,
		stop:   make(chan struct{}),
	}
	core.Handle(v, c.interrupt)
	return c
}

func (c *TickClock) interrupt() {
	c.count.Add(1)
	c.signal.Notify()
}

// Start raises the timer interrupt at the given interval until Stop.
func (c *TickClock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.core.Raise(c.vector)
			case <-c.stop:
				return
			}
		}
	}()
}

// Tick raises one timer interrupt synchronously.
func (c *TickClock) Tick() {
	c.core.Raise(c.vector)
}

// Stop ends the ticks started by Start. It is safe to call more than
// once.
func (c *TickClock) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// Count returns the number of ticks delivered so far.
func (c *TickClock) Count() int64 {
	return c.count.Load()
}

// Signal returns the signal notified on every tick.
func (c *TickClock) Signal() *Signal {
	return &c.signal
}
