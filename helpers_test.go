package taskexec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// probe is a Future that records each poll in log and stays Pending
// for the given number of polls.
type probe struct {
	name     string
	log      *[]string
	pendings int
	selfWake bool
	wakers   []*Waker
}

func (p *probe) Poll(cx *Context) Poll {
	*p.log = append(*p.log, p.name)
	p.wakers = append(p.wakers, cx.Waker())
	if p.pendings > 0 {
		p.pendings--
		if p.selfWake {
			cx.Waker().Wake()
		}
		return Pending
	}
	return Ready
}

// panicErr runs fn and returns the error it panicked with.
func panicErr(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		p := recover()
		require.NotNil(t, p, "expected panic")
		e, ok := p.(error)
		require.True(t, ok, "panic value %v is not an error", p)
		err = e
	}()
	fn()
	return nil
}

func newTestExecutor(capacity int) (*Executor, *Core) {
	core := NewCore()
	cfg := DefaultConfig()
	cfg.QueueCapacity = capacity
	return NewExecutorConfig(core, cfg), core
}
