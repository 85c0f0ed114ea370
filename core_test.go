package taskexec

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoreRaiseWaitsForEnable(t *testing.T) {
	r := require.New(t)

	core := NewCore()
	var fired atomic.Bool
	core.Handle(40, func() { fired.Store(true) })

	core.Disable()
	go core.Raise(40)

	time.Sleep(10 * time.Millisecond)
	r.False(fired.Load())

	core.Enable()
	r.Eventually(fired.Load, time.Second, time.Millisecond)
	r.Eventually(func() bool { return core.Raised() == 1 }, time.Second, time.Millisecond)
}

func TestCoreHaltEndsOnMaskedInterrupt(t *testing.T) {
	r := require.New(t)

	core := NewCore()
	var fired atomic.Bool
	core.Handle(41, func() { fired.Store(true) })

	// the interrupt is raised while masked and can only be delivered
	// once EnableAndHalt unmasks; the halt must still end
	core.Disable()
	go core.Raise(41)
	time.Sleep(5 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		core.EnableAndHalt()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		r.Fail("halt missed an interrupt")
	}
	r.True(fired.Load())
	r.Equal(uint64(1), core.Halts())
}

func TestCoreKick(t *testing.T) {
	core := NewCore()
	core.Disable()

	done := make(chan struct{})
	go func() {
		core.EnableAndHalt()
		close(done)
	}()
	core.Kick()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "kick did not end the halt")
	}
}

func TestCoreWithoutInterrupts(t *testing.T) {
	r := require.New(t)

	core := NewCore()
	var fired atomic.Bool
	core.Handle(42, func() { fired.Store(true) })

	core.WithoutInterrupts(func() {
		go core.Raise(42)
		time.Sleep(5 * time.Millisecond)
		r.False(fired.Load())
	})
	r.Eventually(fired.Load, time.Second, time.Millisecond)
}
