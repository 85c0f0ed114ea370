package taskexec

import "errors"

var (
	// ErrQueueFull is returned when a ring of the TaskQueue is at
	// capacity. The executor treats it as fatal.
	ErrQueueFull = errors.New("task queue full")

	// ErrDuplicateTaskID is the cause of the panic raised when a task
	// is spawned under an id that is already live.
	ErrDuplicateTaskID = errors.New("duplicate task id")

	// ErrStreamFull is returned by Stream.Push when the stream buffer
	// is at capacity and the value was dropped.
	ErrStreamFull = errors.New("stream full")
)

// fatal stops the system. The executor has no caller above it to hand
// the error to.
func fatal(err error) {
	panic(err)
}
