package taskexec

import (
	"strconv"
	"sync/atomic"
)

// TaskID uniquely identifies a task for the lifetime of the process.
type TaskID uint64

var nextTaskID atomic.Uint64

// NewTaskID returns a fresh id from the process-wide counter. It is
// safe to call from several goroutines.
func NewTaskID() TaskID {
	return TaskID(nextTaskID.Add(1))
}

func (id TaskID) String() string {
	return "task#" + strconv.FormatUint(uint64(id), 10)
}
