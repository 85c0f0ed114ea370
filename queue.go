package taskexec

import "fmt"

// DefaultQueueCapacity is the capacity of each priority ring.
const DefaultQueueCapacity = 100

// Priority selects the ring a task id is queued on.
type Priority uint8

const (
	// High is for tasks driven by interrupts and for every wake.
	High Priority = iota
	// Low is for background work that tolerates starvation.
	Low
)

func (p Priority) String() string {
	switch p {
	case High:
		return "High"
	case Low:
		return "Low"
	default:
		return "Unknown"
	}
}

// TaskQueue holds the ids of tasks ready to run. It stores ids only so
// interrupt handlers can push without touching the task table.
type TaskQueue struct {
	high *ring[TaskID]
	low  *ring[TaskID]
}

// NewTaskQueue returns a queue with two rings of the given capacity.
func NewTaskQueue(capacity int) *TaskQueue {
	return &TaskQueue{
		high: newRing[TaskID](capacity),
		low:  newRing[TaskID](capacity),
	}
}

func (q *TaskQueue) pick(p Priority) *ring[TaskID] {
	switch p {
	case High:
		return q.high
	case Low:
		return q.low
	default:
		panic(fmt.Sprintf("taskexec: invalid priority %d", p))
	}
}

// Push enqueues id on the ring selected by p. It never blocks and
// returns an error wrapping ErrQueueFull if that ring is at capacity.
// It is safe to call from interrupt handlers and from several
// producers at once.
func (q *TaskQueue) Push(id TaskID, p Priority) error {
	if !q.pick(p).push(id) {
		return fmt.Errorf("push %v (%v): %w", id, p, ErrQueueFull)
	}
	return nil
}

// Pop removes the next ready id. The High ring is drained completely
// before the Low ring is consulted.
func (q *TaskQueue) Pop() (TaskID, bool) {
	if id, ok := q.high.pop(); ok {
		return id, true
	}
	return q.low.pop()
}

// IsEmpty reports whether both rings are empty.
func (q *TaskQueue) IsEmpty() bool {
	return q.high.empty() && q.low.empty()
}

// Len returns the number of ids queued at priority p.
func (q *TaskQueue) Len(p Priority) int {
	return q.pick(p).len()
}

// Capacity returns the capacity of each ring.
func (q *TaskQueue) Capacity() int {
	return q.high.capacity()
}
