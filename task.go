package taskexec

import "fmt"

// Poll is the outcome of one resumption of a Future.
type Poll uint8

const (
	// Pending means the future cannot make progress yet. It must have
	// arranged for the waker of the current Context to be invoked once
	// it can.
	Pending Poll = iota
	// Ready means the future has completed. It is never polled again.
	Ready
)

func (p Poll) String() string {
	switch p {
	case Pending:
		return "Pending"
	case Ready:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Future is a resumable unit of work that yields no result.
type Future interface {
	Poll(cx *Context) Poll
}

// FutureFunc adapts an ordinary function to the Future interface.
type FutureFunc func(cx *Context) Poll

// Poll calls f(cx).
func (f FutureFunc) Poll(cx *Context) Poll {
	return f(cx)
}

// ReadyFunc returns a Future that completes on its first poll after
// running fn.
func ReadyFunc(fn func()) Future {
	return FutureFunc(func(*Context) Poll {
		fn()
		return Ready
	})
}

// Task owns one Future and the id it is scheduled under. Once spawned
// it belongs to the executor's task table.
type Task struct {
	id     TaskID
	future Future
	done   bool
}

// NewTask wraps f in a Task with a fresh TaskID.
func NewTask(f Future) *Task {
	return newTaskWithID(NewTaskID(), f)
}

func newTaskWithID(id TaskID, f Future) *Task {
	if f == nil {
		panic("taskexec: nil future")
	}
	return &Task{id: id, future: f}
}

// ID returns the task's id.
func (t *Task) ID() TaskID {
	return t.id
}

// Done reports whether the task has completed.
func (t *Task) Done() bool {
	return t.done
}

func (t *Task) poll(cx *Context) Poll {
	if t.done {
		panic(fmt.Sprintf("taskexec: %v polled after completion", t.id))
	}
	p := t.future.Poll(cx)
	if p == Ready {
		t.done = true
	}
	return p
}

// releaser is implemented by futures that hold resources beyond their
// own memory, such as a coroutine stack.
type releaser interface {
	release()
}

// release drops a task that will never be polled again.
func (t *Task) release() {
	if r, ok := t.future.(releaser); ok {
		r.release()
	}
	t.done = true
}
