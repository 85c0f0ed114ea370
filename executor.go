package taskexec

import (
	"context"
	"fmt"
	"runtime/trace"
)

const (
	execTraceTaskType   = "taskexec-run"
	execTraceRegionType = "taskexec-poll"
	execTraceCategory   = "taskexec"
)

// Stats counts executor activity since creation.
type Stats struct {
	Spawned   uint64 // tasks inserted by Spawn
	Completed uint64 // tasks that returned Ready
	Polls     uint64 // individual polls
	Stale     uint64 // dequeued ids with no live task
	Halts     uint64 // times the idle path halted the core
}

// Executor drives spawned tasks to completion. The task table and the
// waker cache are owned by the goroutine running the executor; only
// the TaskQueue is shared with interrupt handlers.
type Executor struct {
	noCopy noCopy
	ctx    context.Context
	irq    Interrupts
	queue  *TaskQueue
	tasks  map[TaskID]*Task
	wakers map[TaskID]*Waker
	stats  Stats
}

// NewExecutor returns an executor with the default queue capacity.
func NewExecutor(irq Interrupts) *Executor {
	return NewExecutorConfig(irq, DefaultConfig())
}

// NewExecutorConfig returns an executor sized by cfg.
func NewExecutorConfig(irq Interrupts, cfg Config) *Executor {
	if irq == nil {
		panic("taskexec: nil interrupt controller")
	}
	return &Executor{
		ctx:    context.Background(),
		irq:    irq,
		queue:  NewTaskQueue(cfg.QueueCapacity),
		tasks:  make(map[TaskID]*Task),
		wakers: make(map[TaskID]*Waker),
	}
}

// Spawn inserts task and queues it at priority p. A duplicate id or a
// full queue is fatal. Spawn must be called from the goroutine that
// runs the executor, which includes tasks being polled by it.
func (e *Executor) Spawn(task *Task, p Priority) {
	id := task.ID()
	if _, dup := e.tasks[id]; dup {
		fatal(fmt.Errorf("taskexec: spawn %v: %w", id, ErrDuplicateTaskID))
	}
	e.tasks[id] = task
	e.stats.Spawned++
	if err := e.queue.Push(id, p); err != nil {
		fatal(fmt.Errorf("taskexec: spawn: %w", err))
	}
	e.logf("SPAWN %v %v", id, p)
}

// RunReadyTasks polls queued tasks until the queue is empty, including
// tasks woken while the pass is running.
func (e *Executor) RunReadyTasks() {
	for {
		id, ok := e.queue.Pop()
		if !ok {
			return
		}

		task, ok := e.tasks[id]
		if !ok {
			// completed before a late wake was delivered
			e.stats.Stale++
			e.logf("STALE %v", id)
			continue
		}

		waker, ok := e.wakers[id]
		if !ok {
			waker = newWaker(id, e.queue)
		}

		if e.poll(task, waker) == Ready {
			delete(e.tasks, id)
			delete(e.wakers, id)
			e.stats.Completed++
			e.logf("DONE %v", id)
			continue
		}

		e.wakers[id] = waker
	}
}

func (e *Executor) poll(task *Task, waker *Waker) Poll {
	region := trace.StartRegion(e.ctx, execTraceRegionType)
	defer region.End()

	e.stats.Polls++
	return task.poll(NewContext(waker))
}

// Run alternates between draining ready tasks and halting the core
// while idle. With a context that is never done it does not return.
// Otherwise it returns ctx.Err() once ctx is done and the core has
// woken; tasks still live at that point are released and dropped.
func (e *Executor) Run(ctx context.Context) error {
	var tracer *trace.Task

	prev := e.ctx
	e.ctx, tracer = trace.NewTask(ctx, execTraceTaskType)
	defer func() {
		tracer.End()
		e.ctx = prev
	}()

	if k, ok := e.irq.(kicker); ok {
		stop := context.AfterFunc(ctx, k.Kick)
		defer stop()
	}

	for {
		e.RunReadyTasks()
		if err := ctx.Err(); err != nil {
			e.releaseAll()
			return err
		}
		e.sleepIfIdle()
	}
}

// releaseAll drops every live task once the run loop has ended, so
// suspended coroutines do not outlive it.
func (e *Executor) releaseAll() {
	for id, task := range e.tasks {
		task.release()
		delete(e.tasks, id)
		delete(e.wakers, id)
		e.logf("RELEASE %v", id)
	}
}

// Queue returns the ready queue shared with wakers.
func (e *Executor) Queue() *TaskQueue {
	return e.queue
}

// Len returns the number of live tasks.
func (e *Executor) Len() int {
	return len(e.tasks)
}

// HasWaker reports whether a waker is cached for id.
func (e *Executor) HasWaker(id TaskID) bool {
	_, ok := e.wakers[id]
	return ok
}

// Stats returns a snapshot of the executor counters.
func (e *Executor) Stats() Stats {
	return e.stats
}

func (e *Executor) log(msg string) {
	if trace.IsEnabled() {
		trace.Log(e.ctx, execTraceCategory, msg)
	}
}

func (e *Executor) logf(format string, args ...any) {
	if trace.IsEnabled() {
		trace.Logf(e.ctx, execTraceCategory, format, args...)
	}
}
