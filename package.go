// Package taskexec provides the cooperative task executor of a
// single-core kernel. Tasks are suspendable units of work that are
// resumed until they complete; interrupt handlers wake sleeping tasks
// by pushing their ids onto a lock-free ready queue, and the executor
// halts the core when there is nothing left to run.
//
// Key components:
//
//   - Task: owns one Future and its TaskID. A Future is polled with a
//     Context and answers Pending or Ready.
//
//   - TaskQueue: two bounded lock-free rings (High and Low priority)
//     carrying TaskID values. It is the only structure shared between
//     interrupt handlers and the executor loop.
//
//   - Waker: bound to one TaskID and the TaskQueue. Event sources keep
//     a clone and call Wake to re-enqueue the task at High priority.
//
//   - Executor: owns the task table and the waker cache, drains the
//     queue and halts the core through the Interrupts interface when
//     idle.
//
//   - Coroutine: adapts a straight-line function into a Future so a
//     task can suspend in the middle of its body.
//
//   - Event sources: Signal, Stream, TickClock and Timers deliver
//     interrupt-driven events to tasks.
//
//   - Synchronization primitives: Mutex, WaitGroup, Group and
//     SingleFlight for coroutines running on the same executor.
//
// Core emulates the interrupt controller of the target core so the
// executor can be run and tested on a hosted Go runtime.
package taskexec
