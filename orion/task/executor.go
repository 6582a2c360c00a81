// Package task runs cooperative tasks on the thread of the frame loop.
//
// A task runs until it suspends by calling Suspend.Yield or Suspend.Await.
// Tasks never run in parallel, and they only ever run from within
// Executor.RunUntilStalled. That makes it safe for tasks to touch state
// that belongs to the frame loop without any locking.
package task

import (
	"iter"
	"log/slog"
)

// Task is a unit of cooperative work.
type Task func(s *Suspend)

// suspension describes why a task gave up control.
type suspension struct {
	// resume once this channel is ready
	wait <-chan struct{}

	// resume on the next call to RunUntilStalled
	nextDrain bool
}

// Suspend is handed to a running task and is the only way for it to give up control.
type Suspend struct {
	yield func(suspension) bool
}

// Yield suspends the task until the next call to RunUntilStalled.
func (s *Suspend) Yield() {
	s.suspend(suspension{nextDrain: true})
}

// Await suspends the task until ch is ready, that is, until ch is closed
// or a value can be received from it. A received value is discarded.
func (s *Suspend) Await(ch <-chan struct{}) {
	if ready(ch) {
		return
	}

	s.suspend(suspension{wait: ch})
}

func (s *Suspend) suspend(susp suspension) {
	if !s.yield(susp) {
		// the executor was closed, unwind the task
		panic(errAbandoned)
	}
}

type abandoned struct{}

var errAbandoned = abandoned{}

type state struct {
	task Task

	// created on the first resume, so that the coroutine is bound to the
	// thread state of the loop that drives it
	next func() (suspension, bool)
	stop func()

	susp suspension

	// true until the task was resumed for the first time
	fresh bool
}

func (st *state) runnable(drain uint64, parkedIn map[*state]uint64) bool {
	if st.fresh {
		return true
	}

	if st.susp.nextDrain {
		return parkedIn[st] < drain
	}

	return ready(st.susp.wait)
}

// Executor is a single threaded queue of cooperative tasks.
// It must only be used from one goroutine.
type Executor struct {
	tasks []*state

	// drain counter, incremented on every call to RunUntilStalled
	drain    uint64
	parkedIn map[*state]uint64
}

func NewExecutor() *Executor {
	return &Executor{parkedIn: map[*state]uint64{}}
}

// Spawn queues a task. The task starts on the next call to RunUntilStalled, or
// later in the current one if spawned by a running task.
func (e *Executor) Spawn(task Task) {
	e.tasks = append(e.tasks, &state{task: task, fresh: true})
}

func (st *state) start() {
	task := st.task
	st.task = nil

	seq := func(yield func(suspension) bool) {
		defer func() {
			if r := recover(); r != nil && r != errAbandoned {
				panic(r)
			}
		}()

		task(&Suspend{yield: yield})
	}

	st.next, st.stop = iter.Pull(iter.Seq[suspension](seq))
}

// Len returns the number of tasks that did not yet complete.
func (e *Executor) Len() int {
	return len(e.tasks)
}

// RunUntilStalled resumes runnable tasks until none of them can make progress.
// It never blocks. Tasks that yielded are resumed on the next call at the
// earliest. Returns the number of times a task was resumed.
func (e *Executor) RunUntilStalled() int {
	e.drain++

	var resumed int

	for {
		progress := false

		// tasks spawned while running are picked up in the next round
		tasks := e.tasks

		for _, st := range tasks {
			if !st.runnable(e.drain, e.parkedIn) {
				continue
			}

			progress = true
			resumed++

			if st.fresh {
				st.fresh = false
				st.start()
			}

			susp, ok := st.next()
			if !ok {
				e.remove(st)
				continue
			}

			st.susp = susp

			if susp.nextDrain {
				e.parkedIn[st] = e.drain
			}
		}

		if !progress {
			break
		}
	}

	return resumed
}

// Close abandons all tasks that did not complete yet.
func (e *Executor) Close() {
	tasks := e.tasks
	e.tasks = nil

	if len(tasks) > 0 {
		slog.Debug("Abandon unfinished tasks", slog.Int("count", len(tasks)))
	}

	for _, st := range tasks {
		delete(e.parkedIn, st)

		// never started, nothing to unwind
		if st.stop != nil {
			st.stop()
		}
	}
}

func (e *Executor) remove(st *state) {
	delete(e.parkedIn, st)

	for idx, other := range e.tasks {
		if other == st {
			e.tasks = append(e.tasks[:idx:idx], e.tasks[idx+1:]...)
			return
		}
	}
}

func ready(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
