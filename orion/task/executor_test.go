package task

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnedTaskRunsOnDrain(t *testing.T) {
	e := NewExecutor()

	ran := false
	e.Spawn(func(s *Suspend) { ran = true })

	assert.False(t, ran, "spawn must not run the task")
	assert.Equal(t, 1, e.Len())

	assert.Equal(t, 1, e.RunUntilStalled())
	assert.True(t, ran)
	assert.Equal(t, 0, e.Len())
}

func TestYieldResumesOnNextDrain(t *testing.T) {
	e := NewExecutor()

	var steps []int
	e.Spawn(func(s *Suspend) {
		steps = append(steps, 1)
		s.Yield()
		steps = append(steps, 2)
		s.Yield()
		steps = append(steps, 3)
	})

	e.RunUntilStalled()
	assert.Equal(t, []int{1}, steps)

	e.RunUntilStalled()
	assert.Equal(t, []int{1, 2}, steps)

	e.RunUntilStalled()
	assert.Equal(t, []int{1, 2, 3}, steps)
	assert.Equal(t, 0, e.Len())
}

func TestAwaitBlocksUntilReady(t *testing.T) {
	e := NewExecutor()

	done := make(chan struct{})
	resumed := false

	e.Spawn(func(s *Suspend) {
		s.Await(done)
		resumed = true
	})

	e.RunUntilStalled()
	e.RunUntilStalled()
	assert.False(t, resumed)
	assert.Equal(t, 0, e.RunUntilStalled(), "a waiting task is not resumed")

	close(done)

	e.RunUntilStalled()
	assert.True(t, resumed)
	assert.Equal(t, 0, e.Len())
}

func TestTasksCooperateWithinOneDrain(t *testing.T) {
	e := NewExecutor()

	signal := make(chan struct{})
	var order []string

	e.Spawn(func(s *Suspend) {
		order = append(order, "consumer waits")
		s.Await(signal)
		order = append(order, "consumer resumed")
	})

	e.Spawn(func(s *Suspend) {
		order = append(order, "producer signals")
		close(signal)
	})

	e.RunUntilStalled()

	assert.Equal(t, []string{"consumer waits", "producer signals", "consumer resumed"}, order)
	assert.Equal(t, 0, e.Len())
}

func TestTaskSpawnedByTaskRunsInSameDrain(t *testing.T) {
	e := NewExecutor()

	childRan := false
	e.Spawn(func(s *Suspend) {
		e.Spawn(func(s *Suspend) { childRan = true })
	})

	e.RunUntilStalled()
	assert.True(t, childRan)
}

func TestRunUntilStalledWithoutTasks(t *testing.T) {
	e := NewExecutor()
	assert.Equal(t, 0, e.RunUntilStalled())
}

func TestCloseAbandonsTasks(t *testing.T) {
	e := NewExecutor()

	finished := false
	deferred := false

	e.Spawn(func(s *Suspend) {
		defer func() { deferred = true }()

		s.Yield()
		finished = true
	})

	e.RunUntilStalled()
	e.Close()

	assert.False(t, finished)
	assert.True(t, deferred, "abandoned tasks unwind")
	assert.Equal(t, 0, e.Len())
}

func TestTaskPanicPropagates(t *testing.T) {
	e := NewExecutor()
	e.Spawn(func(s *Suspend) { panic("boom") })

	require.PanicsWithValue(t, "boom", func() { e.RunUntilStalled() })
}

func TestSpawnBeforeLockingThread(t *testing.T) {
	e := NewExecutor()

	steps := 0
	e.Spawn(func(s *Suspend) {
		steps++
		s.Yield()
		steps++
		s.Yield()
	})

	// tasks start on their first resume, after the loop locked its thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer e.Close()

	e.RunUntilStalled()
	e.RunUntilStalled()
	assert.Equal(t, 2, steps)
}

func TestCloseUnstartedTask(t *testing.T) {
	e := NewExecutor()

	ran := false
	e.Spawn(func(s *Suspend) { ran = true })

	e.Close()

	assert.False(t, ran)
	assert.Equal(t, 0, e.Len())
}
