package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrigger_CoalescesBurst(t *testing.T) {
	var runs int32
	task := NewTask(30*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })

	for i := 0; i < 10; i++ {
		task.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs), "a burst of triggers should produce one run")
}

func TestStop_DiscardsPendingRun(t *testing.T) {
	var runs int32
	task := NewTask(30*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })

	task.Trigger()
	task.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs), "Stop should discard the pending run")
	assert.False(t, task.Pending())
}

func TestFlush_RunsOnlyWhenPending(t *testing.T) {
	var runs int32
	task := NewTask(time.Hour, func() { atomic.AddInt32(&runs, 1) })

	task.Flush()
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs), "Flush without a pending run is a no-op")

	task.Trigger()
	task.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	assert.False(t, task.Pending())
}

func TestTrigger_Reschedules(t *testing.T) {
	var runs int32
	task := NewTask(40*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })

	task.Trigger()
	time.Sleep(25 * time.Millisecond)
	task.Trigger()
	time.Sleep(25 * time.Millisecond)

	// First schedule would have fired by now if the second trigger had not
	// replaced it.
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}
