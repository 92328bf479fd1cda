// Package debounce provides the trailing-edge debounced task used to coalesce
// rapid successive edits into a single store write.
package debounce

import (
	"sync"
	"time"
)

// Task runs fn once per burst of Trigger calls, after the configured delay has
// passed with no further trigger. A new trigger cancels and reschedules a
// pending run.
type Task struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func NewTask(delay time.Duration, fn func()) *Task {
	return &Task{delay: delay, fn: fn}
}

// Trigger schedules fn after the delay, replacing any pending schedule.
func (t *Task) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		t.fn()
	})
}

// Stop discards any pending run. A last trigger inside the delay window is
// lost; callers that cannot accept that should Flush first.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Flush runs fn immediately iff a run is pending.
func (t *Task) Flush() {
	t.mu.Lock()
	pending := t.timer != nil
	if pending {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
	if pending {
		t.fn()
	}
}

// Pending reports whether a run is scheduled.
func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}
