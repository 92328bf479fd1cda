package storage

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestLifecycle_StopAndStartAreIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	b := NewBroadcaster(store, time.Hour, time.Hour)

	// A broadcaster that never ran, or failed to start, must not panic here.
	assert.NotPanics(t, func() { b.Stop() })

	require.NoError(t, b.Start())
	require.NoError(t, b.Start())

	b.Stop()
	assert.NotPanics(t, func() { b.Stop() })
}

func TestPublish_FanOut(t *testing.T) {
	store := NewStore(t.TempDir())
	b := NewBroadcaster(store, time.Hour, time.Hour)

	var first, second int32
	b.AddListener(func(AppData) { atomic.AddInt32(&first, 1) })
	id := b.AddListener(func(AppData) { atomic.AddInt32(&second, 1) })

	b.Publish(sampleData())
	assert.Equal(t, int32(1), atomic.LoadInt32(&first))
	assert.Equal(t, int32(1), atomic.LoadInt32(&second))

	b.RemoveListener(id)
	b.Publish(sampleData())
	assert.Equal(t, int32(2), atomic.LoadInt32(&first))
	assert.Equal(t, int32(1), atomic.LoadInt32(&second), "removed listener should not be called")
}

func TestPublish_IsolatesFailingListener(t *testing.T) {
	store := NewStore(t.TempDir())
	b := NewBroadcaster(store, time.Hour, time.Hour)

	var delivered int32
	b.AddListener(func(AppData) { panic("boom") })
	b.AddListener(func(AppData) { atomic.AddInt32(&delivered, 1) })

	assert.NotPanics(t, func() { b.Publish(sampleData()) })
	assert.Equal(t, int32(1), atomic.LoadInt32(&delivered), "one failing subscriber must not break delivery")
}

func TestForceSync_RepublishesStoredDocument(t *testing.T) {
	store := NewStore(t.TempDir())
	b := NewBroadcaster(store, time.Hour, time.Hour)

	var got atomic.Value
	b.AddListener(func(d AppData) { got.Store(d) })

	// Nothing stored yet: no publish.
	b.ForceSync()
	assert.Nil(t, got.Load())

	saved, err := store.Save(sampleData())
	require.NoError(t, err)

	b.ForceSync()
	require.NotNil(t, got.Load())
	assert.Equal(t, saved.LastModified, got.Load().(AppData).LastModified)
}

func TestWatch_DeliversSiblingWrites(t *testing.T) {
	dir := t.TempDir()
	receiver := NewBroadcaster(NewStore(dir), time.Hour, time.Hour)
	require.NoError(t, receiver.Start())
	defer receiver.Stop()

	var seen atomic.Value
	receiver.AddListener(func(d AppData) { seen.Store(d) })

	// A second store in the same data dir stands in for another instance.
	sibling := NewStore(dir)
	saved, err := sibling.Save(sampleData())
	require.NoError(t, err)

	waitFor(t, func() bool { return seen.Load() != nil }, "watch should observe the sibling's write")
	assert.Equal(t, saved.LastModified, seen.Load().(AppData).LastModified)
}

func TestPoll_ReannouncesFreshWrite(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	_, err := store.Save(sampleData())
	require.NoError(t, err)

	// No watch on purpose: point the broadcaster at a pre-written store and
	// let only the tick run.
	b := NewBroadcaster(store, 20*time.Millisecond, 5*time.Second)
	var count int32
	b.AddListener(func(AppData) { atomic.AddInt32(&count, 1) })
	require.NoError(t, b.Start())
	defer b.Stop()

	waitFor(t, func() bool { return atomic.LoadInt32(&count) >= 1 }, "tick should re-announce a write inside the freshness window")
}

func TestPoll_IgnoresStaleWrite(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Minute)
	store := NewStoreWithClock(dir, func() time.Time { return old })
	_, err := store.Save(sampleData())
	require.NoError(t, err)

	b := NewBroadcaster(NewStore(dir), 20*time.Millisecond, 5*time.Second)
	var count int32
	b.AddListener(func(AppData) { atomic.AddInt32(&count, 1) })
	require.NoError(t, b.Start())
	defer b.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&count), "a write older than the freshness window stays quiet")
}
