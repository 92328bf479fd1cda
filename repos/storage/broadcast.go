package storage

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/quintafc/team-sync/pkg/log"
)

// EventDataUpdated is the only message type on the sync channel: every
// publication carries the full document.
const EventDataUpdated = "DATA_UPDATED"

// Broadcaster fans the latest full document out to every subscriber.
// Delivery is at-least-once, best-effort: a local publish on every save, a
// filesystem watch that picks up sibling instances' writes, and a
// reconciliation tick that re-announces any write still inside the freshness
// window. No ordering guarantee beyond what subscribers enforce themselves.
type Broadcaster struct {
	store        *Store
	pollInterval time.Duration
	freshness    time.Duration
	clock        func() time.Time

	mu        sync.Mutex
	listeners map[int]func(AppData)
	nextID    int
	running   bool

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewBroadcaster(store *Store, pollInterval, freshness time.Duration) *Broadcaster {
	return &Broadcaster{
		store:        store,
		pollInterval: pollInterval,
		freshness:    freshness,
		clock:        time.Now,
		listeners:    map[int]func(AppData){},
	}
}

// Start begins watching the store file and running the reconciliation tick.
// Non-blocking; Stop undoes it. A failed Start leaves the broadcaster stopped
// and can be retried.
func (b *Broadcaster) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	b.watcher = watcher

	// Watch the directory, not the file: renames replace the inode on every
	// save and a file watch would go stale after the first one.
	if err := watcher.Add(filepath.Dir(b.store.Path())); err != nil {
		log.Logger.Warn("watch on data dir failed, relying on the poll fallback", zap.Error(err))
	}

	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	b.running = true
	go b.run()

	return nil
}

// Stop halts the watch and the tick. Registered listeners stay registered.
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	b.mu.Unlock()

	close(b.stopCh)
	<-b.doneCh
	b.watcher.Close()
}

// AddListener subscribes a callback and returns a handle for removal.
func (b *Broadcaster) AddListener(fn func(AppData)) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners[b.nextID] = fn
	return b.nextID
}

func (b *Broadcaster) RemoveListener(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, id)
}

// Publish delivers the document to every subscriber. A panicking subscriber
// is isolated so it cannot break delivery to the rest.
func (b *Broadcaster) Publish(data AppData) {
	b.mu.Lock()
	fns := make([]func(AppData), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	log.Logger.Debug("publishing",
		zap.String("type", EventDataUpdated),
		zap.String("lastModified", data.LastModified))

	for _, fn := range fns {
		b.notify(fn, data)
	}
}

func (b *Broadcaster) notify(fn func(AppData), data AppData) {
	defer func() {
		if r := recover(); r != nil {
			log.Logger.Error("listener panicked", zap.Any("panic", r))
		}
	}()
	fn(data.Clone())
}

// ForceSync reloads the store and republishes its contents on demand.
func (b *Broadcaster) ForceSync() {
	if data, ok := b.store.Load(); ok {
		b.Publish(data)
	}
}

func (b *Broadcaster) run() {
	defer close(b.doneCh)

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(b.store.Path()) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if data, ok := b.store.Load(); ok {
				b.Publish(data)
			}

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			log.Logger.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			// Defensive fallback for missed watch events: re-announce
			// anything written inside the freshness window.
			data, ok := b.store.Load()
			if !ok {
				continue
			}
			modified, err := time.Parse(time.RFC3339Nano, data.LastModified)
			if err != nil {
				continue
			}
			if b.clock().Sub(modified) < b.freshness {
				b.Publish(data)
			}

		case <-b.stopCh:
			return
		}
	}
}
