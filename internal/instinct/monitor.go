package instinct

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// ownWriteGrace is how close to the store's own last save an event must be
// to be attributed to the store itself rather than an external writer.
const ownWriteGrace = 500 * time.Millisecond

// StoreEvent reports a modification of the store file by another process.
type StoreEvent struct {
	// Path is the store file path that changed.
	Path string

	// Op describes the filesystem operation (write, create, rename).
	Op string

	// Timestamp is when the event was detected.
	Timestamp time.Time
}

// Monitor watches the store file for external modifications.
//
// The store's full-rewrite contract means concurrent writers from other
// processes race last-writer-wins. The monitor cannot prevent that, but it
// turns the silent data loss into visible events: any write to the store
// file that does not line up with this process's own saves is reported on
// the Events channel.
//
// The watch is placed on the file's directory rather than the file itself
// because atomic saves replace the file via rename, which would detach a
// file-level watch.
type Monitor struct {
	store   *Store
	watcher *fsnotify.Watcher
	events  chan StoreEvent
	stop    chan struct{}
	logger  *zap.Logger
}

// NewMonitor creates a monitor for the given store.
func NewMonitor(store *Store, logger *zap.Logger) (*Monitor, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	return &Monitor{
		store:   store,
		watcher: watcher,
		events:  make(chan StoreEvent, 10),
		stop:    make(chan struct{}),
		logger:  logger,
	}, nil
}

// Start begins watching for external store modifications. Events are sent
// to the Events() channel until Stop() is called or ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	// The directory must exist before it can be watched; the store itself
	// only creates it on first save.
	dir := filepath.Dir(m.store.Path())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	if err := m.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching store directory: %w", err)
	}

	go m.processEvents(ctx)

	return nil
}

// Stop stops the monitor and releases the watcher.
func (m *Monitor) Stop() {
	select {
	case <-m.stop:
		// Already stopped
	default:
		close(m.stop)
		_ = m.watcher.Close()
	}
}

// Events returns the channel for receiving external modification events.
func (m *Monitor) Events() <-chan StoreEvent {
	return m.events
}

// processEvents filters filesystem events down to external writes of the
// store file and forwards them.
func (m *Monitor) processEvents(ctx context.Context) {
	storePath := filepath.Clean(m.store.Path())

	for {
		select {
		case <-m.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != storePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Saves by this process also show up here; attribute events
			// near our own last write to ourselves and drop them.
			if time.Since(m.store.LastWrite()) < ownWriteGrace {
				continue
			}

			ev := StoreEvent{
				Path:      m.store.Path(),
				Op:        event.Op.String(),
				Timestamp: time.Now(),
			}
			select {
			case m.events <- ev:
			default:
				// Channel full, drop the event
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("store watcher error", zap.Error(err))
		}
	}
}
