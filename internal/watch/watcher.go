// Package watch re-runs a callback whenever snapshot files in a folder change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hashtrend/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Stats tracks watcher activity.
type Stats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	Runs          int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
	LastEventType string
}

// Watcher watches one folder, non-recursively, for files ending in suffix.
// Bursts of events are collapsed: the callback runs once after no matching
// event has arrived for the debounce duration.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	suffix      string
	debounceDur time.Duration
	pending     map[string]time.Time
	onChange    func(ctx context.Context) error
	stats       Stats
}

// New creates a Watcher. onChange is called once on Run and after every settled burst.
func New(dir, suffix string, debounce time.Duration, onChange func(ctx context.Context) error) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch callback is required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		watcher:     fw,
		dir:         dir,
		suffix:      suffix,
		debounceDur: debounce,
		pending:     make(map[string]time.Time),
		onChange:    onChange,
	}, nil
}

// Run blocks until ctx is cancelled or the event stream closes. The
// underlying fsnotify watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	log := logging.Get(logging.CategoryWatch)
	defer func() {
		if err := w.watcher.Close(); err != nil {
			log.Error("Failed to close watcher", zap.Error(err))
		}
	}()

	log.Info("Watching folder", zap.String("dir", w.dir), zap.String("suffix", w.suffix))
	w.trigger(ctx)

	tick := w.debounceDur / 2
	if tick <= 0 || tick > 100*time.Millisecond {
		tick = 100 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Watch stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("Watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			if w.settled() {
				w.trigger(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, w.suffix) {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return
	}

	logging.Get(logging.CategoryWatch).Debug("Snapshot changed",
		zap.String("event", eventType), zap.String("path", event.Name))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType
	switch eventType {
	case "create":
		w.stats.FilesCreated++
	case "modify":
		w.stats.FilesModified++
	case "delete", "rename":
		w.stats.FilesDeleted++
	}
	w.pending[event.Name] = time.Now()
}

// settled reports whether there are pending events and all of them are older
// than the debounce window; if so the pending set is cleared.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return false
	}
	now := time.Now()
	for _, at := range w.pending {
		if now.Sub(at) < w.debounceDur {
			return false
		}
	}
	clear(w.pending)
	return true
}

func (w *Watcher) trigger(ctx context.Context) {
	err := w.onChange(ctx)

	w.mu.Lock()
	w.stats.Runs++
	if err != nil {
		w.stats.Errors++
	}
	w.mu.Unlock()

	if err != nil {
		logging.Get(logging.CategoryWatch).Warn("Re-run failed", zap.Error(err))
	}
}

// Stats returns a copy of the current counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}
