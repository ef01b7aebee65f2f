// Package watch reports debounced changes to a single file using fsnotify.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period required before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors one file. The parent directory is watched so that
// editors which save by rename-and-replace are still observed.
type Watcher struct {
	Path    string
	Changes <-chan string // Read-only external channel; receives Path

	debounce time.Duration
	changes  chan string // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// New creates a watcher for path. Call Start to begin delivering changes.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan string, 1)
	return &Watcher{
		Path:     abs,
		Changes:  ch,
		debounce: debounce,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching. If Start fails the watcher is released and must
// not be stopped.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watch: add %s: %w", w.Path, err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				w.emit()
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// emit coalesces with an undelivered change instead of blocking.
func (w *Watcher) emit() {
	select {
	case w.changes <- w.Path:
	default:
	}
}
