package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the library when the backing catalog file changes.
// Editors often replace files with rename+create, so the watch is on the
// parent directory and events are filtered by file name. Writes are
// debounced so a burst of events triggers a single reload.
type Watcher struct {
	library  *Library
	path     string
	logger   *DebugLogger
	debounce time.Duration

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher for the given catalog file.
// A zero debounce defaults to 250ms.
func NewWatcher(library *Library, path string, debounce time.Duration, logger *DebugLogger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	if logger == nil {
		logger = NopLogger()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		library:  library,
		path:     path,
		logger:   logger,
		debounce: debounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}

	go w.watch()
	return w, nil
}

// watch monitors the catalog directory and triggers debounced reloads.
func (w *Watcher) watch() {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if err := w.library.Reload(context.Background()); err != nil {
				// Previous snapshot stays in service on a failed reload.
				w.logger.Log("catalog reload failed: %v", err)
			} else {
				w.logger.Log("catalog reloaded after file change: %s", w.path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Log("catalog watcher error: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
