package schema

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a fixed set of document files and reports writes to them.
// Directories are watched rather than the files themselves so that
// editor-style replace-on-save (rename over the original) is still seen.
type Watcher struct {
	paths  map[string]bool
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher for the given files.
func NewWatcher(paths []string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		set[abs] = true
	}
	return &Watcher{
		paths:      set,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}, nil
}

// Watch blocks until the context is cancelled, invoking callback with the
// path of each watched file that changes. Rapid event bursts for the same
// file are debounced.
func (w *Watcher) Watch(ctx context.Context, callback func(path string)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for p := range w.paths {
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return err
		}
	}

	w.logger.Info("Watching for changes", "files", len(w.paths))
	if w.Ready != nil {
		close(w.Ready)
	}

	const debounceDuration = 100 * time.Millisecond
	timers := map[string]*time.Timer{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.paths[abs] {
				continue
			}
			if t, ok := timers[abs]; ok {
				t.Stop()
			}
			p := abs
			timers[abs] = time.AfterFunc(debounceDuration, func() {
				callback(p)
			})
		}
	}
}
