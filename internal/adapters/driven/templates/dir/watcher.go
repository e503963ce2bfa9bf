package dir

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/logger"
)

// Watch calls onChange with every template file created or modified in dir.
// Changes are debounced so an editor's burst of writes yields one reload.
// Blocks until ctx is cancelled; removals are logged and otherwise ignored.
func (l *Loader) Watch(ctx context.Context, dir string, onChange func(domain.Template)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return &domain.StorageError{Op: "watch", Path: dir, Err: err}
	}
	logger.Debug("watching template directory %s", dir)

	w := &watch{
		loader:   l,
		onChange: onChange,
		pending:  make(map[string]fsnotify.Op),
	}
	return w.run(ctx, fsw)
}

// watch holds the debounce state of one Watch call.
type watch struct {
	loader   *Loader
	onChange func(domain.Template)

	mu      sync.Mutex
	pending map[string]fsnotify.Op
}

func (w *watch) run(ctx context.Context, fsw *fsnotify.Watcher) error {
	ticker := time.NewTicker(w.loader.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.record(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("template watcher error: %v", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *watch) record(event fsnotify.Event) {
	if !w.loader.accepts(filepath.Base(event.Name)) {
		return
	}
	w.mu.Lock()
	w.pending[event.Name] |= event.Op
	w.mu.Unlock()
}

func (w *watch) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.mu.Unlock()

	paths := make([]string, 0, len(batch))
	for path := range batch {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		tpl, err := w.loader.LoadFile(path)
		if err != nil {
			// Removed, renamed away or mid-write; the next event retries.
			logger.Debug("skipping template %s: %v", path, err)
			continue
		}
		logger.Info("reloaded template %q from %s", tpl.Name, filepath.Base(path))
		w.onChange(tpl)
	}
}
