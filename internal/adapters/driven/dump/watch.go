package dump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/rustyrag/rustyrag/internal/logger"
)

// IngestFunc consumes one dump file from the drop directory.
type IngestFunc func(ctx context.Context, path string) error

// Watcher ingests dump files as they appear in a drop directory.
type Watcher struct {
	dir    string
	ingest IngestFunc
}

// NewWatcher creates a watcher over the given directory.
func NewWatcher(dir string, ingest IngestFunc) *Watcher {
	return &Watcher{dir: dir, ingest: ingest}
}

// Run watches until the context is cancelled. Files already present when
// the watch starts are not replayed; only newly arriving *.csv files are
// ingested. Per-file failures are logged and the watch continues.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.Info("Watching %s for new dumps", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, arrived := w.dumpArrived(event)
			if !arrived {
				continue
			}
			logger.Info("New dump: %s", path)
			if err := w.ingest(ctx, path); err != nil {
				logger.Error("Ingest %s failed: %v", path, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// dumpArrived reports whether the event announces a new dump file. Only
// regular *.csv files count; directories and other extensions are skipped.
func (w *Watcher) dumpArrived(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}
