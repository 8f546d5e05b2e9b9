package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor emits on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a catalog file into a Provider when it changes on disk.
// A file that fails to parse is logged and the previous catalog is kept.
type Watcher struct {
	path     string
	provider *Provider
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the directory containing path. Watching the directory
// rather than the file survives editors that save by rename.
func NewWatcher(path string, provider *Provider) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("resolve content path: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch content dir: %w", err)
	}
	return &Watcher{path: abs, provider: provider, debounce: DefaultDebounce, watcher: fw}, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("close content watcher", "error", err)
		}
	}()

	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			fire = time.After(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("content watcher error", "error", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cat, err := LoadFile(w.path)
	if err != nil {
		slog.Warn("content reload failed, keeping previous catalog", "path", w.path, "error", err)
		return
	}
	w.provider.Replace(cat)
	slog.Info("content reloaded", "path", w.path, "version", w.provider.Version())
}
