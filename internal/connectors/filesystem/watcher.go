package filesystem

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher reports changes to a single file using fsnotify.
// It watches the parent directory so that editors which save by
// replacing the file are still observed.
type Watcher struct{}

// NewWatcher creates a file watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch emits a value for every create, write, rename or remove of path.
// The channel is closed when ctx is cancelled or the watcher fails.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !relevant(event, abs) {
					continue
				}
				logger.Debug("fsnotify: %s", event)
				// Coalesce: one pending notification is enough.
				select {
				case out <- struct{}{}:
				default:
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("File watcher error: %v", err)
			}
		}
	}()

	return out, nil
}

// relevant reports whether event touches the watched file with an
// operation that can change its content.
func relevant(event fsnotify.Event, abs string) bool {
	if filepath.Clean(event.Name) != abs {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
