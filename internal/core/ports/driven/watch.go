package driven

import "context"

// FileWatcher reports changes to a single file.
type FileWatcher interface {
	// Watch emits a value whenever path is written, created, renamed or
	// removed. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
