package driving

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// ReloadFunc receives the outcome of a reload: either a configuration with
// its validation report, or the load error.
type ReloadFunc func(cfg *domain.SiteConfig, report *domain.Report, err error)

// WatchService reloads the site configuration when its file changes.
type WatchService interface {
	// Watch blocks until ctx is cancelled, calling fn after every reload.
	Watch(ctx context.Context, fn ReloadFunc) error
}
