package driven

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// SiteSource produces the site configuration.
// Load is deterministic: loading the same source twice yields
// structurally identical values. Every failure is a *domain.ConfigLoadError.
type SiteSource interface {
	// Load parses the configuration.
	Load(ctx context.Context) (*domain.SiteConfig, error)

	// Name identifies the source in messages ("builtin" or the file path).
	Name() string
}

// SiteEncoder serialises a site configuration in one format.
type SiteEncoder interface {
	// Format returns the format produced by Encode.
	Format() domain.ExportFormat

	// Encode writes cfg.
	Encode(cfg *domain.SiteConfig) ([]byte, error)
}
