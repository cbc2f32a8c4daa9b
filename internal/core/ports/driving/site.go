package driving

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// SiteService serves the loaded site configuration.
type SiteService interface {
	// Get returns the configuration, loading it on first use.
	// The returned value is a private copy.
	Get(ctx context.Context) (*domain.SiteConfig, error)

	// Reload discards the cached configuration and loads it again.
	Reload(ctx context.Context) (*domain.SiteConfig, error)

	// Source names the configuration source.
	Source() string
}

// ValidationService checks a configuration against the schema and
// consistency rules.
type ValidationService interface {
	// Validate returns the findings for cfg. The error is non-nil only when
	// validation itself could not run (e.g. the content tree is unreadable).
	Validate(ctx context.Context, cfg *domain.SiteConfig, opts domain.ValidateOptions) (*domain.Report, error)
}

// ExportService serialises the configuration for the external build tool.
type ExportService interface {
	// Export encodes the current configuration in format.
	Export(ctx context.Context, format domain.ExportFormat) ([]byte, error)
}
