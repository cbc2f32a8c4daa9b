package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService serialises the configuration with the registered encoders.
type ExportService struct {
	site     driving.SiteService
	encoders map[domain.ExportFormat]driven.SiteEncoder
}

// NewExportService creates an export service. Later encoders replace
// earlier ones for the same format.
func NewExportService(site driving.SiteService, encoders ...driven.SiteEncoder) *ExportService {
	m := make(map[domain.ExportFormat]driven.SiteEncoder, len(encoders))
	for _, enc := range encoders {
		m[enc.Format()] = enc
	}
	return &ExportService{site: site, encoders: m}
}

// Export encodes the current configuration in format.
func (s *ExportService) Export(ctx context.Context, format domain.ExportFormat) ([]byte, error) {
	enc, ok := s.encoders[format]
	if !ok {
		return nil, fmt.Errorf("export format %q: %w", format, domain.ErrUnsupportedFormat)
	}
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return nil, err
	}
	data, err := enc.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return data, nil
}
