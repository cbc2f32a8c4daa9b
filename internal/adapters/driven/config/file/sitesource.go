package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docsite/internal/adapters/driven/config/codec"
	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// Ensure SiteSource implements the interface.
var _ driven.SiteSource = (*SiteSource)(nil)

// SiteSource reads the site configuration from a file.
// The format is selected by extension: .toml, .yaml, .yml or .json.
type SiteSource struct {
	path string
}

// NewSiteSource creates a source for the file at path.
func NewSiteSource(path string) *SiteSource {
	return &SiteSource{path: path}
}

// Load reads and strictly decodes the file.
func (s *SiteSource) Load(ctx context.Context) (*domain.SiteConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConfigLoadError{Source: s.path, Err: err}
	}

	format, ok := domain.FormatForExt(strings.ToLower(filepath.Ext(s.path)))
	if !ok {
		return nil, &domain.ConfigLoadError{
			Source: s.path,
			Err:    fmt.Errorf("extension %q: %w", filepath.Ext(s.path), domain.ErrUnsupportedFormat),
		}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.ConfigLoadError{Source: s.path, Err: err}
	}

	return codec.Decode(s.path, format, data)
}

// Name returns the file path.
func (s *SiteSource) Name() string {
	return s.path
}
