// Package builtin provides the site configuration compiled into the binary.
package builtin

import (
	"context"
	_ "embed"

	"github.com/custodia-labs/docsite/internal/adapters/driven/config/codec"
	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

//go:embed site.toml
var siteTOML []byte

// SourceName identifies the built-in configuration in messages.
const SourceName = "builtin"

// Ensure Source implements the interface.
var _ driven.SiteSource = (*Source)(nil)

// Source serves the embedded site configuration.
type Source struct{}

// NewSource creates the built-in source.
func NewSource() *Source {
	return &Source{}
}

// Load decodes the embedded configuration. Every call returns a fresh value.
func (s *Source) Load(ctx context.Context) (*domain.SiteConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.ConfigLoadError{Source: SourceName, Err: err}
	}
	return codec.Decode(SourceName, domain.ExportFormatTOML, siteTOML)
}

// Name returns "builtin".
func (s *Source) Name() string {
	return SourceName
}

// Raw returns a copy of the embedded TOML document.
func Raw() []byte {
	return append([]byte(nil), siteTOML...)
}
