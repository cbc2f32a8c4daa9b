package driven

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// Page is a Markdown document of the content tree.
type Page struct {
	// Route is the URL the page is served at, e.g. "/en/guide/".
	Route string

	// File is the path relative to the content root, e.g. "en/guide/index.md".
	File string

	// Content is the raw Markdown.
	Content []byte
}

// ContentStore provides read access to the site's Markdown content.
type ContentStore interface {
	// Exists returns true if a document is served at route.
	Exists(ctx context.Context, route string) (bool, error)

	// Pages returns every page of the content tree, ordered by route.
	Pages(ctx context.Context) ([]Page, error)

	// Root returns the content root directory.
	Root() string
}

// Normaliser turns a page into searchable sections.
type Normaliser interface {
	// Sections splits page into sections between outline headings
	// of level minLevel..maxLevel.
	Sections(ctx context.Context, page Page, locale string, minLevel, maxLevel int) ([]domain.Section, error)
}
