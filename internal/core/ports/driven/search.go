package driven

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// SectionIndex provides full-text search over page sections.
type SectionIndex interface {
	// Index adds or replaces sections in the index.
	Index(ctx context.Context, sections []domain.Section) error

	// Reset removes every section from the index.
	Reset(ctx context.Context) error

	// Search returns sections matching query, best first.
	// An empty locale searches every locale.
	Search(ctx context.Context, query, locale string, limit int) ([]SearchHit, error)

	// Count returns the number of indexed sections.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// SearchHit represents a search result from the index.
type SearchHit struct {
	// Section is the matched section.
	Section domain.Section

	// Score is the relevance score, higher is better.
	Score float64

	// Snippet is an excerpt around the match.
	Snippet string
}
