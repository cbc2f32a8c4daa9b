package driving

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// SearchService provides the local search provider.
type SearchService interface {
	// Index rebuilds the index from the content tree and returns the section count.
	Index(ctx context.Context) (int, error)

	// Search queries the index.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
