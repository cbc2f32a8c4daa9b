package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
	"github.com/custodia-labs/docsite/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultSearchLimit is used when SearchOptions.Limit is not positive.
const DefaultSearchLimit = 10

// SearchService is the local search provider of the site.
type SearchService struct {
	site       driving.SiteService
	content    driven.ContentStore
	normaliser driven.Normaliser
	index      driven.SectionIndex
}

// NewSearchService creates a search service.
// content and normaliser are only needed for Index.
func NewSearchService(
	site driving.SiteService,
	content driven.ContentStore,
	normaliser driven.Normaliser,
	index driven.SectionIndex,
) *SearchService {
	return &SearchService{
		site:       site,
		content:    content,
		normaliser: normaliser,
		index:      index,
	}
}

// Index rebuilds the index from the content tree.
func (s *SearchService) Index(ctx context.Context) (int, error) {
	logger.Section("Index Build")

	if s.index == nil {
		return 0, fmt.Errorf("no search index configured: %w", domain.ErrSearchUnavailable)
	}
	if s.content == nil || s.normaliser == nil {
		return 0, fmt.Errorf("no content directory configured: %w", domain.ErrSearchUnavailable)
	}
	cfg, err := s.localConfig(ctx)
	if err != nil {
		return 0, err
	}

	pages, err := s.content.Pages(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading content: %w", err)
	}
	logger.Debug("Found %d page(s) under %s", len(pages), s.content.Root())

	var sections []domain.Section
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		code, ok := cfg.LocaleFor(page.Route)
		if !ok {
			logger.Warn("Skipping %s: no locale serves %s", page.File, page.Route)
			continue
		}
		theme, err := cfg.ResolvedTheme(code)
		if err != nil {
			return 0, err
		}
		lo, hi := theme.Outline.Levels()

		secs, err := s.normaliser.Sections(ctx, page, code, lo, hi)
		if err != nil {
			return 0, fmt.Errorf("normalising %s: %w", page.File, err)
		}
		logger.Debug("%s [%s]: %d section(s)", page.Route, code, len(secs))
		sections = append(sections, secs...)
	}

	if err := s.index.Reset(ctx); err != nil {
		return 0, fmt.Errorf("resetting index: %w", err)
	}
	if err := s.index.Index(ctx, sections); err != nil {
		return 0, fmt.Errorf("indexing sections: %w", err)
	}
	logger.Info("Indexed %d section(s) from %d page(s)", len(sections), len(pages))
	return len(sections), nil
}

// Search queries the index.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}
	if s.index == nil {
		return nil, fmt.Errorf("no search index configured: %w", domain.ErrSearchUnavailable)
	}

	cfg, err := s.localConfig(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Locale != "" {
		if _, ok := cfg.Locales[opts.Locale]; !ok {
			return nil, fmt.Errorf("locale %q: %w", opts.Locale, domain.ErrUnknownLocale)
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	logger.Debug("Locale: %q, Limit: %d", opts.Locale, limit)

	hits, err := s.index.Search(ctx, query, opts.Locale, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, domain.SearchResult{
			Section: hit.Section,
			Score:   hit.Score,
			Snippet: hit.Snippet,
		})
	}
	logger.Debug("Returning %d result(s)", len(results))
	return results, nil
}

// localConfig returns the configuration if it selects the local provider.
func (s *SearchService) localConfig(ctx context.Context) (*domain.SiteConfig, error) {
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Search.Provider != domain.SearchProviderLocal {
		return nil, fmt.Errorf("site uses %q search: %w", cfg.Search.Provider, domain.ErrSearchUnavailable)
	}
	return cfg, nil
}
