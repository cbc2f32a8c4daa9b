package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsite/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/normalisers/markdown"
)

// --- Mock implementations ---

// mockSectionIndex implements driven.SectionIndex for testing.
type mockSectionIndex struct {
	hits      []driven.SearchHit
	searchErr error
	indexErr  error
	resetErr  error
	locale    string
	limit     int
}

func (m *mockSectionIndex) Index(_ context.Context, _ []domain.Section) error {
	return m.indexErr
}

func (m *mockSectionIndex) Reset(_ context.Context) error {
	return m.resetErr
}

func (m *mockSectionIndex) Search(_ context.Context, _, locale string, limit int) ([]driven.SearchHit, error) {
	m.locale, m.limit = locale, limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if limit > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:limit], nil
}

func (m *mockSectionIndex) Count(_ context.Context) (int, error) {
	return len(m.hits), nil
}

func (m *mockSectionIndex) Close() error {
	return nil
}

// mockNormaliser implements driven.Normaliser for testing.
type mockNormaliser struct {
	err    error
	levels [][2]int
}

func (m *mockNormaliser) Sections(_ context.Context, p driven.Page, locale string, lo, hi int) ([]domain.Section, error) {
	m.levels = append(m.levels, [2]int{lo, hi})
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Section{{ID: p.Route, Locale: locale, Route: p.Route, Content: string(p.Content)}}, nil
}

func testContent() *mockContentStore {
	return &mockContentStore{pages: []driven.Page{
		page("/games/tag", "---\ntitle: 追逐游戏\n---\n\n追逐者需要抓住逃跑者。\n\n## 奖励\n\n追逐者每次碰撞获得奖励。\n"),
		page("/en/games/tag", "# Predator-prey\n\nPredators chase the prey.\n\n## Reward\n\nPredators are rewarded for every collision.\n\n### Shaping\n\nDistance shaping is optional.\n"),
		page("/en/games/push", "# Keep-away\n\nThe agent pushes the adversary away from the landmark.\n"),
		page("/en/draft", "---\nsearch: false\n---\n# Draft\n\nPredators everywhere.\n"),
	}}
}

func newSearchService(t *testing.T, cfg *domain.SiteConfig) *SearchService {
	t.Helper()
	service := NewSearchService(
		NewSiteService(&mockSiteSource{cfg: cfg}),
		testContent(),
		markdown.New(),
		memory.NewSectionIndex(),
	)
	_, err := service.Index(context.Background())
	require.NoError(t, err)
	return service
}

func TestSearchService_Index(t *testing.T) {
	index := memory.NewSectionIndex()
	service := NewSearchService(
		NewSiteService(&mockSiteSource{cfg: testSite()}),
		testContent(),
		markdown.New(),
		index,
	)

	n, err := service.Index(context.Background())
	require.NoError(t, err)

	// zh tag: lead + 奖励; en tag: lead + Reward (Shaping is outside the
	// default [2, 2] outline of en); en push: lead; draft: excluded.
	assert.Equal(t, 5, n)
	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestSearchService_Index_UsesLocaleOutline(t *testing.T) {
	norm := &mockNormaliser{}
	service := NewSearchService(
		NewSiteService(&mockSiteSource{cfg: testSite()}),
		testContent(),
		norm,
		memory.NewSectionIndex(),
	)

	_, err := service.Index(context.Background())
	require.NoError(t, err)

	require.Len(t, norm.levels, 4)
	assert.Contains(t, norm.levels, [2]int{2, 3}) // zh
	assert.Contains(t, norm.levels, [2]int{2, 2}) // en default
}

func TestSearchService_Index_Rebuilds(t *testing.T) {
	service := newSearchService(t, testSite())

	n, err := service.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestSearchService_Index_SkipsPagesOutsideLocales(t *testing.T) {
	cfg := testSite()
	delete(cfg.Locales, "zh")
	service := NewSearchService(
		NewSiteService(&mockSiteSource{cfg: cfg}),
		testContent(),
		markdown.New(),
		memory.NewSectionIndex(),
	)

	n, err := service.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSearchService_Index_Errors(t *testing.T) {
	site := NewSiteService(&mockSiteSource{cfg: testSite()})

	tests := []struct {
		name    string
		service *SearchService
		wantErr error
	}{
		{
			name:    "no index",
			service: NewSearchService(site, testContent(), markdown.New(), nil),
			wantErr: domain.ErrSearchUnavailable,
		},
		{
			name:    "no content",
			service: NewSearchService(site, nil, nil, memory.NewSectionIndex()),
			wantErr: domain.ErrSearchUnavailable,
		},
		{
			name:    "content read failure",
			service: NewSearchService(site, &mockContentStore{pagesErr: errors.New("io")}, markdown.New(), memory.NewSectionIndex()),
		},
		{
			name:    "normaliser failure",
			service: NewSearchService(site, testContent(), &mockNormaliser{err: domain.ErrInvalidInput}, memory.NewSectionIndex()),
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "reset failure",
			service: NewSearchService(site, testContent(), markdown.New(), &mockSectionIndex{resetErr: errors.New("locked")}),
		},
		{
			name:    "index failure",
			service: NewSearchService(site, testContent(), markdown.New(), &mockSectionIndex{indexErr: errors.New("full")}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.service.Index(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSearchService_Search(t *testing.T) {
	service := newSearchService(t, testSite())

	results, err := service.Search(context.Background(), "predators", domain.SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.Equal(t, "en", r.Section.Locale)
		assert.NotEqual(t, "/en/draft", r.Section.Route)
	}
	assert.Equal(t, "/en/games/tag", results[0].Section.Route)
}

func TestSearchService_Search_CJK(t *testing.T) {
	service := newSearchService(t, testSite())

	results, err := service.Search(context.Background(), "奖励", domain.SearchOptions{Locale: "zh"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "奖励", results[0].Section.Anchor)
	assert.Equal(t, "/games/tag#奖励", results[0].Section.URL())
	assert.Equal(t, "追逐游戏", results[0].Section.PageTitle)
}

func TestSearchService_Search_LocaleFilter(t *testing.T) {
	service := newSearchService(t, testSite())

	results, err := service.Search(context.Background(), "predators", domain.SearchOptions{Locale: "zh"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_Search_EmptyQuery(t *testing.T) {
	service := NewSearchService(nil, nil, nil, nil)

	results, err := service.Search(context.Background(), "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_Search_DefaultLimit(t *testing.T) {
	index := &mockSectionIndex{}
	service := NewSearchService(NewSiteService(&mockSiteSource{cfg: testSite()}), nil, nil, index)

	_, err := service.Search(context.Background(), "tag", domain.SearchOptions{Locale: "en"})
	require.NoError(t, err)
	assert.Equal(t, DefaultSearchLimit, index.limit)
	assert.Equal(t, "en", index.locale)

	_, err = service.Search(context.Background(), "tag", domain.SearchOptions{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, index.limit)
}

func TestSearchService_Search_MapsHits(t *testing.T) {
	index := &mockSectionIndex{hits: []driven.SearchHit{
		{Section: domain.Section{ID: "a", Route: "/en/games/tag", Anchor: "reward"}, Score: 2.5, Snippet: "…reward…"},
	}}
	service := NewSearchService(NewSiteService(&mockSiteSource{cfg: testSite()}), nil, nil, index)

	results, err := service.Search(context.Background(), "reward", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Section.ID)
	assert.InDelta(t, 2.5, results[0].Score, 1e-9)
	assert.Equal(t, "…reward…", results[0].Snippet)
}

func TestSearchService_Search_Errors(t *testing.T) {
	algolia := testSite()
	algolia.Search.Provider = domain.SearchProviderAlgolia

	tests := []struct {
		name    string
		cfg     *domain.SiteConfig
		index   driven.SectionIndex
		opts    domain.SearchOptions
		wantErr error
	}{
		{
			name:    "no index",
			cfg:     testSite(),
			wantErr: domain.ErrSearchUnavailable,
		},
		{
			name:    "site uses another provider",
			cfg:     algolia,
			index:   &mockSectionIndex{},
			wantErr: domain.ErrSearchUnavailable,
		},
		{
			name:    "unknown locale",
			cfg:     testSite(),
			index:   &mockSectionIndex{},
			opts:    domain.SearchOptions{Locale: "fr"},
			wantErr: domain.ErrUnknownLocale,
		},
		{
			name:  "index failure",
			cfg:   testSite(),
			index: &mockSectionIndex{searchErr: errors.New("corrupt")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSearchService(NewSiteService(&mockSiteSource{cfg: tt.cfg}), nil, nil, tt.index)

			_, err := service.Search(context.Background(), "tag", tt.opts)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
