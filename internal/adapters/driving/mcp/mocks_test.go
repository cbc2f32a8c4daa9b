package mcp

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// mockSiteService is a mock implementation of driving.SiteService.
type mockSiteService struct {
	cfg *domain.SiteConfig
	err error
}

func (m *mockSiteService) Get(_ context.Context) (*domain.SiteConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cfg.Clone(), nil
}

func (m *mockSiteService) Reload(ctx context.Context) (*domain.SiteConfig, error) {
	return m.Get(ctx)
}

func (m *mockSiteService) Source() string {
	return "mock"
}

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	data   []byte
	err    error
	format domain.ExportFormat
}

func (m *mockExportService) Export(_ context.Context, format domain.ExportFormat) ([]byte, error) {
	m.format = format
	return m.data, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	opts    domain.SearchOptions
}

func (m *mockSearchService) Index(_ context.Context) (int, error) {
	return 0, m.err
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.opts = opts
	return m.results, m.err
}

// mockNavigationService is a mock implementation of driving.NavigationService.
type mockNavigationService struct {
	resolution *domain.Resolution
	err        error
}

func (m *mockNavigationService) LocaleFor(_ context.Context, _ string) (string, error) {
	return m.resolution.Locale, m.err
}

func (m *mockNavigationService) Nav(_ context.Context, _ string) ([]domain.NavItem, error) {
	return m.resolution.Nav, m.err
}

func (m *mockNavigationService) SidebarFor(_ context.Context, _ string) (string, []domain.SidebarGroup, error) {
	return m.resolution.SidebarPrefix, m.resolution.Sidebar, m.err
}

func (m *mockNavigationService) Pager(_ context.Context, _ string) (domain.Pager, error) {
	return m.resolution.Pager, m.err
}

func (m *mockNavigationService) EditURL(_ context.Context, _ string) (string, error) {
	return m.resolution.EditURL, m.err
}

func (m *mockNavigationService) Resolve(_ context.Context, _ string) (*domain.Resolution, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resolution, nil
}

// mockValidationService is a mock implementation of driving.ValidationService.
type mockValidationService struct {
	report *domain.Report
	err    error
	opts   domain.ValidateOptions
}

func (m *mockValidationService) Validate(
	_ context.Context,
	_ *domain.SiteConfig,
	opts domain.ValidateOptions,
) (*domain.Report, error) {
	m.opts = opts
	return m.report, m.err
}

func testSite() *domain.SiteConfig {
	return &domain.SiteConfig{
		Title: "Docs",
		Locales: map[string]domain.LocaleConfig{
			"zh": {
				Label: "简体中文",
				Lang:  "zh-CN",
				Link:  "/",
				ThemeConfig: domain.ThemeConfig{
					Sidebar: map[string][]domain.SidebarGroup{
						"/games/": {{Text: "环境", Items: []domain.SidebarItem{{Text: "追逐", Link: "/games/tag"}}}},
					},
				},
			},
			"en": {
				Label: "English",
				Lang:  "en-US",
				Link:  "/en/",
			},
		},
		Search: domain.SearchConfig{Provider: domain.SearchProviderLocal},
	}
}
