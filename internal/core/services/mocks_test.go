package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSiteSource implements driven.SiteSource for testing.
type mockSiteSource struct {
	mu    sync.Mutex
	cfg   *domain.SiteConfig
	err   error
	loads int
}

func (m *mockSiteSource) Load(_ context.Context) (*domain.SiteConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.cfg.Clone(), nil
}

func (m *mockSiteSource) Name() string {
	return "mock"
}

func (m *mockSiteSource) set(cfg *domain.SiteConfig, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg, m.err = cfg, err
}

func (m *mockSiteSource) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// mockContentStore implements driven.ContentStore for testing.
type mockContentStore struct {
	pages     []driven.Page
	existsErr error
	pagesErr  error
}

func (m *mockContentStore) Exists(_ context.Context, route string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, p := range m.pages {
		if p.Route == route {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockContentStore) Pages(_ context.Context) ([]driven.Page, error) {
	if m.pagesErr != nil {
		return nil, m.pagesErr
	}
	return m.pages, nil
}

func (m *mockContentStore) Root() string {
	return "docs"
}

// mockRepoVerifier implements driven.RepoVerifier for testing.
type mockRepoVerifier struct {
	errs  map[string]error
	calls []string
}

func (m *mockRepoVerifier) VerifyRepo(_ context.Context, owner, repo string) error {
	key := owner + "/" + repo
	m.calls = append(m.calls, key)
	return m.errs[key]
}

// mockFileWatcher implements driven.FileWatcher for testing.
type mockFileWatcher struct {
	events chan struct{}
	err    error
	path   string
}

func (m *mockFileWatcher) Watch(_ context.Context, path string) (<-chan struct{}, error) {
	m.path = path
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

// page builds a content page for route.
func page(route, content string) driven.Page {
	return driven.Page{Route: route, File: domain.FileForRoute(route), Content: []byte(content)}
}

// testSite returns a consistent bilingual configuration: Chinese at the
// root and English under /en/.
func testSite() *domain.SiteConfig {
	return &domain.SiteConfig{
		Title: "MARL Docs",
		Base:  "/",
		Locales: map[string]domain.LocaleConfig{
			"zh": {
				Label: "简体中文",
				Lang:  "zh-CN",
				Link:  "/",
				ThemeConfig: domain.ThemeConfig{
					Nav: []domain.NavItem{
						{Text: "指南", Link: "/guide/"},
						{Text: "环境", Link: "/games/"},
					},
					Sidebar: map[string][]domain.SidebarGroup{
						"/guide/": {
							{Text: "入门", Items: []domain.SidebarItem{
								{Text: "简介", Link: "/guide/"},
								{Text: "安装", Link: "/guide/install"},
							}},
						},
						"/games/": {
							{Text: "环境", Items: []domain.SidebarItem{
								{Text: "追逐", Link: "/games/tag"},
								{Text: "推挤", Link: "/games/push"},
								{Text: "参考", Link: "/games/reference"},
							}},
						},
					},
					EditLink:  &domain.EditLink{Pattern: "https://github.com/marl/docs/edit/main/docs/:path", Text: "编辑此页"},
					DocFooter: &domain.DocFooter{Prev: "上一页", Next: "下一页"},
					Outline:   &domain.Outline{Label: "目录", Level: []int{2, 3}},
				},
			},
			"en": {
				Label: "English",
				Lang:  "en-US",
				Link:  "/en/",
				ThemeConfig: domain.ThemeConfig{
					Nav: []domain.NavItem{
						{Text: "Guide", Link: "/en/guide/"},
						{Text: "Games", Link: "/en/games/"},
					},
					Sidebar: map[string][]domain.SidebarGroup{
						"/en/guide/": {
							{Text: "Getting Started", Items: []domain.SidebarItem{
								{Text: "Introduction", Link: "/en/guide/"},
								{Text: "Installation", Link: "/en/guide/install"},
							}},
						},
						"/en/games/": {
							{Text: "Games", Items: []domain.SidebarItem{
								{Text: "Tag", Link: "/en/games/tag"},
								{Text: "Push", Link: "/en/games/push"},
								{Text: "Reference", Link: "/en/games/reference"},
							}},
						},
					},
					EditLink: &domain.EditLink{Pattern: "https://github.com/marl/docs/edit/main/docs/:path", Text: "Edit this page"},
				},
			},
		},
		Search: domain.SearchConfig{Provider: domain.SearchProviderLocal},
	}
}
