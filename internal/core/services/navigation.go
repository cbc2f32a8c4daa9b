package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// Ensure NavigationService implements the interface.
var _ driving.NavigationService = (*NavigationService)(nil)

// Default doc footer labels used when a locale defines none.
const (
	defaultPrevLabel = "Previous page"
	defaultNextLabel = "Next page"
)

// NavigationService answers navigation questions from the site configuration.
type NavigationService struct {
	site driving.SiteService
}

// NewNavigationService creates a navigation service.
func NewNavigationService(site driving.SiteService) *NavigationService {
	return &NavigationService{site: site}
}

// LocaleFor returns the locale code serving path.
func (s *NavigationService) LocaleFor(ctx context.Context, path string) (string, error) {
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return "", err
	}
	code, _, err := localeOf(cfg, path)
	return code, err
}

// Nav returns the navigation bar of a locale.
func (s *NavigationService) Nav(ctx context.Context, locale string) ([]domain.NavItem, error) {
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return nil, err
	}
	theme, err := cfg.ResolvedTheme(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	return theme.Nav, nil
}

// SidebarFor returns the sidebar of the longest prefix matching path.
func (s *NavigationService) SidebarFor(ctx context.Context, path string) (string, []domain.SidebarGroup, error) {
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return "", nil, err
	}
	_, theme, err := localeOf(cfg, path)
	if err != nil {
		return "", nil, err
	}
	prefix, groups := sidebarOf(theme, domain.NormalizeRoute(path))
	return prefix, groups, nil
}

// Pager returns the neighbours of path in its sidebar.
func (s *NavigationService) Pager(ctx context.Context, path string) (domain.Pager, error) {
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return domain.Pager{}, err
	}
	_, theme, err := localeOf(cfg, path)
	if err != nil {
		return domain.Pager{}, err
	}
	return pagerOf(theme, domain.NormalizeRoute(path)), nil
}

// EditURL expands the locale's edit link pattern for path.
func (s *NavigationService) EditURL(ctx context.Context, path string) (string, error) {
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return "", err
	}
	_, theme, err := localeOf(cfg, path)
	if err != nil {
		return "", err
	}
	return editURLOf(theme, cfg.CanonicalRoute(path)), nil
}

// Resolve combines locale, nav, sidebar, pager and edit link of path.
func (s *NavigationService) Resolve(ctx context.Context, path string) (*domain.Resolution, error) {
	cfg, err := s.site.Get(ctx)
	if err != nil {
		return nil, err
	}
	code, theme, err := localeOf(cfg, path)
	if err != nil {
		return nil, err
	}
	route := domain.NormalizeRoute(path)
	prefix, groups := sidebarOf(theme, route)

	res := &domain.Resolution{
		Path:          route,
		Locale:        code,
		Lang:          cfg.Locales[code].Lang,
		Nav:           theme.Nav,
		SidebarPrefix: prefix,
		Sidebar:       groups,
		Pager:         pagerOf(theme, route),
		EditURL:       editURLOf(theme, cfg.CanonicalRoute(route)),
	}
	if theme.EditLink != nil {
		res.EditText = theme.EditLink.Text
	}
	return res, nil
}

func localeOf(cfg *domain.SiteConfig, path string) (string, domain.ThemeConfig, error) {
	route := domain.NormalizeRoute(path)
	code, ok := cfg.LocaleFor(route)
	if !ok {
		return "", domain.ThemeConfig{}, fmt.Errorf("path %q: %w", path, domain.ErrUnknownLocale)
	}
	theme, err := cfg.ResolvedTheme(code)
	if err != nil {
		return "", domain.ThemeConfig{}, err
	}
	return code, theme, nil
}

func sidebarOf(theme domain.ThemeConfig, route string) (string, []domain.SidebarGroup) {
	for _, prefix := range theme.SidebarPrefixes() {
		if underPrefix(route, prefix) {
			return prefix, theme.Sidebar[prefix]
		}
	}
	return "", nil
}

func pagerOf(theme domain.ThemeConfig, route string) domain.Pager {
	_, groups := sidebarOf(theme, route)

	var items []domain.SidebarItem
	for _, g := range groups {
		for _, item := range g.Items {
			if item.Link != "" && !isExternal(item.Link) {
				items = append(items, item)
			}
		}
	}

	prevLabel, nextLabel := defaultPrevLabel, defaultNextLabel
	if theme.DocFooter != nil {
		prevLabel = firstNonBlank(theme.DocFooter.Prev, prevLabel)
		nextLabel = firstNonBlank(theme.DocFooter.Next, nextLabel)
	}

	var pager domain.Pager
	for i, item := range items {
		if domain.NormalizeRoute(item.Link) != route {
			continue
		}
		if i > 0 {
			pager.Prev = &domain.PageLink{Label: prevLabel, Text: items[i-1].Text, Link: items[i-1].Link}
		}
		if i < len(items)-1 {
			pager.Next = &domain.PageLink{Label: nextLabel, Text: items[i+1].Text, Link: items[i+1].Link}
		}
		break
	}
	return pager
}

func editURLOf(theme domain.ThemeConfig, route string) string {
	if theme.EditLink == nil || theme.EditLink.Pattern == "" {
		return ""
	}
	return strings.ReplaceAll(theme.EditLink.Pattern, ":path", domain.FileForRoute(route))
}

func firstNonBlank(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
