package driving

import (
	"context"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// NavigationService answers navigation questions for a page path.
type NavigationService interface {
	// LocaleFor returns the locale code serving path.
	LocaleFor(ctx context.Context, path string) (string, error)

	// Nav returns the navigation bar of a locale.
	Nav(ctx context.Context, locale string) ([]domain.NavItem, error)

	// SidebarFor returns the sidebar shown on path and the prefix that selected it.
	SidebarFor(ctx context.Context, path string) (string, []domain.SidebarGroup, error)

	// Pager returns the previous and next pages of path.
	Pager(ctx context.Context, path string) (domain.Pager, error)

	// EditURL returns the edit link of path, or "" when the locale has none.
	EditURL(ctx context.Context, path string) (string, error)

	// Resolve combines all of the above.
	Resolve(ctx context.Context, path string) (*domain.Resolution, error)
}
