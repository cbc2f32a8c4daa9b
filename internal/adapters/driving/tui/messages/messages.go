// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docsite/internal/core/domain"
)

// SearchRequested is a command to perform a search.
type SearchRequested struct {
	Query   string
	Options domain.SearchOptions
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Results []domain.SearchResult
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewLocales lists the locales of the site.
	ViewLocales
	// ViewSidebar shows the navigation bar and sidebars of one locale.
	ViewSidebar
	// ViewPage shows the resolution of one page path.
	ViewPage
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewLocales:
		return "locales"
	case ViewSidebar:
		return "sidebar"
	case ViewPage:
		return "page"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Locale summarises one locale for the locale list.
type Locale struct {
	Code  string
	Label string
	Lang  string
	Link  string
}

// LocalesLoaded carries the locales of the site in root path order.
type LocalesLoaded struct {
	Title   string
	Locales []Locale
	Err     error
}

// LocaleSelected signals a locale was chosen from the list.
type LocaleSelected struct {
	Code string
}

// SidebarLoaded carries the resolved navigation of a locale.
type SidebarLoaded struct {
	Locale string
	Theme  domain.ThemeConfig
	Err    error
}

// PageSelected signals a page path was chosen for resolution.
type PageSelected struct {
	Path string
}

// PageResolved carries the resolution of a page path.
type PageResolved struct {
	Path       string
	Resolution *domain.Resolution
	Err        error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
