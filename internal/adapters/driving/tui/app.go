package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/views/locales"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/views/page"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/views/sidebar"
	"github.com/custodia-labs/docsite/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// localesView lists the locales of the site.
	localesView *locales.View

	// sidebarView shows the navigation of the selected locale.
	sidebarView *sidebar.View

	// pageView shows the resolution of the selected page.
	pageView *page.View

	// searchView is the styled search view component.
	searchView *search.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		localesView: locales.NewView(s, ports.Site),
		sidebarView: sidebar.NewView(s, ports.Site),
		pageView:    page.NewView(s, ports.Navigation),
		searchView:  search.NewView(s, nil, ports.Search),
		currentView: messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.localesView.WithContext(ctx)
	a.sidebarView.WithContext(ctx)
	a.pageView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// The locales are loaded up front so the menu shows the site title and
// search can filter by locale before the locales view is opened.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docsite"),
		a.localesView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewLocales:
			// Esc from locales goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			a.localesView, cmd = a.localesView.Update(msg)
			return a, cmd

		case messages.ViewSidebar:
			a.sidebarView, cmd = a.sidebarView.Update(msg)
			return a, cmd

		case messages.ViewPage:
			a.pageView, cmd = a.pageView.Update(msg)
			return a, cmd

		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			a.err = a.searchView.Err()
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, nil

	case messages.LocalesLoaded:
		a.localesView, cmd = a.localesView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.menuView.SetSubtitle(msg.Title)
		codes := make([]string, len(msg.Locales))
		for i, loc := range msg.Locales {
			codes[i] = loc.Code
		}
		a.searchView.SetLocales(codes)
		return a, cmd

	case messages.LocaleSelected:
		a.currentView = messages.ViewSidebar
		return a, a.sidebarView.SetLocale(msg.Code)

	case messages.SidebarLoaded:
		a.sidebarView, cmd = a.sidebarView.Update(msg)
		if msg.Err != nil && msg.Locale == a.sidebarView.Locale() {
			a.err = msg.Err
		}
		return a, cmd

	case messages.PageSelected:
		back := a.currentView
		if back == messages.ViewPage {
			back = messages.ViewMenu
		}
		a.currentView = messages.ViewPage
		return a, a.pageView.SetPath(msg.Path, back)

	case messages.PageResolved:
		a.pageView, cmd = a.pageView.Update(msg)
		if msg.Err != nil && msg.Path == a.pageView.Path() {
			a.err = msg.Err
		}
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ViewChanged:
		from := a.currentView
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewLocales:
			return a, a.localesView.Init()
		case messages.ViewSearch:
			// Returning from a page keeps the results.
			if from != messages.ViewPage {
				a.searchView.Reset()
			}
			return a, a.searchView.Init()
		case messages.ViewMenu, messages.ViewSidebar, messages.ViewPage, messages.ViewHelp:
			// Other views keep their state
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewPage:
			a.pageView, cmd = a.pageView.Update(msg)
		case messages.ViewMenu, messages.ViewLocales, messages.ViewSidebar, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewLocales:
		a.localesView, cmd = a.localesView.Update(msg)
	case messages.ViewSidebar:
		a.sidebarView, cmd = a.sidebarView.Update(msg)
	case messages.ViewPage:
		a.pageView, cmd = a.pageView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewLocales:
		return a.localesView.View()
	case messages.ViewSidebar:
		return a.sidebarView.View()
	case messages.ViewPage:
		return a.pageView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  /           Search
  q           Quit

Locales:
  enter       Show navigation of the locale
  r           Reload the configuration

Navigation bar and sidebars:
  j/k, ↑/↓    Move between links
  enter       Resolve the page
  r           Reload

Page:
  p / n       Previous / next page
  j/k, ↑/↓    Scroll

Search:
  (type)      Enter search query
  tab         Cycle locale filter
  enter       Submit search, then open the selected page
  n           New search

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// Locale returns the locale whose navigation was last opened.
func (a *App) Locale() string {
	return a.sidebarView.Locale()
}

// PagePath returns the path of the page last opened.
func (a *App) PagePath() string {
	return a.pageView.Path()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.localesView.SetDimensions(width, height)
	a.sidebarView.SetDimensions(width, height)
	a.pageView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
}
