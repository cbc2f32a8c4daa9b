// Package locales provides the locale list view for the TUI.
package locales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// ErrNoSiteService indicates that no site service was provided.
var ErrNoSiteService = errors.New("site service not available")

// View lists the locales of the site.
type View struct {
	styles      *styles.Styles
	siteService driving.SiteService
	ctx         context.Context

	title    string
	locales  []messages.Locale
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new locales view.
func NewView(s *styles.Styles, siteService driving.SiteService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		siteService: siteService,
		ctx:         context.Background(),
		locales:     []messages.Locale{},
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the locales.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadLocales(false)
}

// loadLocales returns a command that reads the locales from the configuration.
func (v *View) loadLocales(reload bool) tea.Cmd {
	return func() tea.Msg {
		if v.siteService == nil {
			return messages.LocalesLoaded{Err: ErrNoSiteService}
		}

		var (
			cfg *domain.SiteConfig
			err error
		)
		if reload {
			cfg, err = v.siteService.Reload(v.ctx)
		} else {
			cfg, err = v.siteService.Get(v.ctx)
		}
		if err != nil {
			return messages.LocalesLoaded{Err: err}
		}
		return LoadedFrom(cfg)
	}
}

// LoadedFrom builds the locale list message of a configuration.
func LoadedFrom(cfg *domain.SiteConfig) messages.LocalesLoaded {
	codes := cfg.LocaleCodes()
	list := make([]messages.Locale, 0, len(codes))
	for _, code := range codes {
		loc := cfg.Locales[code]
		list = append(list, messages.Locale{Code: code, Label: loc.Label, Lang: loc.Lang, Link: loc.Link})
	}
	return messages.LocalesLoaded{Title: cfg.Title, Locales: list}
}

// Update handles messages for the locales view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LocalesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.title = msg.Title
		v.locales = msg.Locales
		if v.selected >= len(v.locales) {
			v.selected = 0
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.locales)-1 {
			v.selected++
		}
	case "enter":
		if len(v.locales) > 0 && v.selected < len(v.locales) {
			code := v.locales[v.selected].Code
			return v, func() tea.Msg {
				return messages.LocaleSelected{Code: code}
			}
		}
	case "r":
		v.loading = true
		return v, v.loadLocales(true)
	}

	return v, nil
}

// View renders the locales view.
func (v *View) View() string {
	var b strings.Builder

	heading := "Locales"
	if v.title != "" {
		heading = v.title + " · Locales"
	}
	b.WriteString(v.styles.Title.Render(heading))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading configuration..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.locales) == 0:
		b.WriteString(v.styles.Muted.Render("No locales configured."))
	default:
		for i := range v.locales {
			b.WriteString(v.renderLocale(i, &v.locales[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderLocale renders a single locale line: > [code] Label  lang  root.
func (v *View) renderLocale(index int, loc *messages.Locale) string {
	code := fmt.Sprintf("[%s]", loc.Code)
	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-6s %-12s %-8s %s", code, loc.Label, loc.Lang, loc.Link))
	}
	return v.styles.Normal.Render("  ") +
		v.styles.Subtitle.Render(fmt.Sprintf("%-6s ", code)) +
		v.styles.Normal.Render(fmt.Sprintf("%-12s ", loc.Label)) +
		v.styles.Muted.Render(fmt.Sprintf("%-8s ", loc.Lang)) +
		v.styles.Link.Render(loc.Link)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] navigation  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Locales returns the current list of locales.
func (v *View) Locales() []messages.Locale {
	return v.locales
}

// SelectedIndex returns the currently selected locale index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
