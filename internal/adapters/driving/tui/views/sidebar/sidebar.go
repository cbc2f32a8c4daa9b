// Package sidebar provides the navigation view of one locale for the TUI:
// its navigation bar followed by every sidebar, grouped by path prefix.
package sidebar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// ErrNoSiteService indicates that no site service was provided.
var ErrNoSiteService = errors.New("site service not available")

// EntryKind distinguishes headings from page links.
type EntryKind int

const (
	// EntrySection heads the navigation bar or one sidebar.
	EntrySection EntryKind = iota
	// EntryGroup is a sidebar group label.
	EntryGroup
	// EntryLink is a selectable page link.
	EntryLink
)

// Entry is one rendered row.
type Entry struct {
	Kind  EntryKind
	Text  string
	Link  string
	Depth int
}

// View shows the navigation bar and sidebars of a locale.
type View struct {
	styles      *styles.Styles
	siteService driving.SiteService
	ctx         context.Context

	locale       string
	entries      []Entry
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new sidebar view.
func NewView(s *styles.Styles, siteService driving.SiteService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		siteService: siteService,
		ctx:         context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetLocale sets the locale and loads its navigation.
func (v *View) SetLocale(code string) tea.Cmd {
	v.locale = code
	v.entries = nil
	v.selected = 0
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.loadSidebar()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadSidebar returns a command that resolves the theme of the locale.
func (v *View) loadSidebar() tea.Cmd {
	code := v.locale
	return func() tea.Msg {
		if v.siteService == nil {
			return messages.SidebarLoaded{Locale: code, Err: ErrNoSiteService}
		}
		cfg, err := v.siteService.Get(v.ctx)
		if err != nil {
			return messages.SidebarLoaded{Locale: code, Err: err}
		}
		theme, err := cfg.ResolvedTheme(code)
		if err != nil {
			return messages.SidebarLoaded{Locale: code, Err: fmt.Errorf("locale %q: %w", code, err)}
		}
		return messages.SidebarLoaded{Locale: code, Theme: theme}
	}
}

// Entries flattens a theme into rows: the navigation bar, then each
// sidebar in prefix order with its groups and items.
func Entries(theme domain.ThemeConfig) []Entry {
	var entries []Entry
	if len(theme.Nav) > 0 {
		entries = append(entries, Entry{Kind: EntrySection, Text: "Navigation"})
		for _, item := range theme.Nav {
			entries = append(entries, Entry{Kind: EntryLink, Text: item.Text, Link: item.Link, Depth: 1})
		}
	}

	prefixes := theme.SidebarPrefixes()
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		entries = append(entries, Entry{Kind: EntrySection, Text: "Sidebar " + prefix, Link: prefix})
		for _, group := range theme.Sidebar[prefix] {
			text := group.Text
			if group.Collapsed {
				text += " (collapsed)"
			}
			entries = append(entries, Entry{Kind: EntryGroup, Text: text, Depth: 1})
			for _, item := range group.Items {
				entries = append(entries, Entry{Kind: EntryLink, Text: item.Text, Link: item.Link, Depth: 2})
			}
		}
	}
	return entries
}

// Update handles messages for the sidebar view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SidebarLoaded:
		if msg.Locale != v.locale {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.entries = Entries(msg.Theme)
		v.selected = v.next(-1, 1)
		v.scrollOffset = 0
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.selected = v.next(v.selected, -1)
		v.adjustScroll()
	case "down", "j":
		v.selected = v.next(v.selected, 1)
		v.adjustScroll()
	case "enter":
		if entry := v.SelectedEntry(); entry != nil {
			path := entry.Link
			return v, func() tea.Msg {
				return messages.PageSelected{Path: path}
			}
		}
	case "r":
		if v.locale != "" {
			return v, v.SetLocale(v.locale)
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewLocales}
		}
	}
	return v, nil
}

// next returns the index of the next link row from i in direction dir,
// or i when there is none.
func (v *View) next(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(v.entries); j += dir {
		if v.entries[j].Kind == EntryLink {
			return j
		}
	}
	if i < 0 {
		return 0
	}
	return i
}

// adjustScroll keeps the selected row visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount returns the number of rows that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, help and padding
	available := v.height - 7
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the sidebar view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Navigation · %s", v.locale)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading navigation..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("This locale has no navigation or sidebar."))
	default:
		visible := v.visibleItemCount()
		end := min(v.scrollOffset+visible, len(v.entries))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.renderEntry(i, &v.entries[i]))
			b.WriteString("\n")
		}
		if len(v.entries) > visible {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(v.entries))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] move  [enter] resolve page  [r] reload  [esc] locales"))
	return b.String()
}

// renderEntry renders a single row.
func (v *View) renderEntry(index int, e *Entry) string {
	indent := strings.Repeat("  ", e.Depth)
	switch e.Kind {
	case EntrySection:
		return v.styles.Title.Render(e.Text)
	case EntryGroup:
		return indent + v.styles.Subtitle.Render(e.Text)
	}
	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s> %s  %s", indent, e.Text, e.Link))
	}
	return indent + "  " + v.styles.Normal.Render(e.Text) + "  " + v.styles.Link.Render(e.Link)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Locale returns the locale being shown.
func (v *View) Locale() string {
	return v.locale
}

// Entries returns the rendered rows.
func (v *View) Entries() []Entry {
	return v.entries
}

// SelectedIndex returns the index of the selected row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedEntry returns the selected link row, or nil if none.
func (v *View) SelectedEntry() *Entry {
	if v.selected < 0 || v.selected >= len(v.entries) || v.entries[v.selected].Kind != EntryLink {
		return nil
	}
	return &v.entries[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
