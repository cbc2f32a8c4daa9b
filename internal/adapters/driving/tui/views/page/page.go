// Package page provides the page resolution view for the TUI: locale,
// sidebar, pager and edit link of one page path.
package page

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

// ErrNoNavigationService indicates that no navigation service was provided.
var ErrNoNavigationService = errors.New("navigation service not available")

// View shows the resolution of a page path.
type View struct {
	styles     *styles.Styles
	navigation driving.NavigationService
	ctx        context.Context

	path         string
	back         messages.ViewType
	resolution   *domain.Resolution
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new page view.
func NewView(s *styles.Styles, navigation driving.NavigationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		navigation: navigation,
		ctx:        context.Background(),
		back:       messages.ViewMenu,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetPath resolves path; esc returns to back.
func (v *View) SetPath(path string, back messages.ViewType) tea.Cmd {
	v.back = back
	return v.open(path)
}

func (v *View) open(path string) tea.Cmd {
	v.path = path
	v.resolution = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.resolve(path)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// resolve returns a command that resolves path.
func (v *View) resolve(path string) tea.Cmd {
	return func() tea.Msg {
		if v.navigation == nil {
			return messages.PageResolved{Path: path, Err: ErrNoNavigationService}
		}
		res, err := v.navigation.Resolve(v.ctx, path)
		return messages.PageResolved{Path: path, Resolution: res, Err: err}
	}
}

// Update handles messages for the page view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PageResolved:
		if msg.Path != v.path {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.resolution = msg.Resolution
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "p":
		if v.resolution != nil && v.resolution.Pager.Prev != nil {
			return v, v.open(v.resolution.Pager.Prev.Link)
		}
	case "n":
		if v.resolution != nil && v.resolution.Pager.Next != nil {
			return v, v.open(v.resolution.Pager.Next.Link)
		}
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}
	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	res := v.resolution
	if res == nil {
		return nil
	}

	lines := []string{
		formatField("Path", res.Path),
		formatField("Locale", fmt.Sprintf("%s (%s)", res.Locale, res.Lang)),
		formatField("Sidebar", valueOr(res.SidebarPrefix, "none")),
		formatField("Previous", pageLink(res.Pager.Prev)),
		formatField("Next", pageLink(res.Pager.Next)),
	}
	if res.EditURL != "" {
		lines = append(lines, formatField("Edit", fmt.Sprintf("%s (%s)", res.EditURL, res.EditText)))
	}

	if len(res.Nav) > 0 {
		lines = append(lines, "", "Navigation:")
		for _, item := range res.Nav {
			lines = append(lines, fmt.Sprintf("  %s: %s", item.Text, item.Link))
		}
	}

	for _, group := range res.Sidebar {
		lines = append(lines, "", group.Text+":")
		for _, item := range group.Items {
			marker := "  "
			if item.Link == res.Path {
				marker = "* "
			}
			lines = append(lines, fmt.Sprintf("%s%s: %s", marker, item.Text, item.Link))
		}
	}
	return lines
}

func formatField(label, value string) string {
	return fmt.Sprintf("%-10s %s", label+":", value)
}

func pageLink(l *domain.PageLink) string {
	if l == nil {
		return "none"
	}
	return fmt.Sprintf("%s (%s) %s", l.Text, l.Label, l.Link)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// View renders the page view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Page " + v.path))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 10)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Resolving..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.resolution == nil:
		b.WriteString(v.styles.Muted.Render("No page selected"))
	default:
		lines := v.buildContent()
		visible := v.visibleLines()
		end := min(v.scrollOffset+visible, len(lines))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.renderLine(lines[i]))
			b.WriteString("\n")
		}
		if len(lines) > visible {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]", v.scrollOffset+1, end, len(lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] scroll  [p] previous  [n] next  [esc] back"))
	return b.String()
}

// renderLine styles one content line.
func (v *View) renderLine(line string) string {
	switch {
	case strings.HasPrefix(line, "* "):
		return v.styles.Selected.Render(line)
	case strings.HasPrefix(line, "  "):
		parts := strings.SplitN(line, ": ", 2)
		if len(parts) == 2 {
			return v.styles.Normal.Render(parts[0]+": ") + v.styles.Link.Render(parts[1])
		}
		return v.styles.Normal.Render(line)
	case strings.HasSuffix(line, ":"):
		return v.styles.Subtitle.Render(line)
	}
	parts := strings.SplitN(line, ":", 2)
	if len(parts) == 2 {
		return v.styles.Subtitle.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
	}
	return v.styles.Normal.Render(line)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Path returns the page path being shown.
func (v *View) Path() string {
	return v.path
}

// Resolution returns the current resolution.
func (v *View) Resolution() *domain.Resolution {
	return v.resolution
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
