package page

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsite/internal/core/domain"
)

// mockNavigationService implements driving.NavigationService for testing.
type mockNavigationService struct {
	resolutions map[string]*domain.Resolution
	paths       []string
}

func (m *mockNavigationService) LocaleFor(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (m *mockNavigationService) Nav(_ context.Context, _ string) ([]domain.NavItem, error) {
	return nil, nil
}

func (m *mockNavigationService) SidebarFor(_ context.Context, _ string) (string, []domain.SidebarGroup, error) {
	return "", nil, nil
}

func (m *mockNavigationService) Pager(_ context.Context, _ string) (domain.Pager, error) {
	return domain.Pager{}, nil
}

func (m *mockNavigationService) EditURL(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (m *mockNavigationService) Resolve(_ context.Context, path string) (*domain.Resolution, error) {
	m.paths = append(m.paths, path)
	res, ok := m.resolutions[path]
	if !ok {
		return nil, domain.ErrUnknownLocale
	}
	return res, nil
}

func sidebar() []domain.SidebarGroup {
	return []domain.SidebarGroup{{Text: "Games", Items: []domain.SidebarItem{
		{Text: "Predator-prey", Link: "/en/games/tag"},
		{Text: "Keep-away", Link: "/en/games/push"},
	}}}
}

func testNavigation() *mockNavigationService {
	return &mockNavigationService{resolutions: map[string]*domain.Resolution{
		"/en/games/tag": {
			Path: "/en/games/tag", Locale: "en", Lang: "en-US",
			Nav:           []domain.NavItem{{Text: "Games", Link: "/en/games/"}},
			SidebarPrefix: "/en/games/",
			Sidebar:       sidebar(),
			Pager: domain.Pager{
				Next: &domain.PageLink{Label: "Next page", Text: "Keep-away", Link: "/en/games/push"},
			},
			EditURL:  "https://github.com/marl/docs/edit/main/docs/en/games/tag.md",
			EditText: "Edit this page",
		},
		"/en/games/push": {
			Path: "/en/games/push", Locale: "en", Lang: "en-US",
			SidebarPrefix: "/en/games/",
			Sidebar:       sidebar(),
			Pager: domain.Pager{
				Prev: &domain.PageLink{Label: "Previous page", Text: "Predator-prey", Link: "/en/games/tag"},
			},
		},
	}}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openView(t *testing.T, nav *mockNavigationService, path string) *View {
	t.Helper()
	view := NewView(styles.PlainStyles(), nav)
	view.SetDimensions(100, 40)
	cmd := view.SetPath(path, messages.ViewSidebar)
	require.NotNil(t, cmd)
	view.Update(cmd())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.Init())
	assert.Nil(t, view.Resolution())
	assert.Contains(t, view.View(), "No page selected")
}

func TestView_SetPath_Resolves(t *testing.T) {
	view := openView(t, testNavigation(), "/en/games/tag")

	require.NoError(t, view.Err())
	require.NotNil(t, view.Resolution())
	assert.Equal(t, "/en/games/tag", view.Path())
	assert.Equal(t, "en", view.Resolution().Locale)
	assert.False(t, view.loading)
}

func TestView_SetPath_Errors(t *testing.T) {
	t.Run("no service", func(t *testing.T) {
		view := NewView(styles.PlainStyles(), nil)
		view.Update(view.SetPath("/en/", messages.ViewSearch)())

		assert.ErrorIs(t, view.Err(), ErrNoNavigationService)
	})

	t.Run("resolve failure", func(t *testing.T) {
		view := openView(t, testNavigation(), "/fr/")

		assert.ErrorIs(t, view.Err(), domain.ErrUnknownLocale)
		assert.Contains(t, view.View(), "Error: ")
	})
}

func TestView_Update_IgnoresStalePath(t *testing.T) {
	view := openView(t, testNavigation(), "/en/games/tag")

	view.Update(messages.PageResolved{Path: "/en/games/push", Err: domain.ErrUnknownLocale})

	assert.NoError(t, view.Err())
	assert.Equal(t, "/en/games/tag", view.Resolution().Path)
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := openView(t, testNavigation(), "/en/games/tag")

	view.Update(messages.ErrorOccurred{Err: domain.ErrConfigLoad})

	assert.ErrorIs(t, view.Err(), domain.ErrConfigLoad)
}

func TestView_Pager(t *testing.T) {
	nav := testNavigation()
	view := openView(t, nav, "/en/games/tag")

	// No previous page: nothing happens.
	_, cmd := view.Update(runes("p"))
	assert.Nil(t, cmd)

	_, cmd = view.Update(runes("n"))
	require.NotNil(t, cmd)
	assert.Contains(t, view.View(), "Resolving...")
	view.Update(cmd())
	assert.Equal(t, "/en/games/push", view.Path())
	assert.Equal(t, "/en/games/push", view.Resolution().Path)

	_, cmd = view.Update(runes("n"))
	assert.Nil(t, cmd)

	_, cmd = view.Update(runes("p"))
	require.NotNil(t, cmd)
	view.Update(cmd())
	assert.Equal(t, "/en/games/tag", view.Path())
	assert.Equal(t, []string{"/en/games/tag", "/en/games/push", "/en/games/tag"}, nav.paths)
}

func TestView_Update_EscReturnsToCaller(t *testing.T) {
	tests := []struct {
		name string
		back messages.ViewType
	}{
		{"from sidebar", messages.ViewSidebar},
		{"from search", messages.ViewSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil, testNavigation())
			view.SetPath("/en/games/tag", tt.back)

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

			require.NotNil(t, cmd)
			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.back, changed.View)
		})
	}
}

func TestView_Scroll(t *testing.T) {
	view := openView(t, testNavigation(), "/en/games/tag")
	view.SetDimensions(100, 10) // four lines visible

	view.Update(runes("k"))
	assert.Equal(t, 0, view.scrollOffset)

	for i := 0; i < 20; i++ {
		view.Update(runes("j"))
	}
	assert.Equal(t, view.maxScrollOffset(), view.scrollOffset)
	assert.Positive(t, view.scrollOffset)
	assert.Contains(t, view.View(), "[Line ")

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, view.maxScrollOffset()-1, view.scrollOffset)
}

func TestView_View(t *testing.T) {
	view := openView(t, testNavigation(), "/en/games/tag")

	output := view.View()

	assert.Contains(t, output, "Page /en/games/tag")
	assert.Contains(t, output, "Locale:    en (en-US)")
	assert.Contains(t, output, "Sidebar:   /en/games/")
	assert.Contains(t, output, "Previous:  none")
	assert.Contains(t, output, "Next:      Keep-away (Next page) /en/games/push")
	assert.Contains(t, output, "https://github.com/marl/docs/edit/main/docs/en/games/tag.md (Edit this page)")
	assert.Contains(t, output, "Navigation:")
	assert.Contains(t, output, "* Predator-prey: /en/games/tag")
	assert.Contains(t, output, "  Keep-away: /en/games/push")
}

func TestView_View_WithoutEditLink(t *testing.T) {
	view := openView(t, testNavigation(), "/en/games/push")

	output := view.View()

	assert.NotContains(t, output, "Edit:")
	assert.Contains(t, output, "Previous:  Predator-prey (Previous page) /en/games/tag")
}
