package locales

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsite/internal/core/domain"
)

// mockSiteService implements driving.SiteService for testing.
type mockSiteService struct {
	cfg      *domain.SiteConfig
	err      error
	reloaded bool
}

func (m *mockSiteService) Get(_ context.Context) (*domain.SiteConfig, error) {
	return m.cfg, m.err
}

func (m *mockSiteService) Reload(_ context.Context) (*domain.SiteConfig, error) {
	m.reloaded = true
	return m.cfg, m.err
}

func (m *mockSiteService) Source() string {
	return "mock"
}

func testSite() *domain.SiteConfig {
	return &domain.SiteConfig{
		Title: "MARL Docs",
		Locales: map[string]domain.LocaleConfig{
			"en": {Label: "English", Lang: "en-US", Link: "/en/"},
			"zh": {Label: "简体中文", Lang: "zh-CN", Link: "/"},
		},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedView(t *testing.T) *View {
	t.Helper()
	view := NewView(styles.PlainStyles(), &mockSiteService{cfg: testSite()})
	view.Update(view.Init()())
	require.Len(t, view.Locales(), 2)
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Empty(t, view.Locales())
	assert.Equal(t, 0, view.SelectedIndex())
	assert.False(t, view.ready)
}

func TestView_Init_LoadsInRootOrder(t *testing.T) {
	view := NewView(nil, &mockSiteService{cfg: testSite()})

	cmd := view.Init()
	require.NotNil(t, cmd)
	assert.True(t, view.loading)

	loaded, ok := cmd().(messages.LocalesLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, "MARL Docs", loaded.Title)
	require.Len(t, loaded.Locales, 2)
	assert.Equal(t, messages.Locale{Code: "zh", Label: "简体中文", Lang: "zh-CN", Link: "/"}, loaded.Locales[0])
	assert.Equal(t, "en", loaded.Locales[1].Code)
}

func TestView_Init_Errors(t *testing.T) {
	tests := []struct {
		name    string
		view    *View
		wantErr error
	}{
		{"no service", NewView(nil, nil), ErrNoSiteService},
		{"load failure", NewView(nil, &mockSiteService{err: domain.ErrConfigLoad}), domain.ErrConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, ok := tt.view.Init()().(messages.LocalesLoaded)
			require.True(t, ok)
			assert.ErrorIs(t, loaded.Err, tt.wantErr)

			tt.view.Update(loaded)
			assert.ErrorIs(t, tt.view.Err(), tt.wantErr)
			assert.False(t, tt.view.loading)
		})
	}
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestView_Update_Navigation(t *testing.T) {
	view := loadedView(t)

	view.Update(runes("k"))
	assert.Equal(t, 0, view.SelectedIndex())

	view.Update(runes("j"))
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_EnterSelectsLocale(t *testing.T) {
	view := loadedView(t)
	view.Update(runes("j"))

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.LocaleSelected)
	require.True(t, ok)
	assert.Equal(t, "en", selected.Code)
}

func TestView_Update_EnterWithoutLocales(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_Update_ReloadUsesSiteReload(t *testing.T) {
	svc := &mockSiteService{cfg: testSite()}
	view := NewView(nil, svc)

	_, cmd := view.Update(runes("r"))

	require.NotNil(t, cmd)
	assert.True(t, view.loading)
	_, ok := cmd().(messages.LocalesLoaded)
	require.True(t, ok)
	assert.True(t, svc.reloaded)
}

func TestView_Update_LoadedClampsSelection(t *testing.T) {
	view := loadedView(t)
	view.Update(runes("j"))

	view.Update(messages.LocalesLoaded{Locales: []messages.Locale{{Code: "zh", Link: "/"}}})

	assert.Equal(t, 0, view.SelectedIndex())
	assert.NoError(t, view.Err())
}

func TestView_View(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		view := NewView(styles.PlainStyles(), &mockSiteService{cfg: testSite()})
		view.Init()
		assert.Contains(t, view.View(), "Loading configuration...")
	})

	t.Run("error", func(t *testing.T) {
		view := NewView(styles.PlainStyles(), nil)
		view.Update(messages.LocalesLoaded{Err: errors.New("site.toml:3: unknown field")})
		assert.Contains(t, view.View(), "Error: site.toml:3: unknown field")
	})

	t.Run("empty", func(t *testing.T) {
		view := NewView(styles.PlainStyles(), nil)
		view.Update(messages.LocalesLoaded{})
		assert.Contains(t, view.View(), "No locales configured.")
	})

	t.Run("list", func(t *testing.T) {
		view := loadedView(t)
		output := view.View()

		assert.Contains(t, output, "MARL Docs · Locales")
		assert.Contains(t, output, "> [zh]")
		assert.Contains(t, output, "简体中文")
		assert.Contains(t, output, "[en]")
		assert.Contains(t, output, "/en/")
		assert.Contains(t, output, "[r] reload")
	})
}

func TestLoadedFrom(t *testing.T) {
	loaded := LoadedFrom(testSite())

	assert.Equal(t, "MARL Docs", loaded.Title)
	require.Len(t, loaded.Locales, 2)
	assert.Equal(t, "/", loaded.Locales[0].Link)
	assert.Equal(t, "/en/", loaded.Locales[1].Link)
}
