package search

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsite/internal/core/domain"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	query   string
	opts    domain.SearchOptions
}

func (m *mockSearchService) Index(_ context.Context) (int, error) {
	return len(m.results), nil
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.query, m.opts = query, opts
	return m.results, m.err
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{Section: domain.Section{Locale: "en", Route: "/en/games/tag", Anchor: "reward", PageTitle: "Predator-prey", Heading: "Reward"}, Score: 2.1},
		{Section: domain.Section{Locale: "en", Route: "/en/games/push", PageTitle: "Keep-away"}, Score: 1.4},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeQuery(v *View, q string) {
	for _, r := range q {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// submit types q, presses enter and feeds the result back.
func submit(t *testing.T, v *View, q string) {
	t.Helper()
	typeQuery(v, q)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.True(t, view.InputFocused())
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Locale())
	assert.Equal(t, 80, view.Width())
	assert.Equal(t, 24, view.Height())
	assert.NotNil(t, view.Init())
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Search(t *testing.T) {
	svc := &mockSearchService{results: sampleResults()}
	view := NewView(styles.PlainStyles(), nil, svc)
	view.SetDimensions(100, 40)

	submit(t, view, "reward")

	assert.Equal(t, "reward", svc.query)
	assert.Equal(t, "", svc.opts.Locale)
	assert.False(t, view.InputFocused())
	assert.Len(t, view.Results(), 2)
	assert.NoError(t, view.Err())
	assert.Equal(t, status.StateResults, view.statusbar.State())

	output := view.View()
	assert.Contains(t, output, "docsite · Search")
	assert.Contains(t, output, "Results (2)")
	assert.Contains(t, output, "/en/games/tag#reward")
	assert.Contains(t, output, "2 results")
}

func TestView_Search_EmptyQueryIgnored(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, view.InputFocused())
}

func TestView_Search_Errors(t *testing.T) {
	t.Run("no service", func(t *testing.T) {
		view := NewView(styles.PlainStyles(), nil, nil)
		view.SetDimensions(100, 40)

		submit(t, view, "tag")

		assert.ErrorIs(t, view.Err(), ErrNoSearchService)
		assert.Equal(t, status.StateError, view.statusbar.State())
	})

	t.Run("service failure", func(t *testing.T) {
		view := NewView(styles.PlainStyles(), nil, &mockSearchService{err: domain.ErrSearchUnavailable})
		view.SetDimensions(100, 40)

		submit(t, view, "tag")

		assert.ErrorIs(t, view.Err(), domain.ErrSearchUnavailable)
		assert.Contains(t, view.View(), "Error: ")
	})
}

func TestView_LocaleFilter(t *testing.T) {
	svc := &mockSearchService{}
	view := NewView(styles.PlainStyles(), nil, svc)
	view.SetDimensions(100, 40)
	view.SetLocales([]string{"zh", "en"})

	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "zh", view.Locale())
	assert.Contains(t, view.View(), "Search [zh]: ")

	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "en", view.Locale())

	submit(t, view, "reward")
	assert.Equal(t, "en", svc.opts.Locale)

	// Wraps back to all locales.
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "", view.Locale())
}

func TestView_SetLocales_ResetsStaleFilter(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetLocales([]string{"zh", "en"})
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	view.Update(tea.KeyMsg{Type: tea.KeyTab})

	view.SetLocales([]string{"zh"})

	assert.Equal(t, "", view.Locale())
}

func TestView_ResultsMode(t *testing.T) {
	view := NewView(styles.PlainStyles(), nil, &mockSearchService{results: sampleResults()})
	view.SetDimensions(100, 40)
	submit(t, view, "tag")

	view.Update(runes("j"))
	assert.Equal(t, 1, view.SelectedIndex())
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.PageSelected)
	require.True(t, ok)
	assert.Equal(t, "/en/games/push", selected.Path)
}

func TestView_ResultsMode_EnterWithoutResults(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{})
	view.SetDimensions(100, 40)
	submit(t, view, "nothing")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_NewSearch(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{results: sampleResults()})
	view.SetDimensions(100, 40)
	submit(t, view, "tag")

	view.Update(runes("n"))

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Query())
	// Results stay until the next search completes.
	assert.Len(t, view.Results(), 2)
}

func TestView_InputModeCapturesKeys(t *testing.T) {
	view := NewView(nil, nil, nil)

	typeQuery(view, "jkn")

	assert.Equal(t, "jkn", view.Query())
	assert.True(t, view.InputFocused())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(messages.ErrorOccurred{Err: domain.ErrConfigLoad})

	assert.ErrorIs(t, view.Err(), domain.ErrConfigLoad)

	view.ClearError()
	assert.NoError(t, view.Err())
	assert.Equal(t, status.StateReady, view.statusbar.State())
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, &mockSearchService{results: sampleResults()})
	view.SetDimensions(100, 40)
	view.SetLocales([]string{"en"})
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	submit(t, view, "tag")

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Query())
	assert.Empty(t, view.Results())
	assert.NoError(t, view.Err())
	assert.Equal(t, "en", view.Locale())
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.True(t, view.Ready())
	assert.Equal(t, 120, view.Width())
	assert.Equal(t, 50, view.Height())
	assert.Equal(t, 120, view.statusbar.Width())
}

func TestView_SetQuery(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.SetQuery("keep-away")

	assert.Equal(t, "keep-away", view.Query())
	assert.Nil(t, view.SelectedResult())
}
