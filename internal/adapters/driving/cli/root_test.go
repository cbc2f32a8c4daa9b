package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// --- Mock implementations ---

type mockSiteService struct {
	cfg *domain.SiteConfig
	err error
}

func (m *mockSiteService) Get(_ context.Context) (*domain.SiteConfig, error) {
	return m.cfg, m.err
}

func (m *mockSiteService) Reload(ctx context.Context) (*domain.SiteConfig, error) {
	return m.Get(ctx)
}

func (m *mockSiteService) Source() string {
	return "site.toml"
}

type mockValidationService struct {
	report *domain.Report
	opts   domain.ValidateOptions
}

func (m *mockValidationService) Validate(_ context.Context, _ *domain.SiteConfig, opts domain.ValidateOptions) (*domain.Report, error) {
	m.opts = opts
	if m.report == nil {
		return &domain.Report{}, nil
	}
	return m.report, nil
}

type mockExportService struct {
	format domain.ExportFormat
}

func (m *mockExportService) Export(_ context.Context, format domain.ExportFormat) ([]byte, error) {
	m.format = format
	return []byte(`{"title": "MARL Docs"}` + "\n"), nil
}

type mockNavigationService struct{}

func (m *mockNavigationService) LocaleFor(_ context.Context, _ string) (string, error) {
	return "en", nil
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
	if path == "/fr/" {
		return nil, domain.ErrUnknownLocale
	}
	return &domain.Resolution{
		Path:          path,
		Locale:        "en",
		Lang:          "en-US",
		Nav:           []domain.NavItem{{Text: "Games", Link: "/en/games/tag"}},
		SidebarPrefix: "/en/games/",
		Pager: domain.Pager{
			Next: &domain.PageLink{Label: "Next page", Text: "Keep-away", Link: "/en/games/push"},
		},
		EditURL:  "https://github.com/example/docs/edit/main/docs/en/games/tag.md",
		EditText: "Edit this page",
	}, nil
}

type mockSearchService struct {
	indexed int
	query   string
	opts    domain.SearchOptions
}

func (m *mockSearchService) Index(_ context.Context) (int, error) {
	m.indexed++
	return 5, nil
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.query, m.opts = query, opts
	return []domain.SearchResult{{
		Section: domain.Section{Locale: "en", Route: "/en/games/tag", Anchor: "reward", PageTitle: "Predator-prey", Heading: "Reward"},
		Score:   2.5,
		Snippet: "Predators are [rewarded] for every collision.",
	}}, nil
}

type mockSettingsService struct {
	settings domain.ToolSettings
	setKey   string
	setValue string
}

func (m *mockSettingsService) Get() (*domain.ToolSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if key != "site.file" && key != "content.dir" && key != "data.dir" && key != keyGitHubToken {
		return domain.ErrInvalidInput
	}
	m.setKey, m.setValue = key, value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"site.file", "content.dir", "data.dir", keyGitHubToken}
}

func (m *mockSettingsService) Path() string {
	return "/home/test/.docsite/config.toml"
}

func testSite() *domain.SiteConfig {
	return &domain.SiteConfig{
		Title:       "MARL Docs",
		Description: "Multi-agent games",
		Search:      domain.SearchConfig{Provider: domain.SearchProviderLocal},
		Locales: map[string]domain.LocaleConfig{
			"zh": {Label: "简体中文", Lang: "zh-CN", Link: "/"},
			"en": {
				Label: "English",
				Lang:  "en-US",
				Link:  "/en/",
				ThemeConfig: domain.ThemeConfig{
					Nav: []domain.NavItem{{Text: "Games", Link: "/en/games/tag"}},
					Sidebar: map[string][]domain.SidebarGroup{
						"/en/games/": {{
							Text:  "Games",
							Items: []domain.SidebarItem{{Text: "Predator-prey", Link: "/en/games/tag"}},
						}},
					},
				},
			},
		},
	}
}

// testMocks exposes the mocks installed by setupTestServices.
type testMocks struct {
	validation *mockValidationService
	export     *mockExportService
	search     *mockSearchService
	settings   *mockSettingsService
}

var mocks testMocks

// setupTestServices installs mock services and returns a cleanup function
// that restores the package state.
func setupTestServices() func() {
	mocks = testMocks{
		validation: &mockValidationService{},
		export:     &mockExportService{},
		search:     &mockSearchService{},
		settings:   &mockSettingsService{settings: domain.DefaultToolSettings()},
	}
	siteService = &mockSiteService{cfg: testSite()}
	validationService = mocks.validation
	exportService = mocks.export
	navigationService = &mockNavigationService{}
	searchService = mocks.search
	watchService = nil
	settingsService = mocks.settings

	return func() {
		siteService = nil
		validationService = nil
		exportService = nil
		navigationService = nil
		searchService = nil
		watchService = nil
		settingsService = nil
		closeServices = nil
		wire = nil
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "docsite", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)

	for _, name := range []string{"site", "content", "no-persist", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}

	want := []string{"check", "export", "index", "mcp", "nav", "resolve", "search", "settings", "show", "tui", "version", "watch"}
	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}
	assert.Subset(t, got, want)
}

func TestEnsureServices_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	siteService = nil

	_, err := execute(t, "show")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestEnsureServices_WiresOnce(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	siteService = nil
	mocks.settings.settings = domain.ToolSettings{SiteFile: "stored.toml", ContentDir: "docs", DataDir: "/data"}

	var calls int
	var got Options
	SetWireFunc(func(_ context.Context, opts Options) (*Services, error) {
		calls++
		got = opts
		return &Services{
			Site:       &mockSiteService{cfg: testSite()},
			Validation: mocks.validation,
			Export:     mocks.export,
			Navigation: &mockNavigationService{},
			Search:     mocks.search,
		}, nil
	})

	_, err := execute(t, "show", "--content", "src")
	require.NoError(t, err)
	_, err = execute(t, "show")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, Options{SiteFile: "stored.toml", ContentDir: "src", DataDir: "/data"}, got)
}

func TestEnsureServices_WireError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	siteService = nil
	loadErr := &domain.ConfigLoadError{Source: "site.toml", Line: 3, Err: domain.ErrUnknownField}
	SetWireFunc(func(context.Context, Options) (*Services, error) {
		return nil, loadErr
	})

	_, err := execute(t, "nav")

	assert.ErrorIs(t, err, domain.ErrConfigLoad)
}

func TestResolveOptions(t *testing.T) {
	tests := []struct {
		name     string
		settings driving.SettingsService
		site     string
		content  string
		want     Options
	}{
		{
			name:    "no settings service",
			site:    "site.yaml",
			content: "docs",
			want:    Options{SiteFile: "site.yaml", ContentDir: "docs"},
		},
		{
			name:     "settings fill empty flags",
			settings: &mockSettingsService{settings: domain.ToolSettings{SiteFile: "a.toml", ContentDir: "docs", DataDir: "/d"}},
			want:     Options{SiteFile: "a.toml", ContentDir: "docs", DataDir: "/d"},
		},
		{
			name:     "flags override settings",
			settings: &mockSettingsService{settings: domain.ToolSettings{SiteFile: "a.toml", ContentDir: "docs"}},
			site:     "b.json",
			content:  "src",
			want:     Options{SiteFile: "b.json", ContentDir: "src"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()
			settingsService = tt.settings
			siteFile, contentDir = tt.site, tt.content

			got, err := resolveOptions()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute_ClosesServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	closed := false
	closeServices = func() error {
		closed = true
		return errors.New("already closed")
	}
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := Execute(context.Background())

	assert.NoError(t, err)
	assert.True(t, closed)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
