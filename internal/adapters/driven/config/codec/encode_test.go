package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

func sampleConfig() *domain.SiteConfig {
	return &domain.SiteConfig{
		Title: "Docs",
		Base:  "/",
		Head:  []domain.HeadIcon{{Rel: "icon", Href: "/favicon.ico"}},
		Locales: map[string]domain.LocaleConfig{
			"zh": {
				Label: "简体中文",
				Lang:  "zh-CN",
				Link:  "/",
				ThemeConfig: domain.ThemeConfig{
					Nav: []domain.NavItem{{Text: "指南", Link: "/guide/"}},
					Sidebar: map[string][]domain.SidebarGroup{
						"/guide/": {{Text: "指南", Items: []domain.SidebarItem{{Text: "开始", Link: "/guide/"}}}},
					},
					EditLink: &domain.EditLink{Pattern: "https://github.com/o/r/edit/main/docs/:path", Text: "编辑"},
					Outline:  &domain.Outline{Label: "目录", Level: []int{2, 3}},
				},
			},
			"en": {
				Label: "English",
				Lang:  "en-US",
				Link:  "/en/",
			},
		},
		Search:      domain.SearchConfig{Provider: domain.SearchProviderLocal},
		LastUpdated: true,
		CleanURLs:   true,
	}
}

func TestEncoders_RoundTrip(t *testing.T) {
	for _, enc := range Encoders() {
		t.Run(enc.Format().String(), func(t *testing.T) {
			want := sampleConfig()

			data, err := enc.Encode(want)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			got, err := Decode("roundtrip", enc.Format(), data)
			require.NoError(t, err)

			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncoders_Deterministic(t *testing.T) {
	for _, enc := range Encoders() {
		first, err := enc.Encode(sampleConfig())
		require.NoError(t, err)
		second, err := enc.Encode(sampleConfig())
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second), enc.Format().String())
	}
}

func TestJSONEncoder_DoesNotEscapeHTML(t *testing.T) {
	cfg := sampleConfig()
	cfg.ThemeConfig.Footer = &domain.Footer{Message: "<b>MIT</b> & more"}

	data, err := JSONEncoder{}.Encode(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<b>MIT</b> & more")
}

func TestEncoders_Formats(t *testing.T) {
	var formats []domain.ExportFormat
	for _, enc := range Encoders() {
		formats = append(formats, enc.Format())
	}
	assert.ElementsMatch(t, []domain.ExportFormat{
		domain.ExportFormatJSON,
		domain.ExportFormatYAML,
		domain.ExportFormatTOML,
	}, formats)
}
