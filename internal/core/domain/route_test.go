package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnderRoot(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		root     string
		expected bool
	}{
		{"root claims everything", "/games/tag", "/", true},
		{"nested", "/en/games/tag", "/en/", true},
		{"root itself", "/en/", "/en/", true},
		{"root without slash", "/en", "/en/", true},
		{"sibling prefix", "/english", "/en/", false},
		{"other locale", "/games/tag", "/en/", false},
		{"empty target", "", "/", false},
		{"empty root", "/games/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnderRoot(tt.target, tt.root))
		})
	}
}

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"/games/tag", "/games/tag"},
		{"/games/tag.md", "/games/tag"},
		{"/games/tag.html#rewards", "/games/tag"},
		{"games/tag?x=1", "/games/tag"},
		{"/guide/index", "/guide/"},
		{"/index.md", "/"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, NormalizeRoute(tt.in))
		})
	}
}

func TestRouteForFile(t *testing.T) {
	tests := []struct {
		file, route string
	}{
		{"index.md", "/"},
		{"en/index.md", "/en/"},
		{"games/tag.md", "/games/tag"},
		{"en/guide/getting-started.md", "/en/guide/getting-started"},
		{"en/guide/index.md", "/en/guide/"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.route, RouteForFile(tt.file))
			assert.Equal(t, tt.file, FileForRoute(tt.route))
		})
	}
}

func TestSiteConfig_CanonicalRoute(t *testing.T) {
	cfg := &SiteConfig{Locales: map[string]LocaleConfig{
		"root": {Link: "/"},
		"en":   {Link: "/en/"},
	}}

	tests := []struct {
		route string
		want  string
		file  string
	}{
		{"/en", "/en/", "en/index.md"},
		{"/en/", "/en/", "en/index.md"},
		{"/en.md", "/en/", "en/index.md"},
		{"/en/games", "/en/games", "en/games.md"},
		{"/english", "/english", "english.md"},
		{"/", "/", "index.md"},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			got := cfg.CanonicalRoute(tt.route)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.file, FileForRoute(got))
		})
	}
}
