package domain

import (
	"sort"
	"strings"
)

// SiteConfig is the declarative configuration of the documentation site.
// It is loaded once and never mutated afterwards; callers that need to
// change a value work on a Clone.
type SiteConfig struct {
	// Title is the site title shown in the navigation bar and <title>.
	Title string `json:"title" toml:"title" yaml:"title"`

	// Description is the default meta description.
	Description string `json:"description" toml:"description" yaml:"description"`

	// Base is the public base path the site is deployed under.
	Base string `json:"base" toml:"base" yaml:"base"`

	// Head lists the <link> icons injected into every page, in order.
	Head []HeadIcon `json:"head,omitempty" toml:"head,omitempty" yaml:"head,omitempty"`

	// Locales maps a locale code to its self-contained configuration.
	Locales map[string]LocaleConfig `json:"locales" toml:"locales" yaml:"locales"`

	// ThemeConfig holds theme options shared by every locale.
	ThemeConfig ThemeConfig `json:"themeConfig" toml:"themeConfig" yaml:"themeConfig"`

	// Search selects and configures the search provider.
	Search SearchConfig `json:"search" toml:"search" yaml:"search"`

	// LastUpdated shows the last updated timestamp of each page.
	LastUpdated bool `json:"lastUpdated" toml:"lastUpdated" yaml:"lastUpdated"`

	// CleanURLs drops the .html suffix from generated URLs.
	CleanURLs bool `json:"cleanUrls" toml:"cleanUrls" yaml:"cleanUrls"`

	// Markdown holds Markdown rendering options.
	Markdown MarkdownConfig `json:"markdown" toml:"markdown" yaml:"markdown"`
}

// HeadIcon is a (rel, href) pair rendered as a <link> element.
type HeadIcon struct {
	Rel  string `json:"rel" toml:"rel" yaml:"rel"`
	Href string `json:"href" toml:"href" yaml:"href"`
}

// LocaleConfig is one language variant of the site.
type LocaleConfig struct {
	// Label is the name shown in the language switcher.
	Label string `json:"label" toml:"label" yaml:"label"`

	// Lang is the BCP 47 language tag written to <html lang>.
	Lang string `json:"lang" toml:"lang" yaml:"lang"`

	// Link is the root path of the locale; every page of the locale lives under it.
	Link string `json:"link" toml:"link" yaml:"link"`

	// ThemeConfig holds the translated navigation of the locale.
	ThemeConfig ThemeConfig `json:"themeConfig" toml:"themeConfig" yaml:"themeConfig"`
}

// ThemeConfig holds navigation, sidebars and theme labels.
type ThemeConfig struct {
	Logo        string                    `json:"logo,omitempty" toml:"logo,omitempty" yaml:"logo,omitempty"`
	Nav         []NavItem                 `json:"nav,omitempty" toml:"nav,omitempty" yaml:"nav,omitempty"`
	Sidebar     map[string][]SidebarGroup `json:"sidebar,omitempty" toml:"sidebar,omitempty" yaml:"sidebar,omitempty"`
	SocialLinks []SocialLink              `json:"socialLinks,omitempty" toml:"socialLinks,omitempty" yaml:"socialLinks,omitempty"`
	Footer      *Footer                   `json:"footer,omitempty" toml:"footer,omitempty" yaml:"footer,omitempty"`
	EditLink    *EditLink                 `json:"editLink,omitempty" toml:"editLink,omitempty" yaml:"editLink,omitempty"`
	Outline     *Outline                  `json:"outline,omitempty" toml:"outline,omitempty" yaml:"outline,omitempty"`
	DocFooter   *DocFooter                `json:"docFooter,omitempty" toml:"docFooter,omitempty" yaml:"docFooter,omitempty"`

	LastUpdatedText     string `json:"lastUpdatedText,omitempty" toml:"lastUpdatedText,omitempty" yaml:"lastUpdatedText,omitempty"`
	ReturnToTopLabel    string `json:"returnToTopLabel,omitempty" toml:"returnToTopLabel,omitempty" yaml:"returnToTopLabel,omitempty"`
	SidebarMenuLabel    string `json:"sidebarMenuLabel,omitempty" toml:"sidebarMenuLabel,omitempty" yaml:"sidebarMenuLabel,omitempty"`
	DarkModeSwitchLabel string `json:"darkModeSwitchLabel,omitempty" toml:"darkModeSwitchLabel,omitempty" yaml:"darkModeSwitchLabel,omitempty"`
}

// NavItem is a top navigation bar entry.
type NavItem struct {
	Text string `json:"text" toml:"text" yaml:"text"`
	Link string `json:"link" toml:"link" yaml:"link"`
}

// SidebarGroup is a labelled, ordered cluster of page links.
type SidebarGroup struct {
	Text      string        `json:"text" toml:"text" yaml:"text"`
	Collapsed bool          `json:"collapsed,omitempty" toml:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Items     []SidebarItem `json:"items" toml:"items" yaml:"items"`
}

// SidebarItem is a single page link inside a sidebar group.
type SidebarItem struct {
	Text string `json:"text" toml:"text" yaml:"text"`
	Link string `json:"link" toml:"link" yaml:"link"`
}

// SocialLink is an icon link in the navigation bar.
type SocialLink struct {
	Icon string `json:"icon" toml:"icon" yaml:"icon"`
	Link string `json:"link" toml:"link" yaml:"link"`
}

// Footer is the site footer.
type Footer struct {
	Message   string `json:"message" toml:"message" yaml:"message"`
	Copyright string `json:"copyright" toml:"copyright" yaml:"copyright"`
}

// EditLink points readers at the source of a page.
// Pattern must contain the :path placeholder.
type EditLink struct {
	Pattern string `json:"pattern" toml:"pattern" yaml:"pattern"`
	Text    string `json:"text" toml:"text" yaml:"text"`
}

// Outline configures the on-page table of contents.
type Outline struct {
	Label string `json:"label" toml:"label" yaml:"label"`
	Level []int  `json:"level" toml:"level" yaml:"level"`
}

// Levels returns the inclusive heading range, defaulting to [2, 2].
func (o *Outline) Levels() (int, int) {
	if o == nil || len(o.Level) == 0 {
		return 2, 2
	}
	if len(o.Level) == 1 {
		return o.Level[0], o.Level[0]
	}
	return o.Level[0], o.Level[1]
}

// DocFooter holds the labels of the previous/next page links.
type DocFooter struct {
	Prev string `json:"prev" toml:"prev" yaml:"prev"`
	Next string `json:"next" toml:"next" yaml:"next"`
}

// MarkdownConfig holds Markdown rendering switches.
type MarkdownConfig struct {
	LineNumbers      bool `json:"lineNumbers" toml:"lineNumbers" yaml:"lineNumbers"`
	ImageLazyLoading bool `json:"imageLazyLoading" toml:"imageLazyLoading" yaml:"imageLazyLoading"`
}

// LocaleCodes returns the locale codes ordered by root path, then code.
// The locale served at "/" therefore always comes first.
func (c *SiteConfig) LocaleCodes() []string {
	codes := make([]string, 0, len(c.Locales))
	for code := range c.Locales {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		li, lj := c.Locales[codes[i]].Link, c.Locales[codes[j]].Link
		if li != lj {
			return li < lj
		}
		return codes[i] < codes[j]
	})
	return codes
}

// LocaleFor returns the locale whose root path is the longest prefix of path.
func (c *SiteConfig) LocaleFor(path string) (string, bool) {
	best, bestLen := "", -1
	for code, loc := range c.Locales {
		if UnderRoot(path, loc.Link) && len(loc.Link) > bestLen {
			best, bestLen = code, len(loc.Link)
		}
	}
	return best, bestLen >= 0
}

// SidebarPrefixes returns the sidebar keys of a theme, longest first.
func (t *ThemeConfig) SidebarPrefixes() []string {
	prefixes := make([]string, 0, len(t.Sidebar))
	for p := range t.Sidebar {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}

// Links returns every link target of the theme in display order:
// nav items first, then sidebar items ordered by prefix.
func (t *ThemeConfig) Links() []string {
	var links []string
	for _, item := range t.Nav {
		links = append(links, item.Link)
	}
	prefixes := t.SidebarPrefixes()
	sort.Strings(prefixes)
	for _, p := range prefixes {
		for _, g := range t.Sidebar[p] {
			for _, item := range g.Items {
				links = append(links, item.Link)
			}
		}
	}
	return links
}

// ResolvedTheme merges the site-wide theme with a locale theme.
// Locale values win; unset locale values fall back to the site-wide ones.
func (c *SiteConfig) ResolvedTheme(code string) (ThemeConfig, error) {
	loc, ok := c.Locales[code]
	if !ok {
		return ThemeConfig{}, ErrUnknownLocale
	}
	out := c.ThemeConfig.Clone()
	lt := loc.ThemeConfig.Clone()

	if lt.Logo != "" {
		out.Logo = lt.Logo
	}
	if len(lt.Nav) > 0 {
		out.Nav = lt.Nav
	}
	if len(lt.Sidebar) > 0 {
		out.Sidebar = lt.Sidebar
	}
	if len(lt.SocialLinks) > 0 {
		out.SocialLinks = lt.SocialLinks
	}
	if lt.Footer != nil {
		out.Footer = lt.Footer
	}
	if lt.EditLink != nil {
		out.EditLink = lt.EditLink
	}
	if lt.Outline != nil {
		out.Outline = lt.Outline
	}
	if lt.DocFooter != nil {
		out.DocFooter = lt.DocFooter
	}
	out.LastUpdatedText = firstNonEmpty(lt.LastUpdatedText, out.LastUpdatedText)
	out.ReturnToTopLabel = firstNonEmpty(lt.ReturnToTopLabel, out.ReturnToTopLabel)
	out.SidebarMenuLabel = firstNonEmpty(lt.SidebarMenuLabel, out.SidebarMenuLabel)
	out.DarkModeSwitchLabel = firstNonEmpty(lt.DarkModeSwitchLabel, out.DarkModeSwitchLabel)
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
