package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
	"github.com/custodia-labs/docsite/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// placeholderOwners are repository owners that indicate an unfilled template.
var placeholderOwners = map[string]bool{
	"your-org":      true,
	"your-name":     true,
	"your-username": true,
	"username":      true,
	"user":          true,
	"owner":         true,
	"org":           true,
	"example":       true,
}

// ValidationService checks site configurations.
type ValidationService struct {
	content driven.ContentStore
	repos   driven.RepoVerifier
}

// NewValidationService creates a validation service.
// Both parameters are optional; they are only needed for the content
// and remote checks.
func NewValidationService(content driven.ContentStore, repos driven.RepoVerifier) *ValidationService {
	return &ValidationService{
		content: content,
		repos:   repos,
	}
}

// Validate returns the findings for cfg.
func (s *ValidationService) Validate(
	ctx context.Context, cfg *domain.SiteConfig, opts domain.ValidateOptions,
) (*domain.Report, error) {
	if cfg == nil {
		return nil, fmt.Errorf("validate: nil configuration: %w", domain.ErrInvalidInput)
	}
	if opts.CheckContent && s.content == nil {
		return nil, fmt.Errorf("content check requested but no content directory is configured: %w", domain.ErrInvalidInput)
	}
	if opts.CheckRemote && s.repos == nil {
		return nil, fmt.Errorf("remote check requested but no repository verifier is configured: %w", domain.ErrInvalidInput)
	}

	logger.Section("Validation")
	report := &domain.Report{}

	checkLocaleRoots(report, cfg)
	themes := resolvedThemes(report, cfg)
	for _, code := range cfg.LocaleCodes() {
		theme, ok := themes[code]
		if !ok {
			continue
		}
		checkTargets(report, cfg, code, theme)
		checkSidebarNav(report, code, theme)
		checkOutline(report, code, theme.Outline)
		checkEditLink(report, code, theme.EditLink)
	}
	checkSidebarParity(report, cfg, themes)
	checkSearch(report, cfg)

	if opts.CheckContent {
		if err := s.checkContent(ctx, report, cfg, themes); err != nil {
			return nil, err
		}
	}
	if opts.CheckRemote {
		if err := s.checkRemote(ctx, report, cfg, themes); err != nil {
			return nil, err
		}
	}

	report.Sort()
	logger.Info("Validation finished: %d error(s), %d warning(s)", len(report.Errors()), len(report.Warnings()))
	return report, nil
}

// resolvedThemes merges the global theme into every locale.
func resolvedThemes(report *domain.Report, cfg *domain.SiteConfig) map[string]domain.ThemeConfig {
	themes := make(map[string]domain.ThemeConfig, len(cfg.Locales))
	for _, code := range cfg.LocaleCodes() {
		theme, err := cfg.ResolvedTheme(code)
		if err != nil {
			report.Errorf(domain.RuleLocaleRootFormat, code, "", "cannot resolve theme: %v", err)
			continue
		}
		themes[code] = theme
	}
	return themes
}

func checkLocaleRoots(report *domain.Report, cfg *domain.SiteConfig) {
	if len(cfg.Locales) == 0 {
		report.Errorf(domain.RuleLocaleRootFormat, "", "", "site defines no locales")
		return
	}

	owner := make(map[string]string, len(cfg.Locales))
	for _, code := range cfg.LocaleCodes() {
		link := cfg.Locales[code].Link
		if !strings.HasPrefix(link, "/") || !strings.HasSuffix(link, "/") {
			report.Errorf(domain.RuleLocaleRootFormat, code, link, "locale root must begin and end with \"/\"")
		}
		if other, dup := owner[link]; dup {
			report.Errorf(domain.RuleLocaleRootUnique, code, link, "root path already used by locale %q", other)
			continue
		}
		owner[link] = code
	}
}

// checkTargets enforces that every nav and sidebar link is non-empty, lies
// under the locale root and is not claimed by a more specific locale.
func checkTargets(report *domain.Report, cfg *domain.SiteConfig, code string, theme domain.ThemeConfig) {
	root := cfg.Locales[code].Link

	check := func(kind, text, link string) {
		if strings.TrimSpace(link) == "" {
			report.Errorf(domain.RuleTargetUnderRoot, code, "", "%s %q has an empty link", kind, text)
			return
		}
		if isExternal(link) {
			report.Warnf(domain.RuleTargetUnderRoot, code, link,
				"%s %q leaves the site; external links belong in socialLinks", kind, text)
			return
		}
		route := domain.NormalizeRoute(link)
		if !domain.UnderRoot(route, root) {
			report.Errorf(domain.RuleTargetUnderRoot, code, link, "%s %q is outside locale root %s", kind, text, root)
			return
		}
		if owner, ok := cfg.LocaleFor(route); ok && owner != code {
			report.Errorf(domain.RuleTargetUnderRoot, code, link, "%s %q belongs to locale %q", kind, text, owner)
		}
	}

	for _, item := range theme.Nav {
		check("nav item", item.Text, item.Link)
	}
	for _, prefix := range sortedPrefixes(theme) {
		if !domain.UnderRoot(prefix, root) {
			report.Errorf(domain.RuleTargetUnderRoot, code, prefix, "sidebar prefix is outside locale root %s", root)
		} else if owner, ok := cfg.LocaleFor(prefix); ok && owner != code {
			report.Errorf(domain.RuleTargetUnderRoot, code, prefix, "sidebar prefix belongs to locale %q", owner)
		}
		for _, group := range theme.Sidebar[prefix] {
			for _, item := range group.Items {
				check("sidebar item", item.Text, item.Link)
			}
		}
	}
}

// checkSidebarNav requires a nav entry leading into every sidebar section.
func checkSidebarNav(report *domain.Report, code string, theme domain.ThemeConfig) {
	for _, prefix := range sortedPrefixes(theme) {
		found := false
		for _, item := range theme.Nav {
			if isExternal(item.Link) || item.Link == "" {
				continue
			}
			if underPrefix(domain.NormalizeRoute(item.Link), prefix) {
				found = true
				break
			}
		}
		if !found {
			report.Errorf(domain.RuleSidebarNavConsistent, code, prefix, "no nav item leads into this sidebar section")
		}
	}
}

// checkSidebarParity compares the sidebar shape of every locale with the
// first locale. Prefixes are compared relative to the locale root.
func checkSidebarParity(report *domain.Report, cfg *domain.SiteConfig, themes map[string]domain.ThemeConfig) {
	codes := cfg.LocaleCodes()
	if len(codes) < 2 {
		return
	}

	shape := func(code string) map[string][]domain.SidebarGroup {
		root := cfg.Locales[code].Link
		out := make(map[string][]domain.SidebarGroup)
		for prefix, groups := range themes[code].Sidebar {
			out[strings.TrimPrefix(prefix, root)] = groups
		}
		return out
	}

	ref := codes[0]
	refShape := shape(ref)
	for _, code := range codes[1:] {
		cur := shape(code)
		for _, rel := range unionKeys(refShape, cur) {
			want, got := refShape[rel], cur[rel]
			prefix := cfg.Locales[code].Link + rel
			if len(want) != len(got) {
				report.Errorf(domain.RuleSidebarParity, code, prefix,
					"%d sidebar group(s), locale %q has %d", len(got), ref, len(want))
				continue
			}
			for i := range want {
				if len(want[i].Items) != len(got[i].Items) {
					report.Warnf(domain.RuleSidebarItemParity, code, prefix,
						"group %q has %d item(s), locale %q group %q has %d",
						got[i].Text, len(got[i].Items), ref, want[i].Text, len(want[i].Items))
				}
			}
		}
	}
}

func checkSearch(report *domain.Report, cfg *domain.SiteConfig) {
	p := cfg.Search.Provider
	if !p.IsValid() {
		names := make([]string, 0, len(domain.AllSearchProviders()))
		for _, sp := range domain.AllSearchProviders() {
			names = append(names, sp.String())
		}
		report.Errorf(domain.RuleSearchProvider, "", "", "unsupported search provider %q (supported: %s)", p, strings.Join(names, ", "))
		return
	}
	if p == domain.SearchProviderAlgolia {
		a := cfg.Search.Algolia
		if a == nil || a.AppID == "" || a.APIKey == "" || a.IndexName == "" {
			report.Errorf(domain.RuleSearchProvider, "", "", "algolia search requires appId, apiKey and indexName")
		}
	}
	for code := range cfg.Search.Locales {
		if _, ok := cfg.Locales[code]; !ok {
			report.Warnf(domain.RuleSearchProvider, code, "", "search strings for undefined locale")
		}
	}
}

func checkOutline(report *domain.Report, code string, o *domain.Outline) {
	if o == nil {
		return
	}
	if len(o.Level) == 0 || len(o.Level) > 2 {
		report.Errorf(domain.RuleOutlineLevel, code, "", "outline level must list one or two heading levels, got %d", len(o.Level))
		return
	}
	for _, l := range o.Level {
		if l < 1 || l > 6 {
			report.Errorf(domain.RuleOutlineLevel, code, "", "outline level %d is not a heading level (1-6)", l)
			return
		}
	}
	if lo, hi := o.Levels(); lo > hi {
		report.Errorf(domain.RuleOutlineLevel, code, "", "outline level range [%d, %d] is inverted", lo, hi)
	}
}

func checkEditLink(report *domain.Report, code string, e *domain.EditLink) {
	if e == nil {
		return
	}
	if !strings.Contains(e.Pattern, ":path") {
		report.Errorf(domain.RuleEditLinkPattern, code, e.Pattern, "edit link pattern must contain :path")
		return
	}
	u, err := url.Parse(e.Pattern)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		report.Errorf(domain.RuleEditLinkPattern, code, e.Pattern, "edit link pattern must be an absolute http(s) URL")
		return
	}
	if owner, _, ok := githubRepo(e.Pattern); ok && placeholderOwners[strings.ToLower(owner)] {
		report.Warnf(domain.RuleEditLinkPattern, code, e.Pattern, "repository owner %q looks like a placeholder", owner)
	}
}

func (s *ValidationService) checkContent(
	ctx context.Context, report *domain.Report, cfg *domain.SiteConfig, themes map[string]domain.ThemeConfig,
) error {
	logger.Debug("Checking link targets against %s", s.content.Root())
	for _, code := range cfg.LocaleCodes() {
		theme, ok := themes[code]
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		for _, link := range theme.Links() {
			if link == "" || isExternal(link) {
				continue
			}
			route := cfg.CanonicalRoute(link)
			if seen[route] {
				continue
			}
			seen[route] = true

			exists, err := s.content.Exists(ctx, route)
			if err != nil {
				return fmt.Errorf("checking %s: %w", route, err)
			}
			if !exists {
				report.Errorf(domain.RuleTargetExists, code, link, "no content document %s", domain.FileForRoute(route))
			}
		}
	}
	return nil
}

func (s *ValidationService) checkRemote(
	ctx context.Context, report *domain.Report, cfg *domain.SiteConfig, themes map[string]domain.ThemeConfig,
) error {
	verified := make(map[string]error)
	for _, code := range cfg.LocaleCodes() {
		theme, ok := themes[code]
		if !ok || theme.EditLink == nil {
			continue
		}
		pattern := theme.EditLink.Pattern
		owner, repo, ok := githubRepo(pattern)
		if !ok {
			report.Warnf(domain.RuleEditLinkRemote, code, pattern, "remote verification only supports github.com repositories")
			continue
		}

		key := owner + "/" + repo
		err, done := verified[key]
		if !done {
			logger.Debug("Verifying repository %s", key)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			err = s.repos.VerifyRepo(ctx, owner, repo)
			verified[key] = err
		}

		switch {
		case err == nil:
		case errors.Is(err, domain.ErrRepoNotFound):
			report.Errorf(domain.RuleEditLinkRemote, code, pattern, "repository %s does not exist", key)
		default:
			report.Warnf(domain.RuleEditLinkRemote, code, pattern, "could not verify repository %s: %v", key, err)
		}
	}
	return nil
}

// githubRepo extracts owner and repository from a github.com URL.
func githubRepo(raw string) (string, string, bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Host, "github.com") {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

func isExternal(link string) bool {
	for _, scheme := range []string{"http://", "https://", "mailto:", "//"} {
		if strings.HasPrefix(link, scheme) {
			return true
		}
	}
	return false
}

// underPrefix reports whether route lies in the sidebar section of prefix.
func underPrefix(route, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(route, prefix) || route == strings.TrimSuffix(prefix, "/")
	}
	return route == prefix || strings.HasPrefix(route, prefix+"/")
}

func sortedPrefixes(theme domain.ThemeConfig) []string {
	prefixes := make([]string, 0, len(theme.Sidebar))
	for p := range theme.Sidebar {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

func unionKeys(a, b map[string][]domain.SidebarGroup) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
