package domain

import (
	"path"
	"strings"
)

// UnderRoot reports whether target lies under the locale root.
// Roots end in "/", so "/en/" does not claim "/english".
func UnderRoot(target, root string) bool {
	if root == "" || target == "" {
		return false
	}
	if target == strings.TrimSuffix(root, "/") {
		return true
	}
	return strings.HasPrefix(target, root)
}

// NormalizeRoute strips query strings, fragments and the .md/.html suffix
// and makes the route absolute.
func NormalizeRoute(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	for _, ext := range []string{".md", ".html"} {
		route = strings.TrimSuffix(route, ext)
	}
	if strings.HasSuffix(route, "/index") {
		route = strings.TrimSuffix(route, "index")
	}
	return route
}

// RouteForFile maps a content file path relative to the content root
// ("en/guide/intro.md") to the route it is served at ("/en/guide/intro").
// Index files map to their directory route ("/en/guide/").
func RouteForFile(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(rel, "\\", "/")), "/")
	rel = strings.TrimSuffix(rel, ".md")
	if rel == "index" {
		return "/"
	}
	if strings.HasSuffix(rel, "/index") {
		return "/" + strings.TrimSuffix(rel, "index")
	}
	return "/" + rel
}

// FileForRoute is the inverse of RouteForFile.
func FileForRoute(route string) string {
	route = NormalizeRoute(route)
	if strings.HasSuffix(route, "/") {
		return strings.TrimPrefix(route, "/") + "index.md"
	}
	return strings.TrimPrefix(route, "/") + ".md"
}

// CanonicalRoute normalises route and writes a locale root given without
// its trailing slash ("/en") as the root itself ("/en/"), so it maps to
// the root's index file.
func (c *SiteConfig) CanonicalRoute(route string) string {
	route = NormalizeRoute(route)
	if strings.HasSuffix(route, "/") {
		return route
	}
	for _, loc := range c.Locales {
		if loc.Link != "/" && route == strings.TrimSuffix(loc.Link, "/") {
			return route + "/"
		}
	}
	return route
}
