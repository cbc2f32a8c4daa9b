// Package domain defines the core entities of docsite.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SiteConfig: The declarative site configuration and its locales
//   - ThemeConfig: Navigation, sidebars and theme labels of one locale
//   - Report: The findings of a validation run
//   - Section: A searchable unit of a content page
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
