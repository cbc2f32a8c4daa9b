// Package tui provides an interactive terminal browser for the site's
// locales, navigation and sidebars.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Site serves the loaded configuration.
	Site driving.SiteService

	// Navigation resolves the chrome of a page path.
	Navigation driving.NavigationService

	// Search provides the local search provider. Optional: the search
	// view reports the service as unavailable when nil.
	Search driving.SearchService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	site driving.SiteService,
	navigation driving.NavigationService,
	search driving.SearchService,
) *Ports {
	return &Ports{
		Site:       site,
		Navigation: navigation,
		Search:     search,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Site == nil {
		return ErrMissingSiteService
	}
	if p.Navigation == nil {
		return ErrMissingNavigationService
	}
	return nil
}
