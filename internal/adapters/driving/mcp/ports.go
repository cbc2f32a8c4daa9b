package mcp

import (
	"github.com/custodia-labs/docsite/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Site serves the loaded configuration.
	Site driving.SiteService

	// Export renders the configuration resource. Optional; without it the
	// resource is plain JSON of the loaded value.
	Export driving.ExportService

	// Validation backs the validate tool.
	Validation driving.ValidationService

	// Navigation backs the resolve tool.
	Navigation driving.NavigationService

	// Search backs the search tool.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Site == nil {
		return ErrMissingSiteService
	}
	// The tool services are optional; their tools report errUnavailable.
	return nil
}
