package tui

import "errors"

// ErrMissingSiteService is returned when the site service is not provided.
var ErrMissingSiteService = errors.New("tui: site service is required")

// ErrMissingNavigationService is returned when the navigation service is not provided.
var ErrMissingNavigationService = errors.New("tui: navigation service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
