// Package mcp provides an MCP (Model Context Protocol) server adapter for docsite.
// It lets AI assistants read the site configuration, resolve page navigation,
// run the validator and query the local search index.
package mcp

import "errors"

// ErrMissingSiteService is returned when the site service is not provided.
var ErrMissingSiteService = errors.New("mcp: site service is required")

// errUnavailable is returned by tools whose service is not configured.
var errUnavailable = errors.New("mcp: service not configured")
