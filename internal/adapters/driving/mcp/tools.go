package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"the search query to find page sections"`
	Locale string `json:"locale,omitempty" jsonschema:"restrict results to one locale code (default all locales)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	URL       string  `json:"url"`
	Locale    string  `json:"locale"`
	PageTitle string  `json:"page_title"`
	Heading   string  `json:"heading,omitempty"`
	Score     float64 `json:"score"`
	Snippet   string  `json:"snippet,omitempty"`
}

// ResolveInput is the input schema for the resolve tool.
type ResolveInput struct {
	Path string `json:"path" jsonschema:"a page path such as /en/games/tag"`
}

// ResolveOutput is the output schema for the resolve tool.
type ResolveOutput struct {
	Resolution domain.Resolution `json:"resolution"`
}

// ValidateInput is the input schema for the validate tool.
type ValidateInput struct {
	CheckContent bool `json:"check_content,omitempty" jsonschema:"also verify that link targets exist in the content directory"`
	CheckRemote  bool `json:"check_remote,omitempty" jsonschema:"also verify the edit link repository on GitHub"`
}

// ValidateOutput is the output schema for the validate tool.
type ValidateOutput struct {
	OK         bool               `json:"ok"`
	Errors     int                `json:"errors"`
	Warnings   int                `json:"warnings"`
	Violations []domain.Violation `json:"violations"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the documentation site's page sections",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve the locale, navigation, sidebar, pager and edit link of a page path",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate",
		Description: "Check the site configuration for schema and consistency violations",
	}, s.handleValidate)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if s.ports.Search == nil {
		return nil, SearchOutput{}, fmt.Errorf("search: %w", errUnavailable)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{Locale: input.Locale, Limit: limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		sec := results[i].Section
		output.Results[i] = SearchResultOutput{
			URL:       sec.URL(),
			Locale:    sec.Locale,
			PageTitle: sec.PageTitle,
			Heading:   sec.Heading,
			Score:     results[i].Score,
			Snippet:   results[i].Snippet,
		}
	}

	return nil, output, nil
}

// handleResolve handles the resolve tool invocation.
func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	if s.ports.Navigation == nil {
		return nil, ResolveOutput{}, fmt.Errorf("resolve: %w", errUnavailable)
	}

	res, err := s.ports.Navigation.Resolve(ctx, input.Path)
	if err != nil {
		return nil, ResolveOutput{}, err
	}
	return nil, ResolveOutput{Resolution: *res}, nil
}

// handleValidate handles the validate tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	if s.ports.Validation == nil {
		return nil, ValidateOutput{}, fmt.Errorf("validate: %w", errUnavailable)
	}

	cfg, err := s.ports.Site.Get(ctx)
	if err != nil {
		return nil, ValidateOutput{}, err
	}
	report, err := s.ports.Validation.Validate(ctx, cfg, domain.ValidateOptions{
		CheckContent: input.CheckContent,
		CheckRemote:  input.CheckRemote,
	})
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	violations := report.Violations
	if violations == nil {
		violations = []domain.Violation{}
	}
	return nil, ValidateOutput{
		OK:         report.OK(),
		Errors:     len(report.Errors()),
		Warnings:   len(report.Warnings()),
		Violations: violations,
	}, nil
}
