package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for docsite resources.
	uriScheme = "docsite://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the whole configuration.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config",
		Name:        "config",
		Description: "The loaded site configuration as JSON",
		MIMEType:    mimeJSON,
	}, s.handleConfigResource)

	// Static resource for the locale list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "locales",
		Name:        "locales",
		Description: "Locales of the site with their root paths",
		MIMEType:    mimeJSON,
	}, s.handleLocalesResource)

	// Template for the sidebars of one locale.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "locales/{locale}/sidebar",
		Name:        "locale-sidebar",
		Description: "Sidebars of a locale keyed by path prefix",
		MIMEType:    mimeJSON,
	}, s.handleSidebarResource)
}

// handleConfigResource returns the configuration, using the JSON exporter
// when available so the output matches `docsite export --format json`.
func (s *Server) handleConfigResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var (
		data []byte
		err  error
	)
	if s.ports.Export != nil {
		data, err = s.ports.Export.Export(ctx, domain.ExportFormatJSON)
	} else {
		var cfg *domain.SiteConfig
		cfg, err = s.ports.Site.Get(ctx)
		if err == nil {
			data, err = json.MarshalIndent(cfg, "", "  ")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	return jsonResult(req.Params.URI, data), nil
}

// handleLocalesResource lists the locales in root path order.
func (s *Server) handleLocalesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cfg, err := s.ports.Site.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	type localeInfo struct {
		Code  string `json:"code"`
		Label string `json:"label"`
		Lang  string `json:"lang"`
		Link  string `json:"link"`
	}

	codes := cfg.LocaleCodes()
	infos := make([]localeInfo, len(codes))
	for i, code := range codes {
		loc := cfg.Locales[code]
		infos[i] = localeInfo{Code: code, Label: loc.Label, Lang: loc.Lang, Link: loc.Link}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling locales: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleSidebarResource returns the sidebars of the locale named in the URI.
func (s *Server) handleSidebarResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract locale from URI: docsite://locales/{locale}/sidebar
	code := extractLocale(req.Params.URI)
	if code == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	cfg, err := s.ports.Site.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	theme, err := cfg.ResolvedTheme(code)
	if errors.Is(err, domain.ErrUnknownLocale) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, err
	}

	sidebar := theme.Sidebar
	if sidebar == nil {
		sidebar = map[string][]domain.SidebarGroup{}
	}
	data, err := json.MarshalIndent(sidebar, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sidebar: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}
}

// extractLocale extracts the locale code from a URI like docsite://locales/{locale}/sidebar.
func extractLocale(uri string) string {
	const prefix = uriScheme + "locales/"
	const suffix = "/sidebar"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	code := strings.TrimSuffix(uri, suffix)
	if strings.Contains(code, "/") {
		return ""
	}
	return code
}
