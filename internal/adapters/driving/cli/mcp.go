package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can read the
site configuration and call its tools.

Resources:
  docsite://config                    the configuration as JSON
  docsite://locales                   the locales in root path order
  docsite://locales/{locale}/sidebar  the sidebars of one locale

Tools:
  validate  check the configuration
  resolve   resolve the navigation of a page path
  search    search the page sections

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead, for example to test with the
MCP Inspector.

Examples:
  # Stdio mode (default)
  docsite mcp serve --site site.toml

  # HTTP mode
  docsite mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if err := ensureServices(cmd); err != nil {
		return err
	}
	if err := indexForBrowsing(cmd.Context()); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Site:       siteService,
		Export:     exportService,
		Validation: validationService,
		Navigation: navigationService,
		Search:     searchService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
