package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the site configuration",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the whole configuration as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}

	ctx := cmd.Context()
	if showJSON {
		if exportService == nil {
			return errors.New("export service not configured")
		}
		data, err := exportService.Export(ctx, domain.ExportFormatJSON)
		if err != nil {
			return err
		}
		cmd.Println(strings.TrimRight(string(data), "\n"))
		return nil
	}

	cfg, err := siteService.Get(ctx)
	if err != nil {
		return err
	}

	cmd.Println(cfg.Title)
	cmd.Println(strings.Repeat("=", len([]rune(cfg.Title))))
	if cfg.Description != "" {
		cmd.Println(cfg.Description)
	}
	cmd.Println()
	cmd.Printf("  Source:       %s\n", siteService.Source())
	cmd.Printf("  Base:         %s\n", valueOr(cfg.Base, "/"))
	cmd.Printf("  Search:       %s\n", valueOr(string(cfg.Search.Provider), "none"))
	cmd.Printf("  Clean URLs:   %s\n", yesNo(cfg.CleanURLs))
	cmd.Printf("  Last updated: %s\n", yesNo(cfg.LastUpdated))
	if len(cfg.Head) > 0 {
		cmd.Printf("  Head icons:   %d\n", len(cfg.Head))
	}
	cmd.Println()

	cmd.Println("[Locales]")
	for _, code := range cfg.LocaleCodes() {
		loc := cfg.Locales[code]
		theme, err := cfg.ResolvedTheme(code)
		if err != nil {
			return fmt.Errorf("locale %q: %w", code, err)
		}
		cmd.Printf("  %-6s %-12s %-8s %-8s nav: %d, sidebars: %d\n",
			code, loc.Label, loc.Lang, loc.Link, len(theme.Nav), len(theme.Sidebar))
	}
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
