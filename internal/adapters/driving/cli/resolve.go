package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve PATH",
	Short: "Show the locale, sidebar, pager and edit link of a page",
	Long: `Resolves what the site renders around the page at PATH: the locale that
serves it, the navigation bar, the sidebar selected by the longest matching
prefix, the previous and next pages and the edit link.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output the resolution as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if navigationService == nil {
		return errors.New("navigation service not configured")
	}

	res, err := navigationService.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	if resolveJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal resolution: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Path:     %s\n", res.Path)
	cmd.Printf("Locale:   %s (%s)\n", res.Locale, res.Lang)
	cmd.Printf("Sidebar:  %s\n", valueOr(res.SidebarPrefix, "none"))
	cmd.Printf("Previous: %s\n", formatPageLink(res.Pager.Prev))
	cmd.Printf("Next:     %s\n", formatPageLink(res.Pager.Next))
	if res.EditURL != "" {
		cmd.Printf("Edit:     %s (%s)\n", res.EditURL, res.EditText)
	}

	if len(res.Nav) > 0 {
		cmd.Println()
		cmd.Println("Navigation:")
		for _, item := range res.Nav {
			cmd.Printf("  %s  %s\n", item.Text, item.Link)
		}
	}
	return nil
}

func formatPageLink(l *domain.PageLink) string {
	if l == nil {
		return "none"
	}
	return fmt.Sprintf("%s (%s) %s", l.Text, l.Label, l.Link)
}
