package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/views/sidebar"
)

var navCmd = &cobra.Command{
	Use:   "nav [locale]",
	Short: "Print the navigation bar and sidebars of a locale",
	Long: `Prints the navigation bar and every sidebar of a locale, groups and
items in order. Without an argument the locale served at the site root is
used. Output is styled when written to a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNav,
}

func init() {
	rootCmd.AddCommand(navCmd)
}

func runNav(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}

	cfg, err := siteService.Get(cmd.Context())
	if err != nil {
		return err
	}

	var code string
	if len(args) == 1 {
		code = args[0]
	} else if codes := cfg.LocaleCodes(); len(codes) > 0 {
		code = codes[0]
	}

	theme, err := cfg.ResolvedTheme(code)
	if err != nil {
		return fmt.Errorf("locale %q: %w", code, err)
	}

	s := outputStyles(cmd.OutOrStdout())
	cmd.Println(s.Title.Render(fmt.Sprintf("%s · %s (%s)", cfg.Title, code, cfg.Locales[code].Lang)))

	entries := sidebar.Entries(theme)
	if len(entries) == 0 {
		cmd.Println(s.Muted.Render("No navigation"))
		return nil
	}
	for _, e := range entries {
		indent := strings.Repeat("  ", e.Depth)
		switch e.Kind {
		case sidebar.EntrySection:
			cmd.Println()
			cmd.Println(s.Subtitle.Render(e.Text))
		case sidebar.EntryGroup:
			cmd.Println(indent + s.Normal.Render(e.Text))
		case sidebar.EntryLink:
			cmd.Println(indent + s.Normal.Render(e.Text) + "  " + s.Link.Render(e.Link))
		}
	}
	return nil
}

// outputStyles returns the TUI styles for a terminal and plain styles otherwise.
func outputStyles(w io.Writer) *styles.Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return styles.DefaultStyles()
	}
	return styles.PlainStyles()
}
