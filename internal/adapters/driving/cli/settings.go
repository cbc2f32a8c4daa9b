package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// keyGitHubToken is the one secret setting; it is masked on show and read
// without echo on set.
const keyGitHubToken = "github.token"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage docsite's own settings",
	Long: `View and change the preferences of the docsite tool: the default site
file, the content and data directories and the GitHub token used to verify
edit links. The --site and --content flags override the stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Change one setting",
	Long: `Sets one setting. An empty VALUE restores the default.

Keys:
  site.file     site configuration file (empty = built-in)
  content.dir   Markdown content directory
  data.dir      directory of the search index
  github.token  token for edit link verification (prompted when VALUE is omitted)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Site]")
	cmd.Printf("  File: %s\n", valueOr(settings.SiteFile, "(built-in)"))
	cmd.Printf("  Content: %s\n", settings.ContentDir)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Data: %s\n", valueOr(settings.DataDir, "(default)"))
	cmd.Println()

	cmd.Println("[GitHub]")
	if settings.GitHubToken != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.GitHubToken))
	} else {
		cmd.Printf("  Token: (not set)\n")
	}
	cmd.Println()

	cmd.Printf("Stored in %s\n", settingsService.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := strings.TrimSpace(args[0])
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == keyGitHubToken:
		cmd.Print("Enter token: ")
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (keys: %s)", key, err, strings.Join(settingsService.Keys(), ", "))
	}

	shown := value
	if key == keyGitHubToken && value != "" {
		shown = maskAPIKey(value)
	}
	if shown == "" {
		cmd.Printf("%s reset to default\n", key)
	} else {
		cmd.Printf("%s = %s\n", key, shown)
	}
	return nil
}

// Helper functions.

// readPassword reads a line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
