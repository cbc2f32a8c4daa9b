package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload and validate the configuration when it changes",
	Long: `Watches the site configuration file. Every change reloads the
configuration and prints the validation report. A configuration that fails
to load is reported and the previous one stays in effect.

Requires --site (or the site.file setting); the built-in configuration
cannot change.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (ctrl+c to stop)\n", siteService.Source())
	return watchService.Watch(ctx, func(cfg *domain.SiteConfig, report *domain.Report, err error) {
		printReload(cmd, cfg, report, err)
	})
}

func printReload(cmd *cobra.Command, cfg *domain.SiteConfig, report *domain.Report, err error) {
	if err != nil {
		cmd.Printf("Reload failed: %v\n", err)
		return
	}
	cmd.Printf("Reloaded %q\n", cfg.Title)
	if report == nil || len(report.Violations) == 0 {
		cmd.Println("  Configuration is valid.")
		return
	}
	for _, v := range report.Violations {
		cmd.Printf("  %s\n", v)
	}
	cmd.Printf("  %d error(s), %d warning(s)\n", len(report.Errors()), len(report.Warnings()))
}
