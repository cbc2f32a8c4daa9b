package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

// ErrValidationFailed is returned by check when the report holds errors.
var ErrValidationFailed = errors.New("validation failed")

var (
	checkLinks  bool
	checkRemote bool
	checkJSON   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the site configuration",
	Long: `Loads the site configuration and checks it against the consistency rules:
unique locale roots, link targets under their locale root, sidebar and
navigation agreement, sidebar parity across locales, search provider,
outline levels and edit link patterns.

--links additionally verifies that every link target exists in the content
directory (implied when --content is given). --remote verifies the edit
link repository on GitHub.

Exits non-zero when any error is found; warnings are reported only.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkLinks, "links", false, "check link targets against the content directory")
	checkCmd.Flags().BoolVar(&checkRemote, "remote", false, "verify the edit link repository on GitHub")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(checkCmd)
}

// checkOutput is the JSON form of a report.
type checkOutput struct {
	Source     string             `json:"source"`
	OK         bool               `json:"ok"`
	Errors     int                `json:"errors"`
	Warnings   int                `json:"warnings"`
	Violations []domain.Violation `json:"violations"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	ctx := cmd.Context()
	cfg, err := siteService.Get(ctx)
	if err != nil {
		return err
	}

	opts := domain.ValidateOptions{
		CheckContent: checkLinks || cmd.Flags().Changed("content"),
		CheckRemote:  checkRemote,
	}
	report, err := validationService.Validate(ctx, cfg, opts)
	if err != nil {
		return fmt.Errorf("validation could not run: %w", err)
	}

	if checkJSON {
		if err := outputCheckJSON(cmd, report); err != nil {
			return err
		}
	} else {
		outputCheckText(cmd, report)
	}

	if n := len(report.Errors()); n > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrValidationFailed, n)
	}
	return nil
}

func outputCheckJSON(cmd *cobra.Command, report *domain.Report) error {
	violations := report.Violations
	if violations == nil {
		violations = []domain.Violation{}
	}
	data, err := json.MarshalIndent(checkOutput{
		Source:     siteService.Source(),
		OK:         report.OK(),
		Errors:     len(report.Errors()),
		Warnings:   len(report.Warnings()),
		Violations: violations,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputCheckText(cmd *cobra.Command, report *domain.Report) {
	cmd.Printf("Checked %s\n", siteService.Source())
	if len(report.Violations) == 0 {
		cmd.Println("Configuration is valid.")
		return
	}

	cmd.Println()
	for _, v := range report.Violations {
		cmd.Printf("  %s\n", v)
	}
	cmd.Println()
	cmd.Printf("%d error(s), %d warning(s)\n", len(report.Errors()), len(report.Warnings()))
}
