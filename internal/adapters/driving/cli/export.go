package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/core/domain"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configuration for the static site build",
	Long: `Serialises the loaded configuration for the external static-site build
tool. Without --output the result is written to stdout. When --output is
given without --format, the format follows the file extension.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: json, yaml or toml (default json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if exportService == nil {
		return errors.New("export service not configured")
	}

	format, err := exportFormatFor(exportFormat, exportOutput)
	if err != nil {
		return err
	}

	data, err := exportService.Export(cmd.Context(), format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	cmd.Printf("Wrote %s (%s)\n", exportOutput, format)
	return nil
}

// exportFormatFor picks the format from the flag, then the output extension.
func exportFormatFor(flag, output string) (domain.ExportFormat, error) {
	if flag != "" {
		format := domain.ExportFormat(flag)
		if !format.IsValid() {
			return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, flag)
		}
		return format, nil
	}
	if output != "" {
		if format, ok := domain.FormatForExt(filepath.Ext(output)); ok {
			return format, nil
		}
	}
	return domain.ExportFormatJSON, nil
}
