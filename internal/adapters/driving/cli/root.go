// Package cli provides the docsite command-line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/core/ports/driving"
	"github.com/custodia-labs/docsite/internal/logger"
)

// Options are the inputs the services are built from: the global flags
// merged over the stored settings.
type Options struct {
	SiteFile   string
	ContentDir string
	DataDir    string
	NoPersist  bool

	// GitHubToken authenticates edit link verification. Optional.
	GitHubToken string
}

// Services holds the driving ports the commands use.
type Services struct {
	Site       driving.SiteService
	Validation driving.ValidationService
	Export     driving.ExportService
	Navigation driving.NavigationService
	Search     driving.SearchService
	Watch      driving.WatchService

	// Close releases resources such as the search index. May be nil.
	Close func() error
}

// WireFunc builds the services for one invocation.
type WireFunc func(ctx context.Context, opts Options) (*Services, error)

// errNotConfigured is returned when a command runs before wiring.
var errNotConfigured = errors.New("services not configured")

var (
	siteService       driving.SiteService
	validationService driving.ValidationService
	exportService     driving.ExportService
	navigationService driving.NavigationService
	searchService     driving.SearchService
	watchService      driving.WatchService
	settingsService   driving.SettingsService
	closeServices     func() error

	wire WireFunc
)

var version = "dev"

// Global flags.
var (
	siteFile   string
	contentDir string
	noPersist  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Manage the documentation site configuration",
	Long: `docsite loads, validates and serves the declarative configuration of a
multilingual documentation site: its locales, navigation bars, sidebars,
search provider and edit links.

Without --site the built-in configuration is used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&siteFile, "site", "", "site configuration file (.toml, .yaml or .json)")
	flags.StringVar(&contentDir, "content", "", "Markdown content directory")
	flags.BoolVar(&noPersist, "no-persist", false, "keep the search index in memory")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetWireFunc sets the function that builds the services on first use.
func SetWireFunc(fn WireFunc) {
	wire = fn
}

// SetSettingsService sets the settings service. It is needed before wiring
// because the stored settings supply defaults for the global flags.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases the services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("closing services: %v", cerr)
		}
	}
	return err
}

// resolveOptions merges the global flags over the stored settings.
func resolveOptions() (Options, error) {
	opts := Options{
		SiteFile:   siteFile,
		ContentDir: contentDir,
		NoPersist:  noPersist,
	}
	if settingsService == nil {
		return opts, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return opts, fmt.Errorf("reading settings: %w", err)
	}
	if opts.SiteFile == "" {
		opts.SiteFile = settings.SiteFile
	}
	if opts.ContentDir == "" {
		opts.ContentDir = settings.ContentDir
	}
	opts.DataDir = settings.DataDir
	opts.GitHubToken = settings.GitHubToken
	return opts, nil
}

// ensureServices wires the services once per process.
func ensureServices(cmd *cobra.Command) error {
	if siteService != nil {
		return nil
	}
	if wire == nil {
		return errNotConfigured
	}

	opts, err := resolveOptions()
	if err != nil {
		return err
	}
	logger.Debug("wiring services: site=%q content=%q data=%q no-persist=%v",
		opts.SiteFile, opts.ContentDir, opts.DataDir, opts.NoPersist)

	svcs, err := wire(cmd.Context(), opts)
	if err != nil {
		return err
	}

	siteService = svcs.Site
	validationService = svcs.Validation
	exportService = svcs.Export
	navigationService = svcs.Navigation
	searchService = svcs.Search
	watchService = svcs.Watch
	closeServices = svcs.Close
	return nil
}
