// Command docsite manages the declarative configuration of a multilingual
// documentation site.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/docsite/internal/adapters/driven/config/builtin"
	"github.com/custodia-labs/docsite/internal/adapters/driven/config/codec"
	"github.com/custodia-labs/docsite/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docsite/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsite/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docsite/internal/adapters/driving/cli"
	"github.com/custodia-labs/docsite/internal/connectors/filesystem"
	"github.com/custodia-labs/docsite/internal/connectors/github"
	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/core/ports/driven"
	"github.com/custodia-labs/docsite/internal/core/services"
	"github.com/custodia-labs/docsite/internal/logger"
	"github.com/custodia-labs/docsite/internal/normalisers/markdown"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Settings are read before wiring; a missing home directory falls back
	// to an in-memory store so the tool still runs.
	var settings *services.SettingsService
	store, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("settings unavailable, using defaults: %v", err)
		settings = services.NewSettingsService(memory.NewConfigStore())
	} else {
		settings = services.NewSettingsService(store)
	}

	cli.SetVersion(version)
	cli.SetSettingsService(settings)
	cli.SetWireFunc(wire)

	if err := cli.Execute(context.Background()); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// wire builds the services from the resolved options.
func wire(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	var source driven.SiteSource = builtin.NewSource()
	if opts.SiteFile != "" {
		source = file.NewSiteSource(opts.SiteFile)
	}
	site := services.NewSiteService(source)

	// Load eagerly so a broken file is reported before any command output.
	if _, err := site.Get(ctx); err != nil {
		return nil, err
	}

	var content driven.ContentStore
	if opts.ContentDir != "" {
		content = filesystem.NewContentStore(opts.ContentDir)
	}

	token := opts.GitHubToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	repos := github.NewClient(ctx, token)

	validation := services.NewValidationService(content, repos)

	var (
		index   driven.SectionIndex
		closeFn func() error
	)
	if opts.NoPersist {
		index = memory.NewSectionIndex()
	} else {
		// Opened on the first search or index call only.
		lazy := sqlite.NewLazyIndex(opts.DataDir)
		index, closeFn = lazy, lazy.Close
	}

	svcs := &cli.Services{
		Site:       site,
		Validation: validation,
		Export:     services.NewExportService(site, codec.Encoders()...),
		Navigation: services.NewNavigationService(site),
		Search:     services.NewSearchService(site, content, markdown.New(), index),
		Close:      closeFn,
	}

	// Only a file can change; the built-in configuration has nothing to watch.
	if opts.SiteFile != "" {
		svcs.Watch = services.NewWatchService(site, validation, filesystem.NewWatcher(), opts.SiteFile,
			domain.ValidateOptions{CheckContent: content != nil})
	}
	return svcs, nil
}
