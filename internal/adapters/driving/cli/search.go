package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsite/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docsite/internal/core/domain"
	"github.com/custodia-labs/docsite/internal/logger"
)

var (
	searchLimit  int
	searchLocale string
	searchJSON   bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the local search index",
	Long: `Walks the content directory, splits every page into sections at the
outline headings of its locale and rebuilds the local search index.
Pages with "search: false" in their front matter are skipped.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the documentation",
	Long: `Searches the page sections in the local search index, ranked by bm25.
Run "docsite index" first, or pass --no-persist to index in memory before
searching.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchLocale, "locale", "l", "", "restrict results to one locale")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	n, err := searchService.Index(cmd.Context())
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	cmd.Printf("Indexed %d sections.\n", n)
	return nil
}

// indexIfEphemeral fills an in-memory index, which starts empty in every process.
func indexIfEphemeral(ctx context.Context) error {
	if !noPersist || searchService == nil {
		return nil
	}
	n, err := searchService.Index(ctx)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	logger.Debug("indexed %d sections in memory", n)
	return nil
}

// indexForBrowsing is indexIfEphemeral for the interactive surfaces, which
// stay usable without search.
func indexForBrowsing(ctx context.Context) error {
	err := indexIfEphemeral(ctx)
	if errors.Is(err, domain.ErrSearchUnavailable) {
		logger.Warn("search disabled: %v", err)
		return nil
	}
	return err
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if err := ensureServices(cmd); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := cmd.Context()
	if err := indexIfEphemeral(ctx); err != nil {
		return err
	}

	opts := domain.SearchOptions{
		Locale: searchLocale,
		Limit:  searchLimit,
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] Page › Heading (Score)
		sec := results[i].Section
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, list.Title(sec), results[i].Score)
		cmd.Printf("      [%s] %s\n", sec.Locale, sec.URL())
		if results[i].Snippet != "" {
			cmd.Printf("      %s\n", results[i].Snippet)
		}
		cmd.Println()
	}

	return nil
}
