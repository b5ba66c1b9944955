package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

var (
	searchLimit    int
	searchTags     []string
	searchSemantic bool
	searchLocal    bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search package records",
	Long: `Runs a one-shot search against the configured backend.
Local mode matches by substring and tag overlap; semantic mode delegates
ranking to the vector backend.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringSliceVar(&searchTags, "tags", nil, "only match records carrying one of these tags")
	searchCmd.Flags().BoolVar(&searchSemantic, "semantic", false, "force the vector backend")
	searchCmd.Flags().BoolVar(&searchLocal, "local", false, "force the local matcher")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}
	if searchSemantic && searchLocal {
		return errors.New("--semantic and --local are mutually exclusive")
	}

	opts := domain.SearchOptions{
		Limit: searchLimit,
		Tags:  searchTags,
	}
	if searchSemantic {
		opts.Mode = domain.SearchModeSemantic
	}
	if searchLocal {
		opts.Mode = domain.SearchModeLocal
	}

	resp, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}

	return outputSearchTable(cmd, resp)
}

func outputSearchJSON(cmd *cobra.Command, resp domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp.Results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp domain.SearchResponse) error {
	if resp.Total == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results for %q:\n\n", resp.Query)
	for i := range resp.Results {
		r := resp.Results[i]
		cmd.Printf("  [%d] %s\n", i+1, r.Name)
		if r.Description != "" {
			cmd.Printf("      %s\n", r.Description)
		}
		if r.CratesURL != "" {
			cmd.Printf("      %s\n", r.CratesURL)
		}
		if r.Repository != "" {
			cmd.Printf("      Repository: %s\n", r.Repository)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d\n", resp.Total)
	return nil
}
