// Package cli implements the rustyrag command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
	"github.com/rustyrag/rustyrag/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

// Services injected by the composition root. Commands guard against nil
// so a partially wired binary fails with a readable message.
var (
	recordService      driving.RecordService
	searchService      driving.SearchService
	settingsService    driving.SettingsService
	ingestOrchestrator driving.IngestOrchestrator
	configStore        driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rustyrag",
	Short: "AI search for developer packages",
	Long: `Rusty-RAG stores developer-package records and searches them with a
local substring matcher or an external vector backend.

Run 'rustyrag serve' to start the HTTP API, or use the subcommands to
search, manage records and load package dumps directly.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles the implementations the commands run against.
type Services struct {
	Records  driving.RecordService
	Search   driving.SearchService
	Settings driving.SettingsService
	Ingest   driving.IngestOrchestrator
	Config   driven.ConfigStore
}

// SetServices injects the service implementations.
func SetServices(s Services) {
	recordService = s.Records
	searchService = s.Search
	settingsService = s.Settings
	ingestOrchestrator = s.Ingest
	configStore = s.Config
}

// SetVersion overrides the reported build version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
