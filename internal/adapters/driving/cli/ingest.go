package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rustyrag/rustyrag/internal/adapters/driven/dump"
	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
)

var (
	ingestInto   string
	ingestEnrich bool
	ingestWatch  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [source]",
	Short: "Load a package dump",
	Long: `Parses a CSV package dump and writes the rows into the configured
destinations. The source is a local file path, "-" for standard input,
or a gs://bucket/object reference. With --watch the command instead
monitors a directory and ingests every dump file dropped into it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestInto, "into", "vector", "destination: vector, local or both")
	ingestCmd.Flags().BoolVar(&ingestEnrich, "enrich", false, "look up repository metadata on GitHub")
	ingestCmd.Flags().StringVar(&ingestWatch, "watch", "", "watch a directory for new dump files")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestOrchestrator == nil {
		return errors.New("ingest service not configured")
	}

	dest := domain.IngestDestination(ingestInto)
	if !dest.IsValid() {
		return fmt.Errorf("invalid destination %q: use vector, local or both", ingestInto)
	}
	opts := driving.IngestOptions{Destination: dest, Enrich: ingestEnrich}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if ingestWatch != "" {
		return runIngestWatch(ctx, cmd, opts)
	}

	source := dump.StdinSource
	if len(args) > 0 {
		source = args[0]
	}
	return ingestOne(ctx, cmd, source, opts)
}

func ingestOne(ctx context.Context, cmd *cobra.Command, source string, opts driving.IngestOptions) error {
	src, err := dump.Open(ctx, source)
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	cmd.Printf("Ingesting %s into %s...\n", src.Name, opts.Destination)

	report, err := ingestOrchestrator.Ingest(ctx, src.Reader, opts)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}

func runIngestWatch(ctx context.Context, cmd *cobra.Command, opts driving.IngestOptions) error {
	watcher := dump.NewWatcher(ingestWatch, func(ctx context.Context, path string) error {
		return ingestOne(ctx, cmd, path, opts)
	})

	cmd.Printf("Watching %s (press Ctrl-C to stop)\n", ingestWatch)

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func printReport(cmd *cobra.Command, report domain.IngestReport) {
	cmd.Printf("Rows read: %d\n", report.Rows)
	cmd.Printf("Ingested:  %s\n", color.GreenString("%d", report.Ingested))
	if report.Skipped > 0 {
		cmd.Printf("Skipped:   %s\n", color.YellowString("%d", report.Skipped))
	}
	if report.Enriched > 0 {
		cmd.Printf("Enriched:  %s\n", color.CyanString("%d", report.Enriched))
	}
	if report.Failed > 0 {
		cmd.Printf("Failed:    %s\n", color.RedString("%d", report.Failed))
	}
}
