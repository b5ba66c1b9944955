package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyrag/rustyrag/internal/adapters/driving/httpapi"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the record-management and search HTTP API and blocks until
interrupted. The port comes from --port, the PORT environment variable,
or the stored server.port setting, in that order.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "TCP port to listen on (0 = use configured port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if recordService == nil || searchService == nil {
		return errors.New("HTTP API requires record and search services")
	}

	port := servePort
	if !cmd.Flags().Changed("port") {
		port = configuredPort()
	}

	server := httpapi.NewServer(recordService, searchService, port)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Starting HTTP API on port %d\n", port)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// configuredPort resolves the listen port from settings. The settings
// service already applies the PORT environment override.
func configuredPort() int {
	if settingsService == nil {
		return 8080
	}
	settings, err := settingsService.Get()
	if err != nil {
		return 8080
	}
	return settings.Server.Port
}
