package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var provisionCheck bool

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Recreate the vector collection",
	Long: `Drops and recreates the collection on the vector backend with the
configured vectorizer. Existing objects are lost. With --check the
command only verifies that the backend is reachable and the collection
exists.`,
	RunE: runProvision,
}

func init() {
	provisionCmd.Flags().BoolVar(&provisionCheck, "check", false, "verify backend readiness instead of provisioning")
	rootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command, _ []string) error {
	if ingestOrchestrator == nil {
		return errors.New("ingest service not configured")
	}

	if provisionCheck {
		if err := ingestOrchestrator.Ready(cmd.Context()); err != nil {
			return fmt.Errorf("backend not ready: %w", err)
		}
		cmd.Println(color.GreenString("Vector backend is ready."))
		return nil
	}

	cmd.Println("Recreating vector collection...")
	if err := ingestOrchestrator.Provision(cmd.Context()); err != nil {
		return fmt.Errorf("provision failed: %w", err)
	}

	cmd.Println(color.GreenString("Collection provisioned."))
	return nil
}
