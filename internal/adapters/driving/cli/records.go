package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage package records",
	Long:  `List, inspect, or add package records in the configured store.`,
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records newest-first",
	RunE:  runRecordsList,
}

var recordsGetCmd = &cobra.Command{
	Use:   "get [record-id]",
	Short: "Show one record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsGet,
}

var recordsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a new record",
	RunE:  runRecordsAdd,
}

var (
	recordsListLimit  int
	recordsListOffset int

	addTitle       string
	addContent     string
	addDescription string
	addRepoURL     string
	addPackageURL  string
	addTags        []string
)

func init() {
	recordsListCmd.Flags().IntVarP(&recordsListLimit, "limit", "n", 50, "maximum number of records")
	recordsListCmd.Flags().IntVar(&recordsListOffset, "offset", 0, "records to skip from the newest end")

	recordsAddCmd.Flags().StringVar(&addTitle, "title", "", "package name (required)")
	recordsAddCmd.Flags().StringVar(&addContent, "content", "", "full text body, typically the readme (required)")
	recordsAddCmd.Flags().StringVar(&addDescription, "description", "", "short summary")
	recordsAddCmd.Flags().StringVar(&addRepoURL, "repo-url", "", "source repository URL")
	recordsAddCmd.Flags().StringVar(&addPackageURL, "package-url", "", "package listing page URL")
	recordsAddCmd.Flags().StringSliceVar(&addTags, "tags", nil, "free-form labels")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsGetCmd)
	recordsCmd.AddCommand(recordsAddCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	records, err := recordService.List(cmd.Context(), recordsListLimit, recordsListOffset)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No records stored.")
		return nil
	}

	cmd.Println("Records:")
	cmd.Println()
	for i := range records {
		cmd.Printf("  %s\n", records[i].ID)
		cmd.Printf("    Title: %s\n", records[i].Title)
		if records[i].Description != "" {
			cmd.Printf("    Description: %s\n", records[i].Description)
		}
		if len(records[i].Tags) > 0 {
			cmd.Printf("    Tags: %v\n", records[i].Tags)
		}
		cmd.Printf("    Created: %s\n", records[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Showing %d records\n", len(records))
	return nil
}

func runRecordsGet(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	record, err := recordService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	cmd.Printf("Record: %s\n\n", record.ID)
	cmd.Printf("  Title:       %s\n", record.Title)
	if record.Description != "" {
		cmd.Printf("  Description: %s\n", record.Description)
	}
	if record.RepoURL != "" {
		cmd.Printf("  Repository:  %s\n", record.RepoURL)
	}
	if record.PackageURL != "" {
		cmd.Printf("  Package:     %s\n", record.PackageURL)
	}
	if len(record.Tags) > 0 {
		cmd.Printf("  Tags:        %v\n", record.Tags)
	}
	cmd.Printf("  Created:     %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:     %s\n", record.UpdatedAt.Format("2006-01-02 15:04:05"))

	if len(record.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		for k, v := range record.Metadata.Plain() {
			cmd.Printf("    %s: %v\n", k, v)
		}
	}

	cmd.Println("\n  Content:")
	cmd.Println(record.Content)

	return nil
}

func runRecordsAdd(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	draft := domain.RecordDraft{
		Title:       addTitle,
		Content:     addContent,
		Description: addDescription,
		RepoURL:     addRepoURL,
		PackageURL:  addPackageURL,
		Tags:        addTags,
	}

	record, err := recordService.Create(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	cmd.Printf("Created record %s (%s)\n", record.ID, record.Title)
	return nil
}
