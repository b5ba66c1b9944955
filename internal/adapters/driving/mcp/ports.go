package mcp

import (
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Records manages package records.
	Records driving.RecordService

	// Search provides search capabilities.
	Search driving.SearchService

	// Settings reports configuration for the stats resource.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Records == nil {
		return ErrMissingRecordService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Settings is optional; the stats resource degrades without it.
	return nil
}
