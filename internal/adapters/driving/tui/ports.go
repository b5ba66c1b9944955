// Package tui provides an interactive terminal user interface for rustyrag.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Records manages package records and serves the paginated listing.
	Records driving.RecordService

	// Search provides search capabilities.
	Search driving.SearchService

	// Settings exposes the active configuration. Optional; when present
	// the menu shows the configured search mode and storage backend.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(records driving.RecordService, search driving.SearchService) *Ports {
	return &Ports{
		Records: records,
		Search:  search,
	}
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
	return nil
}
