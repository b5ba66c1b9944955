// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewRecords is the paginated record listing.
	ViewRecords
	// ViewRecordDetail shows a single record's fields and content.
	ViewRecordDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewRecords:
		return "records"
	case ViewRecordDetail:
		return "record_detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchCompleted carries the search response envelope back to the model.
type SearchCompleted struct {
	Response domain.SearchResponse
	Err      error
}

// RecordsLoaded carries one page of records from the record service.
type RecordsLoaded struct {
	Records []domain.Record
	Total   int
	Offset  int
	Err     error
}

// RecordSelected signals a record was chosen for the detail view.
type RecordSelected struct {
	Record domain.Record
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
