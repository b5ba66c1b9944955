package driving

import (
	"context"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// SearchService provides package search to external actors.
type SearchService interface {
	// Search runs a query and assembles the response envelope.
	// The query text is echoed back verbatim in the response.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (domain.SearchResponse, error)

	// Mode returns the search mode the service dispatches to by default.
	Mode() domain.SearchMode
}
