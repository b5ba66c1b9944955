package driven

import (
	"context"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// Searcher is one search strategy. The local matcher and the semantic
// delegate both implement it; the search service dispatches between them
// by mode.
type Searcher interface {
	// Search returns results for the query, already ordered and truncated
	// to the query limit. An empty result set is not an error.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error)

	// Mode identifies which strategy this searcher provides.
	Mode() domain.SearchMode
}
