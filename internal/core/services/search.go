package services

import (
	"context"
	"fmt"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
	"github.com/rustyrag/rustyrag/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService dispatches search requests between the local matcher and
// the semantic backend delegate.
type SearchService struct {
	local        driven.Searcher
	semantic     driven.Searcher
	defaultMode  domain.SearchMode
	defaultLimit int
}

// NewSearchService creates a new search service. The semantic searcher is
// optional (can be nil); requests for it then fail with ErrNotConfigured.
func NewSearchService(
	local driven.Searcher,
	semantic driven.Searcher,
	defaultMode domain.SearchMode,
	defaultLimit int,
) *SearchService {
	if !defaultMode.IsValid() {
		defaultMode = domain.SearchModeLocal
	}
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultSearchLimit
	}
	return &SearchService{
		local:        local,
		semantic:     semantic,
		defaultMode:  defaultMode,
		defaultLimit: defaultLimit,
	}
}

// Search runs the query against the strategy selected by opts.Mode, or the
// configured default mode when opts carries none. The query text is
// forwarded and echoed back non-normalized; an empty query is a valid
// query, not a short-circuit.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}
	logger.Debug("Limit: %d (requested %d)", limit, opts.Limit)

	mode := s.defaultMode
	if opts.Mode.IsValid() {
		mode = opts.Mode
	}
	logger.Info("Search mode: %s", mode.Description())

	searcher, err := s.searcherFor(mode)
	if err != nil {
		logger.Warn("Search unavailable: %v", err)
		return domain.SearchResponse{}, err
	}

	results, err := searcher.Search(ctx, domain.SearchQuery{
		Text:  query,
		Limit: limit,
		Tags:  opts.Tags,
	})
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return domain.SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Results: %d", len(results))
	return domain.NewSearchResponse(results, query), nil
}

// Mode returns the configured default search mode.
func (s *SearchService) Mode() domain.SearchMode {
	return s.defaultMode
}

func (s *SearchService) searcherFor(mode domain.SearchMode) (driven.Searcher, error) {
	switch mode {
	case domain.SearchModeSemantic:
		if s.semantic == nil {
			return nil, domain.ErrNotConfigured
		}
		return s.semantic, nil
	default:
		if s.local == nil {
			return nil, domain.ErrNotConfigured
		}
		return s.local, nil
	}
}
