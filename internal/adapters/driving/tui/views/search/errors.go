package search

import "errors"

// ErrNoSearchService is returned when a search is attempted without a
// configured search service.
var ErrNoSearchService = errors.New("search service not available")
