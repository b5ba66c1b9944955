// Package local provides the in-process search strategy. It scans the
// record store and matches by case-insensitive substring over title,
// content and tags, optionally narrowed by exact tag overlap.
package local

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
)

// Ensure Matcher implements the interface.
var _ driven.Searcher = (*Matcher)(nil)

// Matcher is the local search strategy.
type Matcher struct {
	store driven.RecordStore
}

// NewMatcher creates a matcher over the given record store.
func NewMatcher(store driven.RecordStore) *Matcher {
	return &Matcher{store: store}
}

// Mode identifies this strategy.
func (m *Matcher) Mode() domain.SearchMode {
	return domain.SearchModeLocal
}

// Search scans all records and returns the matches newest-first, truncated
// to the query limit. A record must pass both predicates: the lowercased
// query is a substring of its lowercased title, content or any tag, and it
// shares at least one tag with the requested set when one is given. An
// empty query text matches every record.
func (m *Matcher) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	records, err := m.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	needle := strings.ToLower(query.Text)

	matches := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if !matchesText(rec, needle) {
			continue
		}
		if !matchesTags(rec, query.Tags) {
			continue
		}
		matches = append(matches, rec)
	}

	// Stable sort keeps insertion order for records sharing a timestamp.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	limit := query.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return domain.ResultsFromRecords(matches), nil
}

// matchesText reports whether the lowercased needle occurs in the record's
// title, content or any tag. An empty needle occurs in everything.
func matchesText(rec domain.Record, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Content), needle) {
		return true
	}
	for _, tag := range rec.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// matchesTags reports whether the record shares at least one tag with the
// requested set. Comparison is exact and case-sensitive; an empty set
// passes every record.
func matchesTags(rec domain.Record, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, tag := range rec.Tags {
			if tag == w {
				return true
			}
		}
	}
	return false
}
