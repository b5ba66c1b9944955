package weaviate

import (
	"context"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
)

// Ensure Searcher implements the interface.
var _ driven.Searcher = (*Searcher)(nil)

// resultFields are the class properties every search retrieves.
var resultFields = []graphql.Field{
	{Name: "name"},
	{Name: "readme"},
	{Name: "description"},
	{Name: "repository"},
}

// Searcher is the semantic search strategy. Ranking is delegated entirely
// to the cluster's nearText operator; nothing is filtered or re-ranked
// locally.
type Searcher struct {
	cfg Config
}

// NewSearcher creates a semantic searcher for the given cluster config.
func NewSearcher(cfg Config) *Searcher {
	return &Searcher{cfg: cfg}
}

// Mode identifies this strategy.
func (s *Searcher) Mode() domain.SearchMode {
	return domain.SearchModeSemantic
}

// Search runs a nearText query against the collection. Missing connection
// configuration fails fast with ErrNotConfigured; there is no fallback to
// the local matcher.
func (s *Searcher) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	if !s.cfg.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}

	client, release, err := s.cfg.connect()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer release()

	nearText := client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query.Text})

	resp, err := client.GraphQL().Get().
		WithClassName(s.cfg.collection()).
		WithFields(resultFields...).
		WithNearText(nearText).
		WithLimit(query.Limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	return parseResults(resp, s.cfg.collection())
}

// parseResults maps a GraphQL response onto search results. Field absence
// maps to an empty string, never an error.
func parseResults(resp *models.GraphQLResponse, class string) ([]domain.SearchResult, error) {
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%w: graphql: %s", domain.ErrUpstream, strings.Join(msgs, "; "))
	}

	get, ok := resp.Data["Get"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: malformed response: no Get payload", domain.ErrUpstream)
	}
	items, ok := get[class].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: malformed response: no %s objects", domain.ErrUpstream, class)
	}

	results := make([]domain.SearchResult, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := stringField(obj, "name")
		results = append(results, domain.SearchResult{
			Name:        name,
			Readme:      stringField(obj, "readme"),
			Description: stringField(obj, "description"),
			Repository:  stringField(obj, "repository"),
			CratesURL:   domain.CratesURL(name),
		})
	}
	return results, nil
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}
