package driven

import (
	"context"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// RepoEnricher fetches repository metadata for ingest enrichment.
type RepoEnricher interface {
	// Enrich resolves metadata for a repository URL. Returns
	// ErrNotFound for repositories the provider cannot resolve and
	// ErrInvalidInput for URLs outside the provider's host.
	Enrich(ctx context.Context, repoURL string) (domain.RepoInfo, error)
}
