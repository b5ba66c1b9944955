package driven

import (
	"context"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// CollectionProvisioner manages the external vector collection schema.
// Used by the provisioning tooling, never by the request path.
type CollectionProvisioner interface {
	// Recreate drops the collection if present and creates it fresh with
	// the configured vectorizer and properties.
	Recreate(ctx context.Context) error

	// Ready reports whether the backend is reachable and serving.
	Ready(ctx context.Context) error
}

// PackageWriter writes package entries into the external vector collection.
type PackageWriter interface {
	// WriteBatch inserts the entries and returns how many were accepted.
	// Per-entry rejections reduce the count without failing the batch.
	WriteBatch(ctx context.Context, entries []domain.PackageEntry) (int, error)
}
