package driven

import (
	"context"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// RecordStore owns all Record instances. It assigns identifiers and
// timestamps at insert time and hands out copies, never aliases into its
// own state.
type RecordStore interface {
	// Insert materializes one draft with a fresh identifier and the
	// current time. An identifier collision is an error, never an
	// overwrite.
	Insert(ctx context.Context, draft domain.RecordDraft) (domain.Record, error)

	// InsertBatch materializes every draft with one shared timestamp so
	// all records in the batch compare equal on CreatedAt. Batches larger
	// than domain.MaxBatchSize are rejected whole with ErrBatchTooLarge;
	// nothing is inserted on that path.
	InsertBatch(ctx context.Context, drafts []domain.RecordDraft) ([]domain.Record, error)

	// Get retrieves a record by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (domain.Record, error)

	// List returns records ordered by CreatedAt descending, ties broken
	// by insertion order. Offset then limit slice that ordering; an
	// out-of-range offset yields an empty slice, never an error.
	List(ctx context.Context, limit, offset int) ([]domain.Record, error)

	// All returns every record in insertion order. The local matcher
	// evaluates its predicates over this set.
	All(ctx context.Context) ([]domain.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
