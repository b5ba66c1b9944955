package driving

import (
	"context"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// RecordService manages package records.
type RecordService interface {
	// Create validates a draft and stores it as a new record.
	Create(ctx context.Context, draft domain.RecordDraft) (domain.Record, error)

	// CreateBatch stores up to domain.MaxBatchSize drafts atomically.
	// Every record in the batch shares the same creation timestamp.
	CreateBatch(ctx context.Context, drafts []domain.RecordDraft) ([]domain.Record, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (domain.Record, error)

	// List returns records newest-first with limit/offset pagination.
	List(ctx context.Context, limit, offset int) ([]domain.Record, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)
}
