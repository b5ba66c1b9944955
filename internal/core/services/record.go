package services

import (
	"context"
	"fmt"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
	"github.com/rustyrag/rustyrag/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService manages package records.
type RecordService struct {
	store driven.RecordStore
}

// NewRecordService creates a new record service.
func NewRecordService(store driven.RecordStore) *RecordService {
	return &RecordService{store: store}
}

// Create validates a draft and stores it as a new record.
func (s *RecordService) Create(ctx context.Context, draft domain.RecordDraft) (domain.Record, error) {
	if err := draft.Validate(); err != nil {
		return domain.Record{}, err
	}

	rec, err := s.store.Insert(ctx, draft)
	if err != nil {
		return domain.Record{}, fmt.Errorf("create record: %w", err)
	}

	logger.Debug("Created record %s (%q)", rec.ID, rec.Title)
	return rec, nil
}

// CreateBatch stores up to domain.MaxBatchSize drafts atomically.
func (s *RecordService) CreateBatch(ctx context.Context, drafts []domain.RecordDraft) ([]domain.Record, error) {
	if len(drafts) > domain.MaxBatchSize {
		return nil, domain.ErrBatchTooLarge
	}
	for i, draft := range drafts {
		if err := draft.Validate(); err != nil {
			return nil, fmt.Errorf("draft %d: %w", i, err)
		}
	}

	records, err := s.store.InsertBatch(ctx, drafts)
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	logger.Debug("Created batch of %d records", len(records))
	return records, nil
}

// Get retrieves a record by ID.
func (s *RecordService) Get(ctx context.Context, id string) (domain.Record, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

// List returns records newest-first with limit/offset pagination.
func (s *RecordService) List(ctx context.Context, limit, offset int) ([]domain.Record, error) {
	records, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Count returns the total number of stored records.
func (s *RecordService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
