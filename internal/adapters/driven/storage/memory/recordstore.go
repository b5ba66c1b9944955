package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Insertion order is tracked separately from the map so that List can
// break CreatedAt ties deterministically.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record
	order   []string
	now     func() time.Time
	newID   func() string
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.Record),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Insert materialises a draft with a fresh ID and the current time.
func (s *RecordStore) Insert(_ context.Context, draft domain.RecordDraft) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(draft, s.now())
}

// InsertBatch stores all drafts under one shared timestamp.
func (s *RecordStore) InsertBatch(_ context.Context, drafts []domain.RecordDraft) ([]domain.Record, error) {
	if len(drafts) > domain.MaxBatchSize {
		return nil, domain.ErrBatchTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	records := make([]domain.Record, 0, len(drafts))
	for _, draft := range drafts {
		rec, err := s.insert(draft, now)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// insert assumes the write lock is held.
func (s *RecordStore) insert(draft domain.RecordDraft, now time.Time) (domain.Record, error) {
	id := s.newID()
	if _, exists := s.records[id]; exists {
		return domain.Record{}, domain.ErrAlreadyExists
	}
	rec := domain.NewRecord(draft, id, now)
	s.records[id] = rec
	s.order = append(s.order, id)
	return rec.Clone(), nil
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.Record{}, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

// List returns records newest-first. Ties on CreatedAt keep insertion order.
func (s *RecordStore) List(_ context.Context, limit, offset int) ([]domain.Record, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := s.sortedDesc()
	if offset >= len(sorted) {
		return []domain.Record{}, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	out := make([]domain.Record, 0, end-offset)
	for _, rec := range sorted[offset:end] {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// All returns every record in insertion order.
func (s *RecordStore) All(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close is a no-op for the in-memory store.
func (s *RecordStore) Close() error {
	return nil
}

// sortedDesc assumes at least a read lock is held. The stable sort keeps
// insertion order for records sharing a timestamp, which is how batch
// inserts stay in submission order when listed.
func (s *RecordStore) sortedDesc() []domain.Record {
	out := make([]domain.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
