package cli

import (
	"context"
	"errors"

	"github.com/rustyrag/rustyrag/internal/adapters/driven/search/local"
	"github.com/rustyrag/rustyrag/internal/adapters/driven/storage/memory"
	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/services"
)

// setupTestServices wires a real in-memory stack into the package-level
// service variables and returns a cleanup func restoring the previous
// wiring. The store is seeded with two records so commands have
// something to show.
func setupTestServices() func() {
	oldRecord := recordService
	oldSearch := searchService
	oldSettings := settingsService
	oldIngest := ingestOrchestrator
	oldConfig := configStore

	store := memory.NewRecordStore()
	cfg := memory.NewConfigStore()

	recordService = services.NewRecordService(store)
	searchService = services.NewSearchService(local.NewMatcher(store), nil, domain.SearchModeLocal, 10)
	settingsService = services.NewSettingsService(cfg)
	ingestOrchestrator = services.NewIngestOrchestrator(store, nil, nil, nil)
	configStore = cfg

	seedTestRecords()

	return func() {
		recordService = oldRecord
		searchService = oldSearch
		settingsService = oldSettings
		ingestOrchestrator = oldIngest
		configStore = oldConfig
	}
}

//nolint:errcheck // Seeding fixed drafts cannot fail
func seedTestRecords() {
	drafts := []domain.RecordDraft{
		{
			Title:       "tokio",
			Content:     "An event-driven, non-blocking I/O platform for writing asynchronous applications.",
			Description: "Async runtime",
			RepoURL:     "https://github.com/tokio-rs/tokio",
			Tags:        []string{"async", "runtime"},
		},
		{
			Title:       "serde",
			Content:     "A generic serialization and deserialization framework.",
			Description: "Serialization framework",
			Tags:        []string{"serialization"},
		},
	}
	for _, d := range drafts {
		recordService.Create(context.Background(), d)
	}
}

// mockSearchServiceError fails every search.
type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Search(
	_ context.Context, _ string, _ domain.SearchOptions,
) (domain.SearchResponse, error) {
	return domain.SearchResponse{}, errors.New("search backend offline")
}

func (m *mockSearchServiceError) Mode() domain.SearchMode {
	return domain.SearchModeLocal
}

// mockRecordServiceError fails every record operation.
type mockRecordServiceError struct{}

func (m *mockRecordServiceError) Create(_ context.Context, _ domain.RecordDraft) (domain.Record, error) {
	return domain.Record{}, errors.New("record store offline")
}

func (m *mockRecordServiceError) CreateBatch(_ context.Context, _ []domain.RecordDraft) ([]domain.Record, error) {
	return nil, errors.New("record store offline")
}

func (m *mockRecordServiceError) Get(_ context.Context, _ string) (domain.Record, error) {
	return domain.Record{}, errors.New("record store offline")
}

func (m *mockRecordServiceError) List(_ context.Context, _, _ int) ([]domain.Record, error) {
	return nil, errors.New("record store offline")
}

func (m *mockRecordServiceError) Count(_ context.Context) (int, error) {
	return 0, errors.New("record store offline")
}
