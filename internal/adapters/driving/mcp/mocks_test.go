package mcp

import (
	"context"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	record  domain.Record
	records []domain.Record
	count   int
	err     error

	lastDraft  domain.RecordDraft
	lastLimit  int
	lastOffset int
}

func (m *mockRecordService) Create(_ context.Context, draft domain.RecordDraft) (domain.Record, error) {
	m.lastDraft = draft
	return m.record, m.err
}

func (m *mockRecordService) CreateBatch(_ context.Context, _ []domain.RecordDraft) ([]domain.Record, error) {
	return m.records, m.err
}

func (m *mockRecordService) Get(_ context.Context, _ string) (domain.Record, error) {
	return m.record, m.err
}

func (m *mockRecordService) List(_ context.Context, limit, offset int) ([]domain.Record, error) {
	m.lastLimit = limit
	m.lastOffset = offset
	return m.records, m.err
}

func (m *mockRecordService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response domain.SearchResponse
	mode     domain.SearchMode
	err      error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.response, m.err
}

func (m *mockSearchService) Mode() domain.SearchMode {
	if m.mode == "" {
		return domain.SearchModeLocal
	}
	return m.mode
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetSearchMode(_ domain.SearchMode) error {
	return m.err
}

func (m *mockSettingsService) SetStorageBackend(_ domain.StorageBackend) error {
	return m.err
}

func (m *mockSettingsService) SetWeaviate(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetGitHubToken(_ string) error {
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
