package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyrag/rustyrag/internal/adapters/driven/storage/memory"
	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
)

// --- Mock implementations ---

// mockPackageWriter implements driven.PackageWriter for testing.
type mockPackageWriter struct {
	writeErr error
	rejectN  int

	batches [][]domain.PackageEntry
}

func (m *mockPackageWriter) WriteBatch(_ context.Context, entries []domain.PackageEntry) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.batches = append(m.batches, entries)
	accepted := len(entries) - m.rejectN
	if accepted < 0 {
		accepted = 0
	}
	return accepted, nil
}

// mockProvisioner implements driven.CollectionProvisioner for testing.
type mockProvisioner struct {
	recreateErr error
	readyErr    error

	recreated bool
}

func (m *mockProvisioner) Recreate(_ context.Context) error {
	if m.recreateErr != nil {
		return m.recreateErr
	}
	m.recreated = true
	return nil
}

func (m *mockProvisioner) Ready(_ context.Context) error {
	return m.readyErr
}

// mockEnricher implements driven.RepoEnricher for testing.
type mockEnricher struct {
	info map[string]domain.RepoInfo
	err  error

	calls []string
}

func (m *mockEnricher) Enrich(_ context.Context, repoURL string) (domain.RepoInfo, error) {
	m.calls = append(m.calls, repoURL)
	if m.err != nil {
		return domain.RepoInfo{}, m.err
	}
	info, ok := m.info[repoURL]
	if !ok {
		return domain.RepoInfo{}, domain.ErrNotFound
	}
	return info, nil
}

const sampleDump = `serde,A serialization framework,Serialize and deserialize data,https://github.com/serde-rs/serde
tokio,An async runtime,Event-driven runtime,https://github.com/tokio-rs/tokio
clap,A CLI parser,Command line argument parser,https://github.com/clap-rs/clap
`

// --- Tests ---

func TestNewIngestOrchestrator(t *testing.T) {
	orch := NewIngestOrchestrator(memory.NewRecordStore(), nil, nil, nil)
	require.NotNil(t, orch)
}

func TestIngestOrchestrator_Ingest_Vector(t *testing.T) {
	writer := &mockPackageWriter{}
	orch := NewIngestOrchestrator(nil, writer, nil, nil)

	report, err := orch.Ingest(context.Background(), strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestVector,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 3, report.Ingested)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, writer.batches, 1)
	assert.Equal(t, "serde", writer.batches[0][0].Name)
	assert.Equal(t, "A serialization framework", writer.batches[0][0].Readme)
	assert.Equal(t, "Serialize and deserialize data", writer.batches[0][0].Description)
	assert.Equal(t, "https://github.com/serde-rs/serde", writer.batches[0][0].Repository)
}

func TestIngestOrchestrator_Ingest_DefaultsToVector(t *testing.T) {
	writer := &mockPackageWriter{}
	orch := NewIngestOrchestrator(nil, writer, nil, nil)

	report, err := orch.Ingest(context.Background(), strings.NewReader(sampleDump), driving.IngestOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Ingested)
	assert.Len(t, writer.batches, 1)
}

func TestIngestOrchestrator_Ingest_Local(t *testing.T) {
	store := memory.NewRecordStore()
	orch := NewIngestOrchestrator(store, nil, nil, nil)
	ctx := context.Background()

	report, err := orch.Ingest(ctx, strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestLocal,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Ingested)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	records, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	assert.ElementsMatch(t, []string{"serde", "tokio", "clap"}, titles)
}

func TestIngestOrchestrator_Ingest_Both(t *testing.T) {
	store := memory.NewRecordStore()
	writer := &mockPackageWriter{}
	orch := NewIngestOrchestrator(store, writer, nil, nil)
	ctx := context.Background()

	report, err := orch.Ingest(ctx, strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestBoth,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Ingested)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, writer.batches, 1)
}

func TestIngestOrchestrator_Ingest_SkipsShortRows(t *testing.T) {
	writer := &mockPackageWriter{}
	orch := NewIngestOrchestrator(nil, writer, nil, nil)

	dump := "serde,readme,desc,https://github.com/serde-rs/serde\nincomplete,row\nclap,readme,desc,https://github.com/clap-rs/clap\n"

	report, err := orch.Ingest(context.Background(), strings.NewReader(dump), driving.IngestOptions{
		Destination: domain.IngestVector,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 2, report.Ingested)
	assert.Equal(t, 1, report.Skipped)
}

func TestIngestOrchestrator_Ingest_ExtraFieldsIgnored(t *testing.T) {
	writer := &mockPackageWriter{}
	orch := NewIngestOrchestrator(nil, writer, nil, nil)

	dump := "serde,readme,desc,https://github.com/serde-rs/serde,extra,fields\n"

	report, err := orch.Ingest(context.Background(), strings.NewReader(dump), driving.IngestOptions{
		Destination: domain.IngestVector,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Ingested)
	assert.Equal(t, "serde", writer.batches[0][0].Name)
}

func TestIngestOrchestrator_Ingest_ChunksLargeDumps(t *testing.T) {
	store := memory.NewRecordStore()
	writer := &mockPackageWriter{}
	orch := NewIngestOrchestrator(store, writer, nil, nil)
	ctx := context.Background()

	var sb strings.Builder
	for range 250 {
		sb.WriteString("pkg,readme,desc,https://example.com/repo\n")
	}

	report, err := orch.Ingest(ctx, strings.NewReader(sb.String()), driving.IngestOptions{
		Destination: domain.IngestBoth,
	})
	require.NoError(t, err)
	assert.Equal(t, 250, report.Rows)
	assert.Equal(t, 250, report.Ingested)

	// Chunked at the batch ceiling: 100 + 100 + 50
	require.Len(t, writer.batches, 3)
	assert.Len(t, writer.batches[0], domain.MaxBatchSize)
	assert.Len(t, writer.batches[1], domain.MaxBatchSize)
	assert.Len(t, writer.batches[2], 50)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250, count)
}

func TestIngestOrchestrator_Ingest_CountsRejections(t *testing.T) {
	writer := &mockPackageWriter{rejectN: 1}
	orch := NewIngestOrchestrator(nil, writer, nil, nil)

	report, err := orch.Ingest(context.Background(), strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestVector,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Ingested)
	assert.Equal(t, 1, report.Failed)
}

func TestIngestOrchestrator_Ingest_WriterErrorAborts(t *testing.T) {
	writer := &mockPackageWriter{writeErr: errors.New("cluster unreachable")}
	orch := NewIngestOrchestrator(nil, writer, nil, nil)

	_, err := orch.Ingest(context.Background(), strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestVector,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write vector batch")
}

func TestIngestOrchestrator_Ingest_VectorNotConfigured(t *testing.T) {
	orch := NewIngestOrchestrator(memory.NewRecordStore(), nil, nil, nil)

	_, err := orch.Ingest(context.Background(), strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestVector,
	})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestIngestOrchestrator_Ingest_InvalidDestination(t *testing.T) {
	orch := NewIngestOrchestrator(memory.NewRecordStore(), &mockPackageWriter{}, nil, nil)

	_, err := orch.Ingest(context.Background(), strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: "s3",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestOrchestrator_Ingest_Enrich(t *testing.T) {
	store := memory.NewRecordStore()
	enricher := &mockEnricher{
		info: map[string]domain.RepoInfo{
			"https://github.com/serde-rs/serde": {
				Description: "Fetched description",
				Topics:      []string{"rust", "serialization"},
				Stars:       9000,
			},
		},
	}
	orch := NewIngestOrchestrator(store, nil, nil, enricher)
	ctx := context.Background()

	dump := "serde,readme,,https://github.com/serde-rs/serde\n"

	report, err := orch.Ingest(ctx, strings.NewReader(dump), driving.IngestOptions{
		Destination: domain.IngestLocal,
		Enrich:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Enriched)

	records, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Empty description filled, topics merged into tags, stars recorded
	assert.Equal(t, "Fetched description", records[0].Description)
	assert.Equal(t, []string{"rust", "serialization"}, records[0].Tags)
	stars, ok := records[0].Metadata["stars"]
	require.True(t, ok)
	assert.InDelta(t, 9000, stars.Num(), 0.1)
}

func TestIngestOrchestrator_Ingest_EnrichKeepsExistingDescription(t *testing.T) {
	store := memory.NewRecordStore()
	enricher := &mockEnricher{
		info: map[string]domain.RepoInfo{
			"https://github.com/serde-rs/serde": {Description: "Fetched"},
		},
	}
	orch := NewIngestOrchestrator(store, nil, nil, enricher)
	ctx := context.Background()

	dump := "serde,readme,Original description,https://github.com/serde-rs/serde\n"

	_, err := orch.Ingest(ctx, strings.NewReader(dump), driving.IngestOptions{
		Destination: domain.IngestLocal,
		Enrich:      true,
	})
	require.NoError(t, err)

	records, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Original description", records[0].Description)
}

func TestIngestOrchestrator_Ingest_EnrichFailureDegrades(t *testing.T) {
	store := memory.NewRecordStore()
	enricher := &mockEnricher{err: errors.New("rate limited")}
	orch := NewIngestOrchestrator(store, nil, nil, enricher)
	ctx := context.Background()

	report, err := orch.Ingest(ctx, strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestLocal,
		Enrich:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Ingested)
	assert.Equal(t, 0, report.Enriched)
}

func TestIngestOrchestrator_Ingest_EnrichWithoutEnricher(t *testing.T) {
	orch := NewIngestOrchestrator(memory.NewRecordStore(), nil, nil, nil)

	_, err := orch.Ingest(context.Background(), strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestLocal,
		Enrich:      true,
	})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestIngestOrchestrator_Ingest_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := NewIngestOrchestrator(memory.NewRecordStore(), nil, nil, nil)

	_, err := orch.Ingest(ctx, strings.NewReader(sampleDump), driving.IngestOptions{
		Destination: domain.IngestLocal,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestOrchestrator_Provision(t *testing.T) {
	prov := &mockProvisioner{}
	orch := NewIngestOrchestrator(nil, nil, prov, nil)

	err := orch.Provision(context.Background())
	require.NoError(t, err)
	assert.True(t, prov.recreated)
}

func TestIngestOrchestrator_Provision_NotConfigured(t *testing.T) {
	orch := NewIngestOrchestrator(nil, nil, nil, nil)

	err := orch.Provision(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestIngestOrchestrator_Provision_Error(t *testing.T) {
	prov := &mockProvisioner{recreateErr: errors.New("schema create failed")}
	orch := NewIngestOrchestrator(nil, nil, prov, nil)

	err := orch.Provision(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provision")
}

func TestIngestOrchestrator_Ready(t *testing.T) {
	prov := &mockProvisioner{}
	orch := NewIngestOrchestrator(nil, nil, prov, nil)

	assert.NoError(t, orch.Ready(context.Background()))

	prov.readyErr = errors.New("not ready")
	assert.Error(t, orch.Ready(context.Background()))
}
