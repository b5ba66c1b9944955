package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
	"github.com/rustyrag/rustyrag/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestOrchestrator = (*IngestOrchestrator)(nil)

// IngestOrchestrator coordinates loading package dumps into the backends.
type IngestOrchestrator struct {
	recordStore driven.RecordStore
	writer      driven.PackageWriter
	provisioner driven.CollectionProvisioner
	enricher    driven.RepoEnricher
}

// NewIngestOrchestrator creates a new ingest orchestrator. The writer,
// provisioner and enricher are optional (can be nil); operations needing
// them fail with ErrNotConfigured.
func NewIngestOrchestrator(
	recordStore driven.RecordStore,
	writer driven.PackageWriter,
	provisioner driven.CollectionProvisioner,
	enricher driven.RepoEnricher,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		recordStore: recordStore,
		writer:      writer,
		provisioner: provisioner,
		enricher:    enricher,
	}
}

// Ingest parses a CSV package dump and writes it to the selected
// destination in chunks of at most domain.MaxBatchSize entries. Rows with
// fewer than four fields are skipped and counted, never fatal.
func (o *IngestOrchestrator) Ingest(
	ctx context.Context, r io.Reader, opts driving.IngestOptions,
) (domain.IngestReport, error) {
	report := domain.IngestReport{}

	dest := opts.Destination
	if dest == "" {
		dest = domain.IngestVector
	}
	if !dest.IsValid() {
		return report, fmt.Errorf("%w: unknown ingest destination %q", domain.ErrInvalidInput, opts.Destination)
	}
	if dest.WritesVector() && o.writer == nil {
		return report, domain.ErrNotConfigured
	}
	if dest.WritesLocal() && o.recordStore == nil {
		return report, domain.ErrNotConfigured
	}
	if opts.Enrich && o.enricher == nil {
		return report, fmt.Errorf("%w: no enrichment provider", domain.ErrNotConfigured)
	}

	logger.Section("Ingest")
	logger.Info("Starting ingest to %s (enrich=%t)", dest, opts.Enrich)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	batch := make([]domain.PackageEntry, 0, domain.MaxBatchSize)

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			report.Rows++
			report.Skipped++
			logger.Debug("Skipping malformed row %d: %v", parseErr.Line, err)
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read dump: %w", err)
		}

		report.Rows++
		if len(row) < 4 {
			report.Skipped++
			continue
		}

		entry := domain.PackageEntry{
			Name:        row[0],
			Readme:      row[1],
			Description: row[2],
			Repository:  row[3],
		}

		if opts.Enrich {
			o.enrich(ctx, &entry, &report)
		}

		batch = append(batch, entry)
		if len(batch) == domain.MaxBatchSize {
			if err := o.flush(ctx, dest, batch, &report); err != nil {
				return report, err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := o.flush(ctx, dest, batch, &report); err != nil {
			return report, err
		}
	}

	logger.Info("Ingest complete: %d rows, %d ingested, %d skipped, %d enriched, %d failed",
		report.Rows, report.Ingested, report.Skipped, report.Enriched, report.Failed)
	return report, nil
}

// enrich fetches repository metadata for the entry. Failures degrade to
// the raw row, never abort the ingest.
func (o *IngestOrchestrator) enrich(ctx context.Context, entry *domain.PackageEntry, report *domain.IngestReport) {
	if entry.Repository == "" {
		return
	}

	info, err := o.enricher.Enrich(ctx, entry.Repository)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			logger.Debug("Enrichment skipped for %s: %v", entry.Name, err)
		case errors.Is(err, domain.ErrNotFound):
			logger.Debug("Enrichment found nothing for %s", entry.Name)
		default:
			logger.Warn("Enrichment failed for %s: %v", entry.Name, err)
		}
		return
	}

	entry.ApplyRepoInfo(info)
	report.Enriched++
}

// flush writes one chunk to every destination it targets.
func (o *IngestOrchestrator) flush(
	ctx context.Context,
	dest domain.IngestDestination,
	entries []domain.PackageEntry,
	report *domain.IngestReport,
) error {
	accepted := len(entries)

	if dest.WritesVector() {
		n, err := o.writer.WriteBatch(ctx, entries)
		if err != nil {
			return fmt.Errorf("write vector batch: %w", err)
		}
		if n < accepted {
			accepted = n
		}
	}

	if dest.WritesLocal() {
		drafts := make([]domain.RecordDraft, len(entries))
		for i, entry := range entries {
			drafts[i] = entry.Draft()
		}
		if _, err := o.recordStore.InsertBatch(ctx, drafts); err != nil {
			return fmt.Errorf("write local batch: %w", err)
		}
	}

	report.Ingested += accepted
	report.Failed += len(entries) - accepted
	logger.Debug("Flushed %d entries (%d accepted)", len(entries), accepted)
	return nil
}

// Provision recreates the vector collection schema.
func (o *IngestOrchestrator) Provision(ctx context.Context) error {
	if o.provisioner == nil {
		return domain.ErrNotConfigured
	}

	logger.Section("Provision")
	logger.Info("Recreating vector collection")

	if err := o.provisioner.Recreate(ctx); err != nil {
		return fmt.Errorf("provision: %w", err)
	}

	logger.Info("Collection ready")
	return nil
}

// Ready reports whether the vector backend is reachable.
func (o *IngestOrchestrator) Ready(ctx context.Context) error {
	if o.provisioner == nil {
		return domain.ErrNotConfigured
	}
	if err := o.provisioner.Ready(ctx); err != nil {
		return fmt.Errorf("readiness check: %w", err)
	}
	return nil
}
