package weaviate

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.PackageWriter = (*Writer)(nil)

// Writer inserts package entries into the collection in batches.
type Writer struct {
	cfg Config
}

// NewWriter creates a batch writer for the given cluster config.
func NewWriter(cfg Config) *Writer {
	return &Writer{cfg: cfg}
}

// WriteBatch inserts the entries and returns how many the cluster
// accepted. Per-object rejections reduce the count without failing the
// batch; only transport-level failures error.
func (w *Writer) WriteBatch(ctx context.Context, entries []domain.PackageEntry) (int, error) {
	if !w.cfg.IsConfigured() {
		return 0, domain.ErrNotConfigured
	}
	if len(entries) == 0 {
		return 0, nil
	}

	client, release, err := w.cfg.connect()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer release()

	objects := make([]*models.Object, len(entries))
	for i, entry := range entries {
		objects[i] = &models.Object{
			Class: w.cfg.collection(),
			Properties: map[string]any{
				"name":        entry.Name,
				"readme":      entry.Readme,
				"description": entry.Description,
				"repository":  entry.Repository,
			},
		}
	}

	resp, err := client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	accepted := 0
	for _, obj := range resp {
		if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
			continue
		}
		accepted++
	}
	return accepted, nil
}
