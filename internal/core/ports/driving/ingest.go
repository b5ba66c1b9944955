package driving

import (
	"context"
	"io"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// IngestOrchestrator coordinates loading package dumps into the backends.
type IngestOrchestrator interface {
	// Ingest parses a CSV package dump and writes it to the selected
	// destination. Malformed rows are skipped, not fatal.
	Ingest(ctx context.Context, r io.Reader, opts IngestOptions) (domain.IngestReport, error)

	// Provision recreates the vector collection schema.
	// Existing data in the collection is destroyed.
	Provision(ctx context.Context) error

	// Ready reports whether the vector backend is reachable.
	Ready(ctx context.Context) error
}

// IngestOptions controls a single ingest run.
type IngestOptions struct {
	// Destination selects which backends receive the entries.
	Destination domain.IngestDestination

	// Enrich fetches repository metadata for each entry before writing.
	Enrich bool
}
