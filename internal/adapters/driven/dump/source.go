// Package dump opens package dump streams from local files, stdin and
// Cloud Storage objects, and watches drop directories for new dumps.
package dump

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/rustyrag/rustyrag/internal/core/domain"
)

// StdinSource is the source reference that reads from standard input.
const StdinSource = "-"

// objectPrefix marks a Cloud Storage object reference.
const objectPrefix = "gs://"

// Source is one readable dump stream with a display name.
type Source struct {
	Name   string
	Reader io.ReadCloser
}

// Close releases the underlying stream.
func (s *Source) Close() error {
	return s.Reader.Close()
}

// Open resolves a dump source reference:
//
//	"-"                  standard input
//	gs://bucket/object   Cloud Storage object
//	anything else        local file path
func Open(ctx context.Context, ref string) (*Source, error) {
	switch {
	case ref == StdinSource:
		return &Source{Name: "stdin", Reader: io.NopCloser(os.Stdin)}, nil
	case strings.HasPrefix(ref, objectPrefix):
		return openObject(ctx, ref)
	default:
		f, err := os.Open(ref)
		if err != nil {
			return nil, fmt.Errorf("open dump: %w", err)
		}
		return &Source{Name: ref, Reader: f}, nil
	}
}

// openObject downloads a Cloud Storage object. Ambient credentials are
// used when present; otherwise the request goes out anonymously, which
// still serves public objects.
func openObject(ctx context.Context, ref string) (*Source, error) {
	bucket, object, err := splitObjectRef(ref)
	if err != nil {
		return nil, err
	}

	svc, err := storage.NewService(ctx)
	if err != nil {
		svc, err = storage.NewService(ctx, option.WithoutAuthentication())
		if err != nil {
			return nil, fmt.Errorf("storage service: %w", err)
		}
	}

	resp, err := svc.Objects.Get(bucket, object).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", ref, err)
	}
	return &Source{Name: ref, Reader: resp.Body}, nil
}

// splitObjectRef separates gs://bucket/path/to/object into its bucket and
// object name.
func splitObjectRef(ref string) (bucket, object string, err error) {
	trimmed := strings.TrimPrefix(ref, objectPrefix)
	bucket, object, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("%w: malformed object reference %q", domain.ErrInvalidInput, ref)
	}
	return bucket, object, nil
}
