package domain

import (
	"fmt"
	"time"
)

// MaxBatchSize is the largest number of drafts one batch insert accepts.
// Batches above this size are rejected whole with ErrBatchTooLarge.
const MaxBatchSize = 100

// Record represents a stored developer-package entity.
// It is the canonical representation owned by the record store.
type Record struct {
	// ID is the unique identifier, assigned at creation and immutable.
	// It is never client-supplied.
	ID string

	// Title is the human-readable name of the package.
	Title string

	// Content is the full text body (typically the README).
	Content string

	// RepoURL is the source repository location, if known.
	RepoURL string

	// PackageURL is the package-listing page, if known.
	PackageURL string

	// Description is a short summary, if known.
	Description string

	// Tags are free-form labels. Never nil once materialized;
	// duplicates round-trip as supplied.
	Tags []string

	// Metadata contains typed key-value pairs. Never nil once materialized.
	Metadata Metadata

	// CreatedAt is when the record was inserted (UTC).
	CreatedAt time.Time

	// UpdatedAt is when the record was last written (UTC).
	// Invariant: CreatedAt <= UpdatedAt.
	UpdatedAt time.Time
}

// RecordDraft is the client-supplied input used to construct a Record.
// It carries no identifier and no timestamps.
type RecordDraft struct {
	Title       string
	Content     string
	RepoURL     string
	PackageURL  string
	Description string
	Tags        []string
	Metadata    Metadata
}

// Validate reports whether the draft can materialize into a Record.
func (d RecordDraft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidDraft)
	}
	if d.Content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidDraft)
	}
	return nil
}

// NewRecord materializes a draft into a Record with the given identifier
// and timestamp. Both timestamps are set to now; nil tags and metadata
// become empty, never nil.
func NewRecord(draft RecordDraft, id string, now time.Time) Record {
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	meta := draft.Metadata
	if meta == nil {
		meta = Metadata{}
	}

	return Record{
		ID:          id,
		Title:       draft.Title,
		Content:     draft.Content,
		RepoURL:     draft.RepoURL,
		PackageURL:  draft.PackageURL,
		Description: draft.Description,
		Tags:        tags,
		Metadata:    meta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy safe to hand outside the store.
// Responses are projections of store state, never aliases into it.
func (r Record) Clone() Record {
	out := r
	out.Tags = make([]string, len(r.Tags))
	copy(out.Tags, r.Tags)
	out.Metadata = r.Metadata.Clone()
	return out
}
