package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates a record identifier is already taken.
	// Identifier collisions are never resolved by overwrite.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrBatchTooLarge indicates a batch insert exceeded MaxBatchSize drafts.
	// The whole batch is rejected; no partial insert happens.
	ErrBatchTooLarge = errors.New("batch too large")

	// ErrInvalidDraft indicates a client-supplied draft is malformed.
	ErrInvalidDraft = errors.New("invalid record draft")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates the semantic search backend is missing
	// required connection configuration. Requests fail fast and never
	// fall back to the local matcher.
	ErrNotConfigured = errors.New("vector search not configured")

	// ErrUpstream indicates the semantic search backend was unreachable
	// or returned a malformed response. The underlying cause is wrapped.
	ErrUpstream = errors.New("upstream search failure")
)
