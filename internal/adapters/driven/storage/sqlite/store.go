package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rustyrag/rustyrag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// recordColumns is the column list every record query selects.
const recordColumns = "id, title, content, repo_url, package_url, description, tags, metadata, created_at, updated_at"

// Store is a SQLite-based implementation of driven.RecordStore.
type Store struct {
	db    *sql.DB
	path  string
	now   func() time.Time
	newID func() string
}

// NewStore creates a new SQLite store at the specified path.
// If path is empty, defaults to ~/.rustyrag/rustyrag.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".rustyrag", "rustyrag.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		path:  path,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_records.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Insert materialises a draft with a fresh ID and the current time.
func (s *Store) Insert(ctx context.Context, draft domain.RecordDraft) (domain.Record, error) {
	rec := domain.NewRecord(draft, s.newID(), s.now())

	tagsJSON, metadataJSON, err := encodeRecordJSON(rec)
	if err != nil {
		return domain.Record{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, title, content, repo_url, package_url, description, tags, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Title, rec.Content, rec.RepoURL, rec.PackageURL, rec.Description,
		tagsJSON, metadataJSON, rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.Record{}, domain.ErrAlreadyExists
		}
		return domain.Record{}, fmt.Errorf("inserting record: %w", err)
	}
	return rec, nil
}

// InsertBatch stores all drafts under one shared timestamp, in a single
// transaction so a failure inserts nothing.
func (s *Store) InsertBatch(ctx context.Context, drafts []domain.RecordDraft) ([]domain.Record, error) {
	if len(drafts) > domain.MaxBatchSize {
		return nil, domain.ErrBatchTooLarge
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, title, content, repo_url, package_url, description, tags, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := s.now()
	records := make([]domain.Record, 0, len(drafts))
	for _, draft := range drafts {
		rec := domain.NewRecord(draft, s.newID(), now)

		tagsJSON, metadataJSON, err := encodeRecordJSON(rec)
		if err != nil {
			return nil, err
		}

		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Title, rec.Content, rec.RepoURL,
			rec.PackageURL, rec.Description, tagsJSON, metadataJSON,
			rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano()); err != nil {
			return nil, fmt.Errorf("inserting record: %w", err)
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return records, nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)

	return scanRecord(row)
}

// List returns records ordered by created_at descending, ties broken by
// insertion order.
func (s *Store) List(ctx context.Context, limit, offset int) ([]domain.Record, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records ORDER BY created_at DESC, seq ASC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// All returns every record in insertion order.
func (s *Store) All(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// ==================== Helper Functions ====================

// encodeRecordJSON marshals the tags and metadata columns.
func encodeRecordJSON(rec domain.Record) (tags string, metadata string, err error) {
	tagsJSON, err := json.Marshal(rec.Tags)
	if err != nil {
		return "", "", fmt.Errorf("marshalling tags: %w", err)
	}
	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return "", "", fmt.Errorf("marshalling metadata: %w", err)
	}
	return string(tagsJSON), string(metadataJSON), nil
}

// scanner abstracts *sql.Row and *sql.Rows for record scanning.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single record row.
func scanRecord(row *sql.Row) (domain.Record, error) {
	rec, err := scanRecordFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, err
	}
	return rec, nil
}

// scanRecords scans all rows from a record query.
func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecordFrom(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// scanRecordFrom scans the record column set from any scanner.
func scanRecordFrom(sc scanner) (domain.Record, error) {
	var rec domain.Record
	var tagsJSON, metadataJSON string
	var createdAt, updatedAt int64

	if err := sc.Scan(&rec.ID, &rec.Title, &rec.Content, &rec.RepoURL, &rec.PackageURL,
		&rec.Description, &tagsJSON, &metadataJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Record{}, err
		}
		return domain.Record{}, fmt.Errorf("scanning record: %w", err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		return domain.Record{}, fmt.Errorf("unmarshaling tags: %w", err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &rec.Metadata); err != nil {
		return domain.Record{}, fmt.Errorf("unmarshaling metadata: %w", err)
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if rec.Metadata == nil {
		rec.Metadata = domain.Metadata{}
	}

	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return rec, nil
}
