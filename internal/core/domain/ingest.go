package domain

// PackageEntry is one (name, readme, description, repository) tuple from a
// catalog dump. It is the unit both ingest destinations consume. Tags and
// Stars are only populated by enrichment, never by the dump itself.
type PackageEntry struct {
	Name        string
	Readme      string
	Description string
	Repository  string
	Tags        []string
	Stars       int
}

// ApplyRepoInfo merges fetched repository metadata into the entry. The
// fetched description fills only an empty description; topics extend tags.
func (e *PackageEntry) ApplyRepoInfo(info RepoInfo) {
	if e.Description == "" {
		e.Description = info.Description
	}
	e.Tags = append(e.Tags, info.Topics...)
	e.Stars = info.Stars
}

// Draft converts the entry into a record draft for local ingestion.
func (e PackageEntry) Draft() RecordDraft {
	draft := RecordDraft{
		Title:       e.Name,
		Content:     e.Readme,
		Description: e.Description,
		RepoURL:     e.Repository,
		Tags:        e.Tags,
	}
	if e.Stars > 0 {
		draft.Metadata = Metadata{"stars": NumberValue(float64(e.Stars))}
	}
	return draft
}

// IngestDestination selects where ingested entries are written.
type IngestDestination string

// Available ingest destinations.
const (
	// IngestVector writes entries to the external vector collection.
	IngestVector IngestDestination = "vector"

	// IngestLocal writes entries to the record store.
	IngestLocal IngestDestination = "local"

	// IngestBoth writes entries to both destinations.
	IngestBoth IngestDestination = "both"
)

// IsValid returns true if the destination is recognised.
func (d IngestDestination) IsValid() bool {
	switch d {
	case IngestVector, IngestLocal, IngestBoth:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d IngestDestination) String() string {
	return string(d)
}

// WritesVector returns true if entries go to the vector collection.
func (d IngestDestination) WritesVector() bool {
	return d == IngestVector || d == IngestBoth
}

// WritesLocal returns true if entries go to the record store.
func (d IngestDestination) WritesLocal() bool {
	return d == IngestLocal || d == IngestBoth
}

// IngestReport summarises one ingest run.
type IngestReport struct {
	// Rows is how many CSV rows the stream yielded.
	Rows int

	// Ingested is how many entries reached every destination.
	Ingested int

	// Skipped counts malformed rows (fewer than four fields).
	Skipped int

	// Enriched counts entries that gained repository metadata.
	Enriched int

	// Failed counts entries rejected by a destination.
	Failed int
}

// RepoInfo is repository metadata fetched during enrichment.
type RepoInfo struct {
	// Description is the repository summary.
	Description string

	// Topics are the repository topic labels.
	Topics []string

	// Stars is the stargazer count.
	Stars int
}
