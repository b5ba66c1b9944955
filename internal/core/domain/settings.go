package domain

const unknownDescription = "Unknown"

// SearchMode selects which strategy serves a search request.
type SearchMode string

// Available search modes.
const (
	// SearchModeLocal matches by substring and tag overlap over the
	// record store, entirely in-process.
	SearchModeLocal SearchMode = "local"

	// SearchModeSemantic delegates ranking to the external vector
	// search backend.
	SearchModeSemantic SearchMode = "semantic"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeLocal, SearchModeSemantic:
		return true
	default:
		return false
	}
}

// RequiresBackend returns true if this mode needs the vector backend.
func (m SearchMode) RequiresBackend() bool {
	return m == SearchModeSemantic
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeLocal:
		return "Local (substring + tag matching)"
	case SearchModeSemantic:
		return "Semantic (external vector search)"
	default:
		return unknownDescription
	}
}

// AllSearchModes returns all available search modes.
func AllSearchModes() []SearchMode {
	return []SearchMode{SearchModeLocal, SearchModeSemantic}
}

// StorageBackend identifies which record store adapter is active.
type StorageBackend string

// Available storage backends.
const (
	// StorageMemory keeps records in process memory, reset on restart.
	StorageMemory StorageBackend = "memory"

	// StorageSQLite persists records to a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageMemory:
		return "Memory (non-persistent, reset on restart)"
	case StorageSQLite:
		return "SQLite (persistent local database)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageMemory, StorageSQLite}
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Port is the TCP port the API listens on.
	Port int
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Mode is the strategy GET /search dispatches to.
	Mode SearchMode

	// DefaultLimit applies when a request carries no limit.
	DefaultLimit int
}

// StorageSettings holds record store configuration.
type StorageSettings struct {
	// Backend selects the store adapter.
	Backend StorageBackend

	// Path is the database file location (sqlite only).
	Path string
}

// WeaviateSettings holds external vector-search configuration.
type WeaviateSettings struct {
	// URL is the cluster endpoint.
	URL string

	// APIKey authenticates against the cluster.
	APIKey string

	// Collection is the class holding package objects.
	Collection string

	// Model is the server-side vectorizer model.
	Model string

	// TimeoutSeconds bounds each round-trip.
	TimeoutSeconds int
}

// IsConfigured returns true if the backend connection is set up.
func (w WeaviateSettings) IsConfigured() bool {
	return w.URL != "" && w.APIKey != ""
}

// GitHubSettings holds repository-enrichment configuration.
type GitHubSettings struct {
	// Token is the API token; empty means unauthenticated requests.
	Token string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Server holds HTTP server settings.
	Server ServerSettings

	// Search holds search behaviour settings.
	Search SearchSettings

	// Storage holds record store settings.
	Storage StorageSettings

	// Weaviate holds vector backend settings.
	Weaviate WeaviateSettings

	// GitHub holds enrichment settings.
	GitHub GitHubSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The vector backend is left unconfigured; semantic search stays
// unavailable until the user supplies a cluster URL and API key.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Port: 8080,
		},
		Search: SearchSettings{
			Mode:         SearchModeLocal,
			DefaultLimit: DefaultSearchLimit,
		},
		Storage: StorageSettings{
			Backend: StorageMemory,
			Path:    "", // resolved to ~/.rustyrag/rustyrag.db when sqlite is selected
		},
		Weaviate: WeaviateSettings{
			Collection:     "Crates",
			Model:          "Snowflake/snowflake-arctic-embed-l-v2.0",
			TimeoutSeconds: 30,
		},
		GitHub: GitHubSettings{},
	}
}
