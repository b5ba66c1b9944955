package driving

import "github.com/rustyrag/rustyrag/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetSearchMode updates the search mode.
	SetSearchMode(mode domain.SearchMode) error

	// SetStorageBackend updates the record storage backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetWeaviate configures the vector search connection.
	SetWeaviate(url, apiKey string) error

	// SetGitHubToken stores the token used for repository enrichment.
	SetGitHubToken(token string) error

	// Validate checks if current settings are valid for the configured mode.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
