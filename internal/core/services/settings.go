package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
	"github.com/rustyrag/rustyrag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerPort      = "server.port"
	keySearchMode      = "search.mode"
	keySearchLimit     = "search.default_limit"
	keyStorageBackend  = "storage.backend"
	keyStoragePath     = "storage.path"
	keyWeaviateURL     = "weaviate.url"
	keyWeaviateAPIKey  = "weaviate.api_key"
	keyWeaviateClass   = "weaviate.collection"
	keyWeaviateModel   = "weaviate.model"
	keyWeaviateTimeout = "weaviate.timeout_seconds"
	keyGitHubToken     = "github.token"
)

// Environment variables override file configuration.
//
//nolint:gosec // G101: These are env var names, not actual credentials.
const (
	envServerPort     = "PORT"
	envSearchMode     = "RUSTYRAG_SEARCH_MODE"
	envStorageBackend = "RUSTYRAG_STORAGE"
	envWeaviateURL    = "WEAVIATE_URL"
	envWeaviateAPIKey = "WEAVIATE_API_KEY"
	envGitHubToken    = "GITHUB_TOKEN"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Precedence per field:
// environment variable, then config file, then default.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Port: s.getInt(keyServerPort, defaults.Server.Port),
		},
		Search: domain.SearchSettings{
			Mode:         s.getSearchMode(defaults.Search.Mode),
			DefaultLimit: s.getInt(keySearchLimit, defaults.Search.DefaultLimit),
		},
		Storage: domain.StorageSettings{
			Backend: s.getStorageBackend(defaults.Storage.Backend),
			Path:    s.configStore.GetString(keyStoragePath), // No default - empty resolves to ~/.rustyrag
		},
		Weaviate: domain.WeaviateSettings{
			URL:            s.configStore.GetString(keyWeaviateURL),
			APIKey:         s.configStore.GetString(keyWeaviateAPIKey),
			Collection:     s.getString(keyWeaviateClass, defaults.Weaviate.Collection),
			Model:          s.getString(keyWeaviateModel, defaults.Weaviate.Model),
			TimeoutSeconds: s.getInt(keyWeaviateTimeout, defaults.Weaviate.TimeoutSeconds),
		},
		GitHub: domain.GitHubSettings{
			Token: s.configStore.GetString(keyGitHubToken),
		},
	}

	s.applyEnv(settings)

	return settings, nil
}

// applyEnv overlays environment variables onto settings.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if val := os.Getenv(envServerPort); val != "" {
		if port, err := strconv.Atoi(val); err == nil && port > 0 {
			settings.Server.Port = port
		}
	}
	if val := os.Getenv(envSearchMode); val != "" {
		if mode := domain.SearchMode(val); mode.IsValid() {
			settings.Search.Mode = mode
		}
	}
	if val := os.Getenv(envStorageBackend); val != "" {
		if backend := domain.StorageBackend(val); backend.IsValid() {
			settings.Storage.Backend = backend
		}
	}
	if val := os.Getenv(envWeaviateURL); val != "" {
		settings.Weaviate.URL = val
	}
	if val := os.Getenv(envWeaviateAPIKey); val != "" {
		settings.Weaviate.APIKey = val
	}
	if val := os.Getenv(envGitHubToken); val != "" {
		settings.GitHub.Token = val
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save server settings
	if err := s.configStore.Set(keyServerPort, settings.Server.Port); err != nil {
		return fmt.Errorf("save server port: %w", err)
	}

	// Save search settings
	if err := s.configStore.Set(keySearchMode, settings.Search.Mode.String()); err != nil {
		return fmt.Errorf("save search mode: %w", err)
	}
	if err := s.configStore.Set(keySearchLimit, settings.Search.DefaultLimit); err != nil {
		return fmt.Errorf("save search default_limit: %w", err)
	}

	// Save storage settings
	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if settings.Storage.Path != "" {
		if err := s.configStore.Set(keyStoragePath, settings.Storage.Path); err != nil {
			return fmt.Errorf("save storage path: %w", err)
		}
	}

	// Save weaviate settings
	if err := s.configStore.Set(keyWeaviateURL, settings.Weaviate.URL); err != nil {
		return fmt.Errorf("save weaviate url: %w", err)
	}
	if settings.Weaviate.APIKey != "" {
		if err := s.configStore.Set(keyWeaviateAPIKey, settings.Weaviate.APIKey); err != nil {
			return fmt.Errorf("save weaviate api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyWeaviateClass, settings.Weaviate.Collection); err != nil {
		return fmt.Errorf("save weaviate collection: %w", err)
	}
	if err := s.configStore.Set(keyWeaviateModel, settings.Weaviate.Model); err != nil {
		return fmt.Errorf("save weaviate model: %w", err)
	}
	if err := s.configStore.Set(keyWeaviateTimeout, settings.Weaviate.TimeoutSeconds); err != nil {
		return fmt.Errorf("save weaviate timeout_seconds: %w", err)
	}

	// Save github settings
	if settings.GitHub.Token != "" {
		if err := s.configStore.Set(keyGitHubToken, settings.GitHub.Token); err != nil {
			return fmt.Errorf("save github token: %w", err)
		}
	}

	return nil
}

// SetSearchMode updates the search mode.
func (s *SettingsService) SetSearchMode(mode domain.SearchMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid search mode: %s", mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Search.Mode = mode

	return s.Save(settings)
}

// SetStorageBackend updates the record store backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Storage.Backend = backend

	return s.Save(settings)
}

// SetWeaviate configures the vector backend connection.
func (s *SettingsService) SetWeaviate(url, apiKey string) error {
	if url == "" {
		return fmt.Errorf("weaviate url cannot be empty")
	}
	if apiKey == "" {
		return fmt.Errorf("weaviate api key cannot be empty")
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Weaviate.URL = url
	settings.Weaviate.APIKey = apiKey

	return s.Save(settings)
}

// SetGitHubToken configures the enrichment API token.
func (s *SettingsService) SetGitHubToken(token string) error {
	if token == "" {
		return fmt.Errorf("github token cannot be empty")
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.GitHub.Token = token

	return s.Save(settings)
}

// Validate checks if current settings are valid for the configured mode.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Search.Mode.IsValid() {
		return fmt.Errorf("invalid search mode: %s", settings.Search.Mode)
	}

	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", settings.Storage.Backend)
	}

	// Check vector backend configuration if required
	if settings.Search.Mode.RequiresBackend() {
		if !settings.Weaviate.IsConfigured() {
			return fmt.Errorf(
				"search mode %q requires weaviate.url and weaviate.api_key to be configured",
				settings.Search.Mode,
			)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSearchMode(defaultVal domain.SearchMode) domain.SearchMode {
	val := s.configStore.GetString(keySearchMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.SearchMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getStorageBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
