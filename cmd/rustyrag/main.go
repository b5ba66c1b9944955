// Command rustyrag is the Rusty-RAG entry point. It wires the driven
// adapters into the core services and hands them to the CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyrag/rustyrag/internal/adapters/driven/config/file"
	"github.com/rustyrag/rustyrag/internal/adapters/driven/enrich/github"
	"github.com/rustyrag/rustyrag/internal/adapters/driven/search/local"
	"github.com/rustyrag/rustyrag/internal/adapters/driven/search/weaviate"
	"github.com/rustyrag/rustyrag/internal/adapters/driven/storage/memory"
	"github.com/rustyrag/rustyrag/internal/adapters/driven/storage/sqlite"
	"github.com/rustyrag/rustyrag/internal/adapters/driving/cli"
	"github.com/rustyrag/rustyrag/internal/core/domain"
	"github.com/rustyrag/rustyrag/internal/core/ports/driven"
	"github.com/rustyrag/rustyrag/internal/core/services"
	"github.com/rustyrag/rustyrag/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore := newConfigStore()
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	recordStore, closeStore, err := newRecordStore(settings.Storage)
	if err != nil {
		return fmt.Errorf("opening %s record store: %w", settings.Storage.Backend, err)
	}
	defer closeStore()

	wvCfg := weaviate.ConfigFromSettings(settings.Weaviate)

	recordService := services.NewRecordService(recordStore)
	searchService := services.NewSearchService(
		local.NewMatcher(recordStore),
		weaviate.NewSearcher(wvCfg),
		settings.Search.Mode,
		settings.Search.DefaultLimit,
	)
	ingestOrchestrator := services.NewIngestOrchestrator(
		recordStore,
		weaviate.NewWriter(wvCfg),
		weaviate.NewProvisioner(wvCfg),
		github.NewEnricher(ctx, settings.GitHub.Token),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Records:  recordService,
		Search:   searchService,
		Settings: settingsService,
		Ingest:   ingestOrchestrator,
		Config:   configStore,
	})

	return cli.Execute(ctx)
}

// newConfigStore opens the TOML config store, falling back to in-memory
// settings when the config directory is unusable.
func newConfigStore() driven.ConfigStore {
	store, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("Config file unavailable, settings will not persist: %v", err)
		return memory.NewConfigStore()
	}
	return store
}

// newRecordStore builds the record store selected by settings and returns
// a close function for the caller to defer.
func newRecordStore(cfg domain.StorageSettings) (driven.RecordStore, func(), error) {
	if cfg.Backend == domain.StorageSQLite {
		store, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return memory.NewRecordStore(), func() {}, nil
}
