// Command medley organizes and searches a personal media library.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/medley-app/medley-cli/internal/adapters/driven/config/file"
	"github.com/medley-app/medley-cli/internal/adapters/driven/embedding/ollama"
	"github.com/medley-app/medley-cli/internal/adapters/driven/searchindex/bleve"
	"github.com/medley-app/medley-cli/internal/adapters/driven/storage/sqlite"
	"github.com/medley-app/medley-cli/internal/adapters/driving/cli"
	"github.com/medley-app/medley-cli/internal/core/services"
	"github.com/medley-app/medley-cli/internal/logger"
)

// version is overridden at link time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	if err := configStore.Watch(); err != nil {
		logger.Warn("config live reload unavailable: %v", err)
	}
	defer configStore.StopWatching()

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening library store: %w", err)
	}
	defer store.Close()

	index, err := bleve.NewIndex("")
	if err != nil {
		return fmt.Errorf("opening search index: %w", err)
	}
	defer index.Close()

	settings := services.NewSettingsService(configStore)
	current, err := settings.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	model := ollama.NewModel(ollama.Config{
		BaseURL: current.Embedding.BaseURL,
		Model:   current.Embedding.Model,
	})
	defer model.Close()

	embedder := services.NewEmbeddingEngine(model)
	indexer := services.NewSearchIndexSync(index, configStore)
	composer := services.NewTextComposer()

	itemStore := store.ItemStore()
	library := services.NewLibrary(itemStore, composer, embedder, indexer)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Library:     library,
		Items:       services.NewItemLookupService(itemStore),
		Collections: services.NewCollectionRanker(store.CollectionStore()),
		Embedder:    embedder,
		Indexer:     indexer,
		Settings:    settings,
	})

	return cli.Execute(ctx)
}
