// Package cli provides the cobra-based command-line interface for Medley.
// Commands receive their services through SetServices, keeping the CLI a
// thin driving adapter over the core ports.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/medley-app/medley-cli/internal/core/ports/driving"
	"github.com/medley-app/medley-cli/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// Injected services, set once at startup via SetServices.
var (
	libraryService   driving.LibraryService
	itemLookup       driving.ItemLookup
	collectionLookup driving.CollectionLookup
	embedderService  driving.Embedder
	indexerService   driving.SearchIndexer
	settingsService  driving.SettingsService
)

// verboseFlag enables debug logging.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "medley",
	Short: "Organize and search your personal media library",
	Long: `Medley keeps a semantic index of your personal media library.

Items imported from remote sources or local files get a text fingerprint
built from their metadata, an embedding vector for semantic grouping, and
an entry in the system search index so they show up in global search.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// Services aggregates everything the commands need.
type Services struct {
	Library     driving.LibraryService
	Items       driving.ItemLookup
	Collections driving.CollectionLookup
	Embedder    driving.Embedder
	Indexer     driving.SearchIndexer
	Settings    driving.SettingsService
}

// SetServices injects the services consumed by the commands.
func SetServices(s Services) {
	libraryService = s.Library
	itemLookup = s.Items
	collectionLookup = s.Collections
	embedderService = s.Embedder
	indexerService = s.Indexer
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}
