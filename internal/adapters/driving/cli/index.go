package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the system search index",
	Long: `Manage Medley's entries in the system search index.

Index operations are best-effort: a failing index never blocks item
management, it only means entries may be missing until the next reindex.`,
	RunE: runIndexStatus,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show indexing state",
	RunE:  runIndexStatus,
}

var indexReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild all index entries",
	Long: `Clear Medley's entries from the system search index and rebuild them
from the library. With an empty library this is a no-op; the index is
left untouched.`,
	RunE: runIndexReindex,
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all of Medley's index entries",
	RunE:  runIndexClear,
}

var indexEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable index mirroring",
	RunE:  func(cmd *cobra.Command, _ []string) error { return setIndexing(cmd, true) },
}

var indexDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable index mirroring",
	Long: `Disable mirroring of new and updated items into the system search index.

Existing entries are not removed; use 'medley index clear' for that.`,
	RunE: func(cmd *cobra.Command, _ []string) error { return setIndexing(cmd, false) },
}

func init() {
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexReindexCmd)
	indexCmd.AddCommand(indexClearCmd)
	indexCmd.AddCommand(indexEnableCmd)
	indexCmd.AddCommand(indexDisableCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if indexerService == nil {
		return errors.New("indexer not configured")
	}

	status := indexerService.Status()
	state := "disabled"
	if status.Enabled {
		state = "enabled"
	}
	cmd.Printf("Indexing: %s\n", state)
	cmd.Printf("Indexed entries: %d\n", status.IndexedCount)
	return nil
}

func runIndexReindex(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.ReindexLibrary(cmd.Context()); err != nil {
		return fmt.Errorf("reindexing library: %w", err)
	}

	if indexerService != nil {
		cmd.Printf("Reindex complete: %d entries.\n", indexerService.Status().IndexedCount)
	} else {
		cmd.Println("Reindex complete.")
	}
	return nil
}

func runIndexClear(cmd *cobra.Command, _ []string) error {
	if indexerService == nil {
		return errors.New("indexer not configured")
	}

	indexerService.ClearAll(cmd.Context())
	cmd.Println("Cleared all index entries.")
	return nil
}

func setIndexing(cmd *cobra.Command, enabled bool) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetIndexingEnabled(enabled); err != nil {
		return fmt.Errorf("updating indexing preference: %w", err)
	}

	if enabled {
		cmd.Println("Indexing enabled.")
	} else {
		cmd.Println("Indexing disabled. Existing entries were kept.")
	}
	return nil
}
