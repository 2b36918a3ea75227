package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate missing embeddings",
	Long: `Generate semantic fingerprints for items that do not have one yet,
typically items added while the embedding model was unavailable.

Items are embedded strictly one at a time; the first failure aborts the
run so a flaky model never produces a half-embedded batch.`,
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	if embedderService != nil {
		if !embedderService.Available(cmd.Context()) {
			return errors.New("embedding model is not available; is Ollama running?")
		}
		// Pay the model load cost up front, not on the first item.
		embedderService.Preload(cmd.Context())
	}

	count, err := libraryService.EmbedPending(cmd.Context())
	if err != nil {
		return fmt.Errorf("embedding pending items: %w", err)
	}

	if count == 0 {
		cmd.Println("Nothing to embed.")
		return nil
	}
	cmd.Printf("Embedded %d item(s).\n", count)
	return nil
}
