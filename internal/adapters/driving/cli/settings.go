package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	settingsBaseURL string
	settingsModel   string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long:  `View and configure the embedding model and indexing preferences.`,
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding model",
	Long: `Configure the embedding model used for semantic fingerprints.

Examples:
  medley settings embedding --model all-minilm
  medley settings embedding --base-url http://embed.internal:11434`,
	RunE: runSettingsEmbedding,
}

func init() {
	settingsEmbeddingCmd.Flags().StringVar(&settingsBaseURL, "base-url", "", "Ollama API base URL")
	settingsEmbeddingCmd.Flags().StringVar(&settingsModel, "model", "", "embedding model name")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	cmd.Printf("  Dimensions: %d\n", settings.Embedding.Dimensions)
	cmd.Println()

	cmd.Println("[Search Index]")
	enabled := "no"
	if settings.SearchIndex.Enabled {
		enabled = "yes"
	}
	cmd.Printf("  Enabled: %s\n", enabled)
	cmd.Printf("  Indexed entries: %d\n", settings.SearchIndex.IndexedCount)

	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if settingsBaseURL == "" && settingsModel == "" {
		return errors.New("nothing to change; pass --base-url or --model")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if settingsBaseURL != "" {
		settings.Embedding.BaseURL = settingsBaseURL
	}
	if settingsModel != "" {
		settings.Embedding.Model = settingsModel
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Embedding settings updated. Run 'medley embed' to fingerprint items with the new model.")
	return nil
}
