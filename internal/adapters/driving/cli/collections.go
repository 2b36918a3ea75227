package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List and look up collections",
	Long: `List and look up the semantic collections items have been grouped into.

Without a subcommand, suggests the largest collections whose grouping is
confident enough to show.`,
	RunE: runCollectionsSuggest,
}

var collectionsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search collections by label",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsSearch,
}

var collectionsResolveCmd = &cobra.Command{
	Use:   "resolve [id...]",
	Short: "Resolve collections by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCollectionsResolve,
}

func init() {
	collectionsCmd.PersistentFlags().BoolVar(&collectionsJSON, "json", false, "output results as JSON")
	collectionsCmd.AddCommand(collectionsSearchCmd)
	collectionsCmd.AddCommand(collectionsResolveCmd)
	rootCmd.AddCommand(collectionsCmd)
}

func runCollectionsSuggest(cmd *cobra.Command, _ []string) error {
	if collectionLookup == nil {
		return errors.New("collection lookup not configured")
	}

	collections, err := collectionLookup.Suggest(cmd.Context())
	if err != nil {
		return fmt.Errorf("suggesting collections: %w", err)
	}
	return outputCollections(cmd, collections)
}

func runCollectionsSearch(cmd *cobra.Command, args []string) error {
	if collectionLookup == nil {
		return errors.New("collection lookup not configured")
	}

	collections, err := collectionLookup.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("searching collections: %w", err)
	}
	return outputCollections(cmd, collections)
}

func runCollectionsResolve(cmd *cobra.Command, args []string) error {
	if collectionLookup == nil {
		return errors.New("collection lookup not configured")
	}

	collections, err := collectionLookup.Resolve(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("resolving collections: %w", err)
	}
	return outputCollections(cmd, collections)
}

func outputCollections(cmd *cobra.Command, collections []domain.Collection) error {
	if collectionsJSON {
		data, err := json.MarshalIndent(collections, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal collections: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(collections) == 0 {
		cmd.Println("No collections found.")
		return nil
	}

	for i := range collections {
		cmd.Printf("  [%d] %s (%d items, confidence %.2f)\n",
			i+1, collections[i].Label, collections[i].ItemCount, collections[i].Confidence)
		cmd.Printf("      ID: %s\n", collections[i].ID)
	}
	return nil
}
