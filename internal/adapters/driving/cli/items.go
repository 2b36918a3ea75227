package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

var itemsJSON bool

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List and look up library items",
	Long: `List and look up library items.

Without a subcommand, suggests the most recently watched or added items.`,
	RunE: runItemsSuggest,
}

var itemsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search items by title, channel or tag",
	Long: `Search items whose title, channel or any tag contains the query,
case-insensitive, over the 100 most recently relevant items.`,
	Args: cobra.ExactArgs(1),
	RunE: runItemsSearch,
}

var itemsResolveCmd = &cobra.Command{
	Use:   "resolve [id...]",
	Short: "Resolve items by remote ID or local path",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runItemsResolve,
}

func init() {
	itemsCmd.PersistentFlags().BoolVar(&itemsJSON, "json", false, "output results as JSON")
	itemsCmd.AddCommand(itemsSearchCmd)
	itemsCmd.AddCommand(itemsResolveCmd)
	rootCmd.AddCommand(itemsCmd)
}

func runItemsSuggest(cmd *cobra.Command, _ []string) error {
	if itemLookup == nil {
		return errors.New("item lookup not configured")
	}

	items, err := itemLookup.Suggest(cmd.Context())
	if err != nil {
		return fmt.Errorf("suggesting items: %w", err)
	}
	return outputItems(cmd, items)
}

func runItemsSearch(cmd *cobra.Command, args []string) error {
	if itemLookup == nil {
		return errors.New("item lookup not configured")
	}

	items, err := itemLookup.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("searching items: %w", err)
	}
	return outputItems(cmd, items)
}

func runItemsResolve(cmd *cobra.Command, args []string) error {
	if itemLookup == nil {
		return errors.New("item lookup not configured")
	}

	items, err := itemLookup.Resolve(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("resolving items: %w", err)
	}
	return outputItems(cmd, items)
}

func outputItems(cmd *cobra.Command, items []domain.MediaItem) error {
	if itemsJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal items: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		cmd.Println("No items found.")
		return nil
	}

	for i := range items {
		title := items[i].Title
		if title == "" {
			title = items[i].ExternalIdentity()
		}

		cmd.Printf("  [%d] %s\n", i+1, title)
		cmd.Printf("      ID: %s\n", items[i].ID)
		if items[i].Channel != "" {
			cmd.Printf("      Channel: %s\n", items[i].Channel)
		}
		if len(items[i].Tags) > 0 {
			cmd.Printf("      Tags: %s\n", strings.Join(items[i].Tags, ", "))
		}
		if items[i].DurationSeconds > 0 {
			cmd.Printf("      Duration: %s\n", formatDuration(items[i].DurationSeconds))
		}
		cmd.Println()
	}
	return nil
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}
