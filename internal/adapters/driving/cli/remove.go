package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an item from the library",
	Long:  `Remove an item by internal ID, along with its entry in the system search index.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RemoveItem(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing item: %w", err)
	}

	cmd.Printf("Removed %s\n", args[0])
	return nil
}
