package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medley-app/medley-cli/internal/core/ports/driving"
)

var (
	addRemoteID    string
	addLocalPath   string
	addTitle       string
	addChannel     string
	addDescription string
	addTags        []string
	addDuration    float64
	addOCRText     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Import an item into the library",
	Long: `Import a media item into the library.

Exactly one of --remote and --local is required; the item's external
identity is derived from it and never changes afterwards. The item is
embedded and mirrored into the system search index immediately. If the
embedding model is not available the item is still saved; run
'medley embed' later to fill in missing fingerprints.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addRemoteID, "remote", "", "remote source identifier")
	addCmd.Flags().StringVar(&addLocalPath, "local", "", "absolute path of a local file")
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "item title (required)")
	addCmd.Flags().StringVar(&addChannel, "channel", "", "channel or author name")
	addCmd.Flags().StringVar(&addDescription, "description", "", "long-form description")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "tag (repeatable)")
	addCmd.Flags().Float64Var(&addDuration, "duration", 0, "playback duration in seconds")
	addCmd.Flags().StringVar(&addOCRText, "ocr-text", "", "pre-computed on-screen text")
	_ = addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	item, err := libraryService.AddItem(cmd.Context(), driving.NewItemInput{
		RemoteID:        addRemoteID,
		LocalPath:       addLocalPath,
		Title:           addTitle,
		Channel:         addChannel,
		Description:     addDescription,
		Tags:            addTags,
		DurationSeconds: addDuration,
		OCRText:         addOCRText,
	})
	if err != nil {
		return fmt.Errorf("adding item: %w", err)
	}

	cmd.Printf("Added %q (%s)\n", item.Title, item.ID)
	if !item.HasEmbedding() {
		cmd.Println("Embedding deferred; run 'medley embed' once the model is available.")
	}
	return nil
}
