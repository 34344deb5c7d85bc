package cmd

import (
	"fmt"

	"garim-lab/internal/model"
	"garim-lab/internal/ui"

	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:       "feed [category id or label]",
	Short:     "Print the current headlines of a category",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"politics", "economy", "society"},
	RunE: func(cmd *cobra.Command, args []string) error {
		source, closeFeed := newFeedSource(GetConfig())
		defer closeFeed()

		cats := model.Categories()
		if len(args) == 1 {
			cat, ok := source.ResolveCategory(args[0])
			if !ok {
				return fmt.Errorf("unknown category %q", args[0])
			}
			cats = []model.Category{cat}
		}
		for _, cat := range cats {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FeedList(cat, source.FetchByCategory(cmd.Context(), cat)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
}
