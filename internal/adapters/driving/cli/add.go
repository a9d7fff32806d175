package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Add words to the list",
	Long: `Adds one or more words. Words already in the list are left alone,
so adding a word twice is not an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	words, err := openWords(cmd, false)
	if err != nil {
		return err
	}

	for _, word := range args {
		if err := words.Insert(cmd.Context(), word); err != nil {
			return fmt.Errorf("add failed: %w", err)
		}
	}

	cmd.Printf("Stored %d word(s).\n", len(args))
	return nil
}
