package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordbook/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List words alphabetically",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output words as a JSON array")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	words, err := openWords(cmd, false)
	if err != nil {
		return err
	}

	snap, err := words.Snapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if listJSON {
		return outputWordsJSON(cmd, snap)
	}
	outputWordsText(cmd, snap)
	return nil
}

func outputWordsJSON(cmd *cobra.Command, snap domain.Snapshot) error {
	data, err := json.MarshalIndent(snap.Strings(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling words: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputWordsText(cmd *cobra.Command, snap domain.Snapshot) {
	if snap.Len() == 0 {
		cmd.Println("No words stored.")
		return
	}
	for _, w := range snap.Words {
		cmd.Println(displayWord(w.Text))
	}
}

// displayWord makes the empty word visible in text output.
func displayWord(text string) string {
	if text == "" {
		return `""`
	}
	return text
}
