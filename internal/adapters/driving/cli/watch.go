package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordbook/internal/core/domain"
)

var watchJSON bool

// watchLine is one --json output line.
type watchLine struct {
	Version uint64   `json:"version"`
	Words   []string `json:"words"`
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the word list every time it changes",
	Long: `Prints the current word list, then prints it again after every change
until interrupted. Changes made by other wordbook processes are included
when watch.enabled is set.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "print one JSON snapshot per line")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	words, err := openWords(cmd, true)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sub, err := words.ObserveAlphabetized(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	defer sub.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			if watchJSON {
				if err := enc.Encode(watchLine{Version: snap.Version, Words: snap.Strings()}); err != nil {
					return fmt.Errorf("encoding snapshot: %w", err)
				}
				continue
			}
			cmd.Println(formatSnapshot(snap))
		}
	}
}

func formatSnapshot(snap domain.Snapshot) string {
	if snap.Len() == 0 {
		return fmt.Sprintf("v%d: (empty)", snap.Version)
	}
	words := make([]string, snap.Len())
	for i, w := range snap.Words {
		words[i] = displayWord(w.Text)
	}
	return fmt.Sprintf("v%d: %s", snap.Version, strings.Join(words, ", "))
}
