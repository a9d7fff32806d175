package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var clearYes bool

// stdinIsTerminal reports whether a confirmation prompt can be answered.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every word",
	Long: `Deletes every word in the list. Asks for confirmation unless --yes is
given; without a terminal to ask on, --yes is required.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	words, err := openWords(cmd, false)
	if err != nil {
		return err
	}

	if !clearYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to clear without --yes: stdin is not a terminal")
		}

		snap, err := words.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		cmd.Printf("Delete all %d word(s)? [y/N]: ", snap.Len())

		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n') //nolint:errcheck // EOF means no
		if !confirmed(answer) {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := words.DeleteAll(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Println("Cleared all words.")
	return nil
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
