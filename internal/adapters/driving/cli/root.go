// Package cli provides the cobra command tree for wordbook.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordbook/internal/core/ports/driving"
	"github.com/custodia-labs/wordbook/internal/logger"
)

// OpenOptions carries the global flags to a WordsOpener.
type OpenOptions struct {
	// DataDir overrides storage.data_dir when set.
	DataDir string
	// Memory selects the volatile backend.
	Memory bool
	// Follow is set by long-running commands that should pick up
	// commits made by other processes.
	Follow bool
}

// WordsOpener opens the word service for a command. The returned func
// releases everything the opener started.
type WordsOpener func(ctx context.Context, opts OpenOptions) (driving.WordService, func() error, error)

var (
	version = "dev"

	verbose   bool
	dataDir   string
	useMemory bool

	wordService     driving.WordService
	settingsService driving.SettingsService
	wordsOpener     WordsOpener
	closeWords      func() error
)

var rootCmd = &cobra.Command{
	Use:   "wordbook",
	Short: "A small observable word store",
	Long: `wordbook keeps a durable, alphabetized set of unique words.

Words can be added from the command line, an interactive terminal UI or an
MCP-capable assistant. Every client watching the list sees each change as
soon as it is committed, including changes made by other wordbook processes
sharing the same database.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding words.db (overrides storage.data_dir)")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "use a volatile in-memory store")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService sets the settings service used by the settings commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetWordsOpener sets how commands open the word service.
func SetWordsOpener(o WordsOpener) {
	wordsOpener = o
}

// Execute runs the root command and releases the word service afterwards.
func Execute(ctx context.Context) error {
	defer closeOpenedWords()
	return rootCmd.ExecuteContext(ctx)
}

// openWords returns the word service, opening it on first use.
func openWords(cmd *cobra.Command, follow bool) (driving.WordService, error) {
	if wordService != nil {
		return wordService, nil
	}
	if wordsOpener == nil {
		return nil, errors.New("word service not configured")
	}

	svc, closer, err := wordsOpener(cmd.Context(), OpenOptions{
		DataDir: dataDir,
		Memory:  useMemory,
		Follow:  follow,
	})
	if err != nil {
		return nil, fmt.Errorf("opening word store: %w", err)
	}

	wordService = svc
	closeWords = closer
	return svc, nil
}

func closeOpenedWords() {
	if closeWords == nil {
		return
	}
	if err := closeWords(); err != nil {
		logger.Error("closing word store: %v", err)
	}
	closeWords = nil
	wordService = nil
}
