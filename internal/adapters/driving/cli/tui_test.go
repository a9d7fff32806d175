package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_RejectsArgs(t *testing.T) {
	assert.Error(t, tuiCmd.Args(tuiCmd, []string{"extra"}))
}

func TestTUI_NotConfigured(t *testing.T) {
	origWords, origOpener := wordService, wordsOpener
	wordService, wordsOpener = nil, nil
	defer func() { wordService, wordsOpener = origWords, origOpener }()

	_, err := executeCommand(t, "tui")

	assert.ErrorContains(t, err, "word service not configured")
}
