package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMCPCmd_Structure(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)

	var serve bool
	for _, c := range mcpCmd.Commands() {
		if c.Name() == "serve" {
			serve = true
		}
	}
	assert.True(t, serve)
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")

	if assert.NotNil(t, flag) {
		assert.Equal(t, "p", flag.Shorthand)
		assert.Equal(t, "0", flag.DefValue)
	}
}

func TestMCPServe_NotConfigured(t *testing.T) {
	origWords, origOpener := wordService, wordsOpener
	wordService, wordsOpener = nil, nil
	defer func() { wordService, wordsOpener = origWords, origOpener }()

	_, err := executeCommand(t, "mcp", "serve")

	assert.ErrorContains(t, err, "word service not configured")
}
