// Package mcp provides an MCP (Model Context Protocol) server adapter for wordbook.
// It lets AI assistants read the word list and add or clear words.
package mcp

import "errors"

// ErrMissingWordService is returned when the word service is not provided.
var ErrMissingWordService = errors.New("mcp: word service is required")
