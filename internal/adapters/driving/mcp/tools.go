package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wordbook/internal/core/domain"
)

// AddWordInput is the input schema for the add_word tool.
type AddWordInput struct {
	Word string `json:"word" jsonschema:"the word to store; adding an existing word changes nothing"`
}

// ClearWordsInput is the input schema for the clear_words tool.
type ClearWordsInput struct{}

// ListWordsInput is the input schema for the list_words tool.
type ListWordsInput struct {
	Prefix string `json:"prefix,omitempty" jsonschema:"only return words starting with this prefix"`
}

// WordsOutput is the output schema shared by all word tools.
type WordsOutput struct {
	Version uint64   `json:"version"`
	Words   []string `json:"words"`
	Count   int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_word",
		Description: "Add a word to the word list. Duplicates are ignored.",
	}, s.handleAddWord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_words",
		Description: "Remove every word from the word list",
	}, s.handleClearWords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_words",
		Description: "List stored words in alphabetical order",
	}, s.handleListWords)
}

// handleAddWord handles the add_word tool invocation.
func (s *Server) handleAddWord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddWordInput,
) (*mcp.CallToolResult, WordsOutput, error) {
	if err := s.ports.Words.Insert(ctx, input.Word); err != nil {
		return nil, WordsOutput{}, fmt.Errorf("adding word: %w", err)
	}
	return s.currentWords(ctx, "")
}

// handleClearWords handles the clear_words tool invocation.
func (s *Server) handleClearWords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ClearWordsInput,
) (*mcp.CallToolResult, WordsOutput, error) {
	if err := s.ports.Words.DeleteAll(ctx); err != nil {
		return nil, WordsOutput{}, fmt.Errorf("clearing words: %w", err)
	}
	return s.currentWords(ctx, "")
}

// handleListWords handles the list_words tool invocation.
func (s *Server) handleListWords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListWordsInput,
) (*mcp.CallToolResult, WordsOutput, error) {
	return s.currentWords(ctx, input.Prefix)
}

func (s *Server) currentWords(ctx context.Context, prefix string) (*mcp.CallToolResult, WordsOutput, error) {
	snap, err := s.ports.Words.Snapshot(ctx)
	if err != nil {
		return nil, WordsOutput{}, fmt.Errorf("reading words: %w", err)
	}
	return nil, wordsOutput(snap, prefix), nil
}

func wordsOutput(snap domain.Snapshot, prefix string) WordsOutput {
	words := make([]string, 0, snap.Len())
	for _, w := range snap.Words {
		if strings.HasPrefix(w.Text, prefix) {
			words = append(words, w.Text)
		}
	}
	return WordsOutput{
		Version: snap.Version,
		Words:   words,
		Count:   len(words),
	}
}
