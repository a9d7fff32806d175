package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for wordbook resources.
	uriScheme = "wordbook://"

	// WordsURI names the resource holding the current snapshot.
	WordsURI = uriScheme + "words"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         WordsURI,
		Name:        "words",
		Description: "Alphabetized snapshot of every stored word",
		MIMEType:    "application/json",
	}, s.handleWordsResource)
}

// handleWordsResource returns the latest snapshot as JSON.
func (s *Server) handleWordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if req.Params.URI != WordsURI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snap, err := s.ports.Words.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}

	data, err := json.MarshalIndent(wordsOutput(snap, ""), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling words: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
