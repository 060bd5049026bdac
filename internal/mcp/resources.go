// ABOUTME: MCP resources for exposing notes as readable resources.
// ABOUTME: Allows AI agents to access note content via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: "mariposa://note/{slug}",
			Name:        "Note",
			Description: "Access individual notes by slug",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	slug, ok := strings.CutPrefix(req.Params.URI, "mariposa://note/")
	if !ok || slug == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	note, err := s.store.GetNote(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	content := fmt.Sprintf("# %s\n\n", note.Title)
	content += fmt.Sprintf("**Category:** %s\n\n", note.Category)
	if len(note.Tags) > 0 {
		content += fmt.Sprintf("**Tags:** %s\n\n", strings.Join(note.Tags, ", "))
	}
	content += note.Content

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}
