// ABOUTME: MCP server for mariposa integration with AI agents.
// ABOUTME: Exposes note and category tools over stdio or streamable HTTP.

package mcp

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/mariposa/internal/store"
)

type Server struct {
	server *mcp.Server
	store  *store.Store
}

func NewServer(st *store.Store) *Server {
	s := &Server{store: st}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "mariposa",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Serve runs the server over stdio until the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable-HTTP transport handler. Session
// lifecycle (create on initialize, prune on close, reject unknown ids)
// is managed by the SDK transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, nil)
}
