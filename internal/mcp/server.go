// ABOUTME: MCP server setup for the interval store.
// ABOUTME: Wraps the MCP server with a Store so agents can plan interval workouts.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/intervals/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	store     *storage.Store
	now       func() time.Time
}

// NewServer creates a new MCP server over the given store.
func NewServer(store *storage.Store, version string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "intervals",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
