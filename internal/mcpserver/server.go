package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/partscout/partscout/internal/engine"
)

const (
	// ServerName is the MCP server name
	ServerName = "partscout-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	engine *engine.Engine
	log    zerolog.Logger
}

// NewServer creates a new MCP server instance around an already
// constructed search engine. The caller owns the engine's collaborators
// and is responsible for closing them after Serve returns.
func NewServer(eng *engine.Engine, log zerolog.Logger) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:    mcpServer,
		engine: eng,
		log:    log,
	}

	s.registerTools()

	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchPartsTool(), s.handleSearchParts)
	s.mcp.AddTool(getPartTool(), s.handleGetPart)
	s.mcp.AddTool(findSimilarPartsTool(), s.handleFindSimilarParts)
	s.mcp.AddTool(getRecommendationsTool(), s.handleGetRecommendations)
}
