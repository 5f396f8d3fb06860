package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/apidash/internal/history"
	"github.com/ziadkadry99/apidash/internal/panels"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes one fetch tool per panel.
type Server struct {
	registry *panels.Registry
	history  *history.Store
	logger   zerolog.Logger
	tools    []server.ServerTool
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server for the given registry. store may be
// nil to skip recording fetches.
func NewServer(registry *panels.Registry, store *history.Store, logger zerolog.Logger) *Server {
	s := &Server{
		registry: registry,
		history:  store,
		logger:   logger.With().Str("component", "mcp").Logger(),
	}

	s.mcp = server.NewMCPServer(
		"apidash",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds a tool for every panel in registry order.
func (s *Server) registerTools() {
	for _, p := range s.registry.List() {
		s.tools = append(s.tools, server.ServerTool{
			Tool:    panelTool(p),
			Handler: s.fetchHandler(p),
		})
	}
	s.mcp.AddTools(s.tools...)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
