// Package server exposes the locator engine as Model Context Protocol tools.
package server

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/scan"
)

// Config holds MCP server configuration.
type Config struct {
	// Transport is "stdio" or "http" (streamable HTTP).
	Transport string
	Port      int
	Version   string
}

// Server wraps the MCP server around one scan service.
type Server struct {
	svc *scan.Service
	log *zap.Logger
	mcp *mcpserver.MCPServer
}

// New creates a server with every tool registered.
func New(svc *scan.Service, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		svc: svc,
		log: log,
		mcp: mcpserver.NewMCPServer("mobile-locator", version, mcpserver.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve blocks serving the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "", "stdio":
		s.log.Info("serving MCP over stdio")
		return mcpserver.ServeStdio(s.mcp)
	case "http", "streamable-http":
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.log.Info("serving MCP over streamable HTTP", zap.String("addr", addr))
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or http)", cfg.Transport)
	}
}
