// Package mcpserver wires the GoCD client and the tool handlers into an MCP
// server instance. No business logic lives here, only composition.
package mcpserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/codewandler/gocd-mcp/internal/analyze"
	"github.com/codewandler/gocd-mcp/internal/config"
	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/codewandler/gocd-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// New creates the MCP server with all GoCD tools registered
func New(cfg *config.Config, version string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	client := gocd.NewClient(cfg.ServerURL, logger)
	analyzer := analyze.New(client, logger)
	toolset := tools.New(client, analyzer, cfg.Token)

	s := server.NewMCPServer(
		"gocd-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Tools for inspecting and operating a GoCD continuous-delivery server: pipelines, stages, jobs, console logs, artifacts and failure analysis."),
	)

	s.AddTools(toolset.Tools()...)

	return s
}

// ServeStdio runs the server on the stdio transport (blocking)
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// ServeHTTP runs the server on the streamable HTTP transport (blocking).
// The bearer token from each request's Authorization header is made
// available to the tool handlers via the request context, so every inbound
// caller uses its own upstream credentials.
func ServeHTTP(s *server.MCPServer, addr string) error {
	httpServer := server.NewStreamableHTTPServer(s,
		server.WithHTTPContextFunc(tokenFromRequest),
	)
	return httpServer.Start(addr)
}

func tokenFromRequest(ctx context.Context, r *http.Request) context.Context {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok && token != "" {
		return tools.WithToken(ctx, token)
	}
	return ctx
}
