// Package tools exposes the GoCD client operations as MCP tools. Handlers
// produce either a JSON-serialized domain object or a raw text payload
// (console logs, artifacts), and convert every failure into the uniform
// error envelope so callers never see a raw failure.
package tools

import (
	"context"

	"github.com/codewandler/gocd-mcp/internal/analyze"
	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/mark3labs/mcp-go/server"
)

// Toolset bundles the dependencies shared by all tool handlers
type Toolset struct {
	client       *gocd.Client
	analyzer     *analyze.Analyzer
	defaultToken string
}

// New creates a Toolset. defaultToken is used for requests that carry no
// per-request credential (stdio transport).
func New(client *gocd.Client, analyzer *analyze.Analyzer, defaultToken string) *Toolset {
	return &Toolset{
		client:       client,
		analyzer:     analyzer,
		defaultToken: defaultToken,
	}
}

// Tools returns every tool definition with its handler, ready for
// registration on the MCP server.
func (t *Toolset) Tools() []server.ServerTool {
	var tools []server.ServerTool
	tools = append(tools, t.pipelineTools()...)
	tools = append(tools, t.stageTools()...)
	tools = append(tools, t.jobTools()...)
	tools = append(tools, t.analysisTools()...)
	return tools
}

// tokenContextKey carries the per-request bearer token through the MCP
// request context.
type tokenContextKey struct{}

// WithToken returns a context carrying a request-scoped bearer token
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// token resolves the bearer token for a request: the request-scoped token
// when present, the configured default otherwise. The token is threaded
// explicitly into every client call; no ambient credential state exists.
func (t *Toolset) token(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenContextKey{}).(string); ok && tok != "" {
		return tok
	}
	return t.defaultToken
}
