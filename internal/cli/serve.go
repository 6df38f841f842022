package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/codewandler/gocd-mcp/internal/config"
	"github.com/codewandler/gocd-mcp/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run the MCP server on stdio (default) or HTTP.

On stdio the configured GOCD_API_TOKEN is used for every upstream call.
On HTTP each request's Authorization bearer token is used instead, falling
back to the configured token when the header is absent.

Examples:
  gocd-mcp serve                    # stdio transport
  gocd-mcp serve --http :8812      # streamable HTTP on port 8812`,
	Run: func(cmd *cobra.Command, args []string) {
		httpAddr, _ := cmd.Flags().GetString("http")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Require(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if httpAddr == "" {
			// stdio has no per-request credentials
			if err := cfg.RequireToken(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
		}

		// stdout belongs to the stdio transport; logs go to stderr
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(cfg.LogLevel),
		}))
		slog.SetDefault(logger)

		s := mcpserver.New(cfg, rootCmd.Version, logger)

		if httpAddr != "" {
			logger.Info("serving MCP over HTTP", "addr", httpAddr, "gocd", cfg.ServerURL)
			err = mcpserver.ServeHTTP(s, httpAddr)
		} else {
			logger.Info("serving MCP over stdio", "gocd", cfg.ServerURL)
			err = mcpserver.ServeStdio(s)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	serveCmd.Flags().String("http", "", "serve over streamable HTTP on this address instead of stdio")
}
