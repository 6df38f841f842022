package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/codewandler/gocd-mcp/internal/config"
	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/codewandler/gocd-mcp/internal/output"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"pipelines"},
	Short:   "Show the pipeline dashboard",
	Long: `Fetch and display the pipelines on the configured GoCD server,
grouped by pipeline group, with lock and pause state.

Examples:
  gocd-mcp dashboard`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Require(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if err := cfg.RequireToken(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client := gocd.NewClient(cfg.ServerURL, nil)
		pipelines, err := client.ListPipelines(ctx, cfg.Token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch pipelines: %v\n", err)
			os.Exit(1)
		}

		output.PrintHeader(cfg.ServerURL)
		output.PrintPipelines(cfg.ServerURL, pipelines)
	},
}
