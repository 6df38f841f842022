package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/codewandler/gocd-mcp/internal/config"
	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	doctorHeader  = color.New(color.FgCyan, color.Bold)
	doctorSuccess = color.New(color.FgGreen)
	doctorError   = color.New(color.FgRed)
	doctorWarn    = color.New(color.FgYellow)
	doctorLabel   = color.New(color.FgWhite)
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check GoCD connectivity and credentials",
	Long: `Check the connection to the configured GoCD server.

Verifies the server URL is reachable and the API token is accepted.

Examples:
  gocd-mcp doctor`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			doctorError.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		doctorHeader.Println("gocd-mcp doctor")
		fmt.Println()

		doctorLabel.Print("  Config   ")
		if err := cfg.Require(); err != nil {
			doctorError.Printf("✗ %v\n", err)
			os.Exit(1)
		}
		doctorSuccess.Printf("✓ server %s\n", cfg.ServerURL)

		doctorLabel.Print("  Token    ")
		if cfg.Token == "" {
			doctorWarn.Println("⚠ no default token (only usable over HTTP with per-request auth)")
		} else {
			doctorSuccess.Println("✓ configured")
		}

		doctorLabel.Print("  Server   ")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client := gocd.NewClient(cfg.ServerURL, nil)
		v, err := client.Version(ctx, cfg.Token)
		if err != nil {
			var apiErr *gocd.APIError
			if errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403) {
				doctorError.Printf("✗ authentication failed (%d)\n", apiErr.StatusCode)
			} else {
				doctorError.Printf("✗ %v\n", err)
			}
			os.Exit(1)
		}
		doctorSuccess.Printf("✓ GoCD %s (build %s)\n", v.Version, v.BuildNumber)

		fmt.Println()
		doctorSuccess.Println("All checks passed!")
	},
}
