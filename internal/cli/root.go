package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gocd-mcp",
	Short: "MCP server for GoCD",
	Long: `gocd-mcp - expose a GoCD server as MCP tools.

Runs an MCP (Model Context Protocol) server that lets AI assistants inspect
and operate GoCD pipelines, stages and jobs: trigger and pause pipelines,
fetch console logs and artifacts, and analyze failed job runs.`,
}

// SetVersion sets the build version shown by --version
func SetVersion(version string) {
	rootCmd.Version = version
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(dashboardCmd)
}
