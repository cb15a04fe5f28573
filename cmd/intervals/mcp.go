// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server so AI assistants can plan intervals.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/intervals/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and shares the configured storage
backend with the CLI.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "intervals": {
        "command": "intervals",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_interval      Append a Run or Walk interval to a date
  list_intervals    List a date's intervals in run order
  delete_interval   Delete an interval by ID or prefix
  clear_intervals   Remove every interval on a date
  list_dates        Dates that have intervals, with totals

AVAILABLE RESOURCES:

  intervals://today   Today's intervals
  intervals://all     Full export of every date`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, version)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
