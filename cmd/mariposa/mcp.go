// ABOUTME: MCP command to start the MCP server on stdio.
// ABOUTME: Integrates mariposa with AI agents that spawn local servers.

package main

import (
	"github.com/spf13/cobra"

	"github.com/harper/mariposa/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long:  `Start the Model Context Protocol server on stdio for AI agent integration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(noteStore)
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
