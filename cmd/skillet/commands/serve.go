package commands

import (
	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/internal/mcpserver"
)

// serveHTTPAddr holds the --http flag value; empty means stdio.
var serveHTTPAddr string

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio (e.g. :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the skill library as an MCP server",
	Long: `Expose the skill library over the Model Context Protocol.

By default the server speaks MCP over stdio, which is what most MCP
clients expect when they spawn the process. Pass --http to serve the
streamable HTTP transport instead.

The server exposes list_skills, search_skills, and get_skill tools.

Examples:
  # Serve over stdio (for client-spawned servers)
  skillet serve

  # Serve over HTTP
  skillet serve --http :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := loggerFrom(ctx)

	lib, err := loadLibrary(ctx, logger)
	if err != nil {
		return err
	}

	mcpserver.Version = version
	if serveHTTPAddr != "" {
		return mcpserver.RunHTTP(ctx, lib, logger, serveHTTPAddr)
	}
	return mcpserver.Run(ctx, lib, logger)
}
