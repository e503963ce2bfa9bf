package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vynal-docs/vynal/internal/adapters/driving/mcp"
	"github.com/vynal-docs/vynal/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

When templates.watch is enabled, template directories are re-imported as
their files change while the server runs.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  vynal mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  vynal mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "vynal": {
        "command": "/path/to/vynal",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Generation: generationService,
		Template:   templateService,
		Document:   documentService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, dir := range watchedTemplateDirs() {
		g.Go(func() error {
			logger.Info("watching templates in %s", dir)
			if err := templateService.Watch(ctx, dir); err != nil {
				logger.Warn("template watch on %s stopped: %v", dir, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		// Watchers stop with the server.
		defer cancel()
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}
		return server.Run(ctx)
	})

	return g.Wait()
}

// watchedTemplateDirs returns the template directories to watch, if watching is enabled.
func watchedTemplateDirs() []string {
	if settingsService == nil || templateService == nil {
		return nil
	}
	settings, err := settingsService.Get()
	if err != nil || !settings.Templates.Watch {
		return nil
	}
	return settings.Templates.Directories
}
