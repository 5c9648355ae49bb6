package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yclin/tubebrief/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run minimal MCP server for tubebrief",
	Long: `Run a Model Context Protocol (MCP) server that exposes tubebrief
functionality as tools.

The MCP server provides three tools:
- list_videos: discover watched channels' uploads for a date
- get_transcript: fetch a video's caption transcript
- daily_digest: run the full discovery/transcript/summary pipeline

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport
  tubebrief mcp

  # Run MCP server with HTTP transport on port 8080
  tubebrief mcp --transport=http --port=8080`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP uses stdio protocol, so disable verbose logging
		config.Verbose = false
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		internal.InitMCPLogging(config)

		app, err := internal.NewApp(cmd.Context(), config)
		if err != nil {
			return err
		}

		mcpServer := internal.NewMCPServer(app)

		internal.MCPLogInfo("starting MCP server transport=%s port=%d", transport, port)
		if transport == "http" {
			fmt.Printf("Starting tubebrief MCP server on HTTP port %d...\n", port)
		}

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	rootCmd.AddCommand(mcpCmd)
}
