package internal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"tubebrief-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	// list_videos tool
	s.mcpServer.AddTool(mcp.NewTool("list_videos",
		mcp.WithDescription("List videos published by the watched channels on a given date (UTC). Returns JSON records without transcripts. Uses the configured watch-list and the channel cache."),
		mcp.WithString("date",
			mcp.Description("Target publish date, YYYY-MM-DD. Defaults to yesterday (UTC)."),
		),
	), s.handleListVideos)

	// get_transcript tool (free - existing captions only)
	s.mcpServer.AddTool(mcp.NewTool("get_transcript",
		mcp.WithDescription("Get a video's transcript from YouTube caption tracks (FREE). Fails when the video has no captions in a preferred language; use daily_digest or the CLI's whisper fallback for those."),
		mcp.WithString("video_id",
			mcp.Description("YouTube video ID"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	// daily_digest tool (may be paid - whisper fallback for captionless videos)
	s.mcpServer.AddTool(mcp.NewTool("daily_digest",
		mcp.WithDescription("Run the full digest pipeline for a date: discover watched channels' uploads, resolve transcripts (captions first, Whisper fallback - PAID for captionless videos), and summarize. Requires YOUTUBE_API_KEY and OPENAI_API_KEY."),
		mcp.WithString("date",
			mcp.Description("Target publish date, YYYY-MM-DD. Defaults to yesterday (UTC)."),
		),
	), s.handleDailyDigest)
}

// targetDate resolves an optional date argument, defaulting to yesterday.
func targetDate(request mcp.CallToolRequest) (string, error) {
	date := request.GetString("date", "")
	if date == "" {
		return Yesterday(), nil
	}
	if err := ValidateDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// handleListVideos implements the list_videos tool
func (s *MCPServer) handleListVideos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := targetDate(request)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid date", err), nil
	}
	MCPLogInfo("list_videos date=%s", date)

	videos, err := s.app.DiscoverVideos(ctx, date)
	if err != nil {
		MCPLogError("list_videos: %v", err)
		return mcp.NewToolResultErrorFromErr("discovery failed", err), nil
	}

	data, err := json.MarshalIndent(videos, "", "  ")
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encoding videos", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
	}, nil
}

// handleGetTranscript implements the get_transcript tool (free captions only)
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoID, err := request.RequireString("video_id")
	if err != nil {
		return mcp.NewToolResultError("video_id parameter is required and must be a string"), nil
	}
	if !IsValidYouTubeID(videoID) {
		return mcp.NewToolResultError(fmt.Sprintf("%q does not look like a YouTube video ID", videoID)), nil
	}
	MCPLogInfo("get_transcript video=%s", videoID)

	result := s.app.ResolveCaptions(ctx, videoID)
	if !result.Available() {
		MCPLogError("get_transcript video=%s unavailable: %s", videoID, result.Status)
		return mcp.NewToolResultError(fmt.Sprintf("no captions available for %s (%s)", videoID, result.Status)), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(result.Text)},
	}, nil
}

// handleDailyDigest implements the daily_digest tool
func (s *MCPServer) handleDailyDigest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := targetDate(request)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid date", err), nil
	}
	MCPLogInfo("daily_digest date=%s", date)

	digest, err := s.app.Digest(ctx, date)
	if err != nil {
		MCPLogError("daily_digest: %v", err)
		return mcp.NewToolResultErrorFromErr("digest failed", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(digest)},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}
