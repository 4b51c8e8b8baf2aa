// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes DeskNote tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/desknote/internal/apperr"
	"github.com/starford/desknote/internal/noteservice"
)

const commandsURI = "desknote://commands"

// Server wraps the MCP server with DeskNote tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all DeskNote tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"DeskNote",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("set_wallpaper_note",
		mcp.WithDescription("Render a note onto the desktop wallpaper and log it. "+
			"The text may contain slash commands; read the reference first via "+
			"get_command_reference or the "+commandsURI+" resource."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Note text, optionally with slash commands")),
	), s.setWallpaperNote)

	s.mcp.AddTool(mcp.NewTool("read_note_log",
		mcp.WithDescription("Read the raw note log, newest entry first."),
	), s.readNoteLog)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List logged notes, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of notes (default 20)")),
		mcp.WithNumber("offset", mcp.Description("Number of notes to skip")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through logged notes."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("get_command_reference",
		mcp.WithDescription("Returns the DeskNote slash command reference. "+
			"Call this before composing notes that use commands."),
	), s.getCommandReference)

	s.mcp.AddResource(
		mcp.NewResource(commandsURI, "Command Reference",
			mcp.WithResourceDescription("Slash commands understood in note text."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCommandsResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type noteResult struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	ImagePath      string `json:"image_path"`
	Logged         bool   `json:"logged"`
	WallpaperSet   bool   `json:"wallpaper_set"`
	WallpaperError string `json:"wallpaper_error,omitempty"`
	LogError       string `json:"log_error,omitempty"`
}

func (s *Server) setWallpaperNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.Submit(ctx, text)
	if err != nil {
		if apperr.IsUserError(err) {
			return mcp.NewToolResultError("rejected: " + err.Error()), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := noteResult{
		ID:           out.ID,
		Text:         out.Text,
		ImagePath:    out.ImagePath,
		Logged:       out.Entry != nil,
		WallpaperSet: out.WallpaperSet(),
	}
	if out.WallpaperErr != nil {
		res.WallpaperError = out.WallpaperErr.Error()
	}
	if out.LogErr != nil {
		res.LogError = out.LogErr.Error()
	}
	return jsonResult(res), nil
}

func (s *Server) readNoteLog(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.svc.ReadLog(ctx)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)
	offset := req.GetInt("offset", 0)
	entries, total, err := s.svc.ListNotes(ctx, limit, offset)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"notes": entries, "total": total}), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results), nil
}

func (s *Server) getCommandReference(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(CommandReference()), nil
}

func (s *Server) readCommandsResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      commandsURI,
			MIMEType: "text/markdown",
			Text:     CommandReference(),
		},
	}, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}
