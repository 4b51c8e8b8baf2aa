package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/desknote/internal/index"
	"github.com/starford/desknote/internal/notelog"
	"github.com/starford/desknote/internal/noteservice"
	"github.com/starford/desknote/internal/testutil"
	"github.com/starford/desknote/internal/wallpaper"
)

type mcpEnv struct {
	srv      *Server
	notes    *notelog.Log
	db       *index.DB
	renderer *testutil.FakeRenderer
}

func testServer(t *testing.T) *mcpEnv {
	t.Helper()
	_, notes := testutil.TestLog(t)
	e := &mcpEnv{
		notes:    notes,
		db:       testutil.TestDB(t),
		renderer: &testutil.FakeRenderer{Path: "/tmp/wallpaper_7.jpg"},
	}
	setter := wallpaper.SetterFunc(func(context.Context, string) error { return nil })
	svc := noteservice.NewService(notes, e.renderer, setter, testutil.QuietLogger(), noteservice.WithIndex(e.db))
	e.srv = New(svc, "test")
	return e
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so handlers are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "set_wallpaper_note":
		result, err = srv.setWallpaperNote(ctx, req)
	case "read_note_log":
		result, err = srv.readNoteLog(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "get_command_reference":
		result, err = srv.getCommandReference(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSetWallpaperNoteAndReadLog(t *testing.T) {
	e := testServer(t)

	r := callTool(t, e.srv, "set_wallpaper_note", map[string]interface{}{
		"text": "deploy /textit{today}",
	})
	if r.IsError {
		t.Fatalf("set failed: %s", resultText(r))
	}
	var res noteResult
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if res.Text != "deploy <i>today</i>" || !res.Logged || !res.WallpaperSet {
		t.Errorf("result = %+v", res)
	}

	r = callTool(t, e.srv, "read_note_log", nil)
	if !strings.Contains(resultText(r), "deploy <i>today</i>") {
		t.Errorf("log = %q", resultText(r))
	}
}

func TestSetWallpaperNote_Rejected(t *testing.T) {
	e := testServer(t)

	r := callTool(t, e.srv, "set_wallpaper_note", map[string]interface{}{"text": "see /bogus"})
	if !r.IsError {
		t.Fatal("expected error for invalid command")
	}
	if !strings.Contains(resultText(r), "'/bogus'") {
		t.Errorf("error = %q", resultText(r))
	}

	r = callTool(t, e.srv, "set_wallpaper_note", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error for missing text")
	}
}

func TestSetWallpaperNote_RenderFailure(t *testing.T) {
	e := testServer(t)
	e.renderer.Err = errors.New("no magick")

	r := callTool(t, e.srv, "set_wallpaper_note", map[string]interface{}{"text": "hi"})
	if !r.IsError {
		t.Error("expected error for render failure")
	}
}

func TestReadNoteLog_Empty(t *testing.T) {
	e := testServer(t)
	r := callTool(t, e.srv, "read_note_log", nil)
	if resultText(r) != notelog.NoNotesYet {
		t.Errorf("empty log = %q", resultText(r))
	}
}

func TestListNotes(t *testing.T) {
	e := testServer(t)
	_, _ = e.notes.Append("a")
	_, _ = e.notes.Append("b")

	r := callTool(t, e.srv, "list_notes", map[string]interface{}{"limit": 1})
	var resp struct {
		Notes []struct {
			Body string `json:"body"`
		} `json:"notes"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || len(resp.Notes) != 1 || resp.Notes[0].Body != "b" {
		t.Errorf("list = %+v", resp)
	}
}

func TestSearchNotes(t *testing.T) {
	e := testServer(t)
	_, _ = e.notes.Append("renew passport")
	_, _ = e.notes.Append("book flights")
	if _, err := index.Sync(e.db, e.notes, testutil.QuietLogger()); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, e.srv, "search_notes", map[string]interface{}{"query": "passport"})
	if r.IsError {
		t.Fatalf("search failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "passport") {
		t.Errorf("search = %q", resultText(r))
	}
}

func TestCommandReference(t *testing.T) {
	e := testServer(t)
	text := resultText(callTool(t, e.srv, "get_command_reference", nil))
	for _, want := range []string{"/continue", "/strip{token}", "/textbf{text}", "/nolog"} {
		if !strings.Contains(text, want) {
			t.Errorf("reference missing %s", want)
		}
	}

	contents, err := e.srv.readCommandsResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d", len(contents))
	}
	if tc, ok := contents[0].(mcp.TextResourceContents); !ok || tc.URI != commandsURI {
		t.Errorf("resource = %+v", contents[0])
	}
}
