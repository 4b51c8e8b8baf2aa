package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/starford/desknote/internal/index"
	"github.com/starford/desknote/internal/markup"
	"github.com/starford/desknote/internal/models"
	"github.com/starford/desknote/internal/noteservice"
	"github.com/starford/desknote/internal/parser"
)

var (
	titleColor = color.New(color.Bold, color.Underline)
	stampColor = color.New(color.FgHiYellow)
	faintColor = color.New(color.Faint)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

func printOutcome(w io.Writer, out *noteservice.Outcome) {
	_, _ = okColor.Fprintf(w, "Rendered %s\n", out.ImagePath)
	if out.WallpaperErr != nil {
		_, _ = warnColor.Fprintf(w, "Wallpaper not set: %v\n", out.WallpaperErr)
	}
	switch {
	case out.LogErr != nil:
		_, _ = warnColor.Fprintf(w, "Note not logged: %v\n", out.LogErr)
	case out.Entry != nil:
		_, _ = faintColor.Fprintf(w, "Logged at %s\n", out.Entry.Timestamp.Format(parser.TimestampLayout))
	default:
		_, _ = faintColor.Fprintln(w, "Not logged")
	}
}

func printPreview(w io.Writer, p *noteservice.Preview) {
	_, _ = titleColor.Fprintln(w, "Preview")
	_, _ = fmt.Fprintln(w, p.Text)
	_, _ = faintColor.Fprintf(w, "log=%t exit=%t continue=%t\n", p.Flags.Log, p.Flags.Exit, p.Flags.Continue)
}

// printLog highlights entry headers and dividers in raw log text.
func printLog(w io.Writer, content string) {
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, parser.Marker+" ") && strings.HasSuffix(line, ":"):
			_, _ = stampColor.Fprintln(w, line)
		case line == parser.Divider:
			_, _ = faintColor.Fprintln(w, line)
		default:
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

func printEntries(w io.Writer, entries []models.Entry, total int) {
	_, _ = titleColor.Fprint(w, "History")
	switch total {
	case 1:
		_, _ = faintColor.Fprintf(w, " - %d entry\n", total)
	default:
		_, _ = faintColor.Fprintf(w, " - %d entries\n", total)
	}
	if len(entries) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, " none")
		return
	}
	for _, e := range entries {
		_, _ = stampColor.Fprintf(w, "%s\n", e.Timestamp.Format(parser.TimestampLayout))
		_, _ = fmt.Fprintln(w, e.Body)
		_, _ = fmt.Fprintln(w)
	}
}

func printResults(w io.Writer, results []index.SearchResult) {
	if len(results) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, "no matches")
		return
	}
	for _, r := range results {
		_, _ = stampColor.Fprint(w, r.Timestamp.Format(parser.TimestampLayout))
		_, _ = faintColor.Fprintf(w, " #%d\n", r.Position)
		_, _ = fmt.Fprintln(w, r.Snippet)
	}
}

func printCommands(w io.Writer, refs []markup.Reference) {
	_, _ = titleColor.Fprintln(w, "Commands")
	width := 0
	for _, r := range refs {
		width = max(width, len(r.Usage))
	}
	for _, r := range refs {
		_, _ = fmt.Fprintf(w, "  %-*s  ", width, r.Usage)
		_, _ = faintColor.Fprintln(w, r.Description)
	}
}
