// Package continuation merges a new note onto the body of the most recent log entry.
package continuation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/starford/desknote/internal/markup"
	"github.com/starford/desknote/internal/parser"
)

// PreviousBody extracts the body of the newest entry from raw log content.
//
// The newest entry starts with a blank line and a header line; both are
// dropped and the remainder is cut at the first divider. Content with fewer
// than three lines (including the "no notes yet" sentinel) has no body.
// Cutting at the first divider differs from parser.ParseEntries, which keeps
// a divider line that appears inside a body.
func PreviousBody(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) < 3 {
		return ""
	}
	rest := strings.Join(lines[2:], "\n")
	if i := strings.Index(rest, "\n"+parser.Divider+"\n"); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimRightFunc(rest, unicode.IsSpace)
}

// stripRe matches /strip{token} in its lowercase spelling only, wherever it
// occurs, including inside another command's argument.
var stripRe = regexp.MustCompile(`/` + markup.Strip + `\{([^}]+)\}`)

// Merge applies every /strip{token} in text to previous, removes the strip
// commands from text and returns previous followed directly by text.
// Other spellings such as /STRIP{token} are left in text untouched.
func Merge(previous, text string) string {
	matches := stripRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return previous + text
	}

	lines := strings.Split(previous, "\n")
	for _, m := range matches {
		lines = dropContaining(lines, m[1])
	}
	previous = strings.Join(lines, "\n")
	return previous + stripRe.ReplaceAllString(text, "")
}

func dropContaining(lines []string, token string) []string {
	kept := lines[:0:0]
	for _, line := range lines {
		if !strings.Contains(line, token) {
			kept = append(kept, line)
		}
	}
	return kept
}
