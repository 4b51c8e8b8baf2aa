// Package parser encodes and decodes the blocks of the note history log.
//
// Each block looks like:
//
//	\nDeskNote 2024-05-01 09:30:00:\n<body>\n=====================\n
//
// Blocks are stored newest-first with nothing between them.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/starford/desknote/internal/models"
)

const (
	Marker          = "DeskNote"
	Divider         = "====================="
	TimestampLayout = "2006-01-02 15:04:05"
)

var headerRe = regexp.MustCompile(`(?m)^` + Marker + ` (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}):$`)

// FormatEntry renders a single log block.
func FormatEntry(ts time.Time, body string) string {
	return "\n" + Marker + " " + ts.Format(TimestampLayout) + ":\n" + body + "\n" + Divider + "\n"
}

// ParseEntries splits raw log content into entries, newest first.
// Text before the first header is ignored. A block missing its divider
// runs to the next header or the end of the content.
//
// Headers are not escaped when written, so a body line shaped like a header
// ("DeskNote 2024-01-01 00:00:00:") starts a new entry here.
func ParseEntries(data []byte) []models.Entry {
	content := string(data)
	headers := headerRe.FindAllStringSubmatchIndex(content, -1)
	out := make([]models.Entry, 0, len(headers))
	for i, h := range headers {
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		bodyStart := h[1] + 1
		if bodyStart > end {
			bodyStart = end
		}
		ts, err := time.ParseInLocation(TimestampLayout, content[h[2]:h[3]], time.Local)
		if err != nil {
			continue
		}
		out = append(out, models.Entry{
			Position:  len(out),
			Timestamp: ts,
			Body:      blockBody(content[bodyStart:end]),
		})
	}
	return out
}

// blockBody cuts a block segment at its last divider line, so a body that
// contains a divider line keeps it. continuation.PreviousBody cuts at the
// first divider instead, matching what /continue has always merged.
func blockBody(segment string) string {
	if strings.HasPrefix(segment, Divider+"\n") {
		return ""
	}
	if i := strings.LastIndex(segment, "\n"+Divider+"\n"); i >= 0 {
		return segment[:i]
	}
	return strings.TrimSuffix(segment, "\n")
}
