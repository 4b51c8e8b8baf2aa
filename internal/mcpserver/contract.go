package mcpserver

import (
	"fmt"
	"strings"

	"github.com/starford/desknote/internal/markup"
)

// CommandReference describes the note command language for LLM consumers.
func CommandReference() string {
	var b strings.Builder
	b.WriteString("# DeskNote Command Reference\n\n")
	b.WriteString("Notes are plain text. Commands start with a slash and may take a braced argument.\n")
	b.WriteString("Any other /word in the text is rejected as an invalid command, so avoid bare\n")
	b.WriteString("slashes followed by letters (for example URLs or paths).\n\n")
	b.WriteString("## Commands\n\n")
	for _, c := range markup.Commands {
		fmt.Fprintf(&b, "- `%s`: %s\n", c.Usage, c.Description)
	}
	b.WriteString(`
## Rules

1. Commands are matched case-insensitively, but only the exact lowercase spelling
   is removed or substituted. ` + "`/EXIT`" + ` sets the exit flag and stays in the text.
2. ` + "`/strip{token}`" + ` is only valid together with ` + "`/continue`" + `.
3. ` + "`/continue`" + ` appends the new text directly after the newest logged note.
4. Formatting commands need an argument: ` + "`/textbf{done}`" + `.

## Example

    Standup at /time
    /textbf{Ship the release}
    /continue /strip{draft}
`)
	return b.String()
}
