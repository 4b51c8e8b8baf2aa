// Package format rewrites formatting commands into Pango style markup.
package format

import "github.com/starford/desknote/internal/markup"

var tags = map[string]string{
	markup.Bold:      "b",
	markup.Italic:    "i",
	markup.Underline: "u",
}

// Apply replaces /textbf{X}, /textit{X} and /underline{X} with <b>X</b>,
// <i>X</i> and <u>X</u>. Commands without an argument are left untouched.
func Apply(text string) string {
	return markup.Rewrite(text, func(tok markup.Token) (string, bool) {
		if !tok.HasArg || !tok.Exact() {
			return "", false
		}
		tag, ok := tags[tok.Command()]
		if !ok {
			return "", false
		}
		return "<" + tag + ">" + tok.Arg + "</" + tag + ">", true
	})
}
