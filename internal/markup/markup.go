// Package markup tokenizes the inline command language used in note text.
//
// A command is a slash followed by one or more ASCII letters, optionally
// followed directly by a braced argument: /now, /strip{todo}, /textbf{Hi}.
// Arguments are non-empty and cannot contain a closing brace.
package markup

import (
	"regexp"
	"strings"
)

// Command names understood by DeskNote.
const (
	Time      = "time"
	Date      = "date"
	Now       = "now"
	NoLog     = "nolog"
	Exit      = "exit"
	Continue  = "continue"
	Strip     = "strip"
	Bold      = "textbf"
	Italic    = "textit"
	Underline = "underline"
)

var tokenRe = regexp.MustCompile(`/([A-Za-z]+)(?:\{([^}]+)\})?`)

// Reference describes one command for usage output.
type Reference struct {
	Usage       string
	Description string
}

// Commands lists every recognised command in display order.
var Commands = []Reference{
	{"/date", "insert the current date (DD/MM/YYYY)"},
	{"/time", "insert the current time (HH:MM:SS)"},
	{"/now", "insert the current date and time"},
	{"/nolog", "do not log this note"},
	{"/exit", "close after submission"},
	{"/continue", "append to the previous logged note"},
	{"/strip{token}", "with /continue, drop previous lines containing token"},
	{"/textbf{text}", "bold"},
	{"/textit{text}", "italic"},
	{"/underline{text}", "underline"},
}

var known = map[string]struct{}{
	Time: {}, Date: {}, Now: {}, NoLog: {}, Exit: {},
	Continue: {}, Strip: {}, Bold: {}, Italic: {}, Underline: {},
}

// Token is one command occurrence inside a note.
type Token struct {
	Raw    string // full matched text including slash and braces
	Name   string // name as typed
	Arg    string
	HasArg bool
	Start  int // byte offset of the slash
	End    int // byte offset just past the token
}

// Command returns the case-folded command name.
func (t Token) Command() string {
	return strings.ToLower(t.Name)
}

// Known reports whether the command name is recognised, ignoring case.
func (t Token) Known() bool {
	_, ok := known[t.Command()]
	return ok
}

// Exact reports whether the command was typed in its canonical lowercase spelling.
func (t Token) Exact() bool {
	return t.Name == t.Command()
}

// Tokenize returns every command token in text, in order of appearance.
func Tokenize(text string) []Token {
	matches := tokenRe.FindAllStringSubmatchIndex(text, -1)
	out := make([]Token, 0, len(matches))
	for _, m := range matches {
		tok := Token{
			Raw:   text[m[0]:m[1]],
			Name:  text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		}
		if m[4] >= 0 {
			tok.Arg = text[m[4]:m[5]]
			tok.HasArg = true
		}
		out = append(out, tok)
	}
	return out
}

// Rewrite rebuilds text, replacing each token for which fn returns ok with
// the returned string. Other tokens and all surrounding text are kept as is.
func Rewrite(text string, fn func(Token) (string, bool)) string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, tok := range tokens {
		b.WriteString(text[last:tok.Start])
		if repl, ok := fn(tok); ok {
			b.WriteString(repl)
		} else {
			b.WriteString(tok.Raw)
		}
		last = tok.End
	}
	b.WriteString(text[last:])
	return b.String()
}
