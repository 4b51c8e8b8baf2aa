// Package command expands date/time commands, extracts mode flags and
// validates the commands used in a note.
package command

import (
	"strings"
	"time"

	"github.com/starford/desknote/internal/apperr"
	"github.com/starford/desknote/internal/markup"
)

// Substitution layouts.
const (
	TimeLayout = "15:04:05"
	DateLayout = "02/01/2006"
	NowLayout  = DateLayout + " " + TimeLayout
)

// Flags are the mode switches derived from a note.
type Flags struct {
	Log      bool `json:"log"`
	Exit     bool `json:"exit"`
	Continue bool `json:"continue"`
	Strip    bool `json:"strip"` // a /strip command is present
}

// DefaultFlags returns the flags of a note that uses no mode commands.
func DefaultFlags() Flags {
	return Flags{Log: true}
}

// Result is the expanded note text and its flags.
type Result struct {
	Text  string
	Flags Flags
}

// Process substitutes /time, /date and /now, extracts the mode flags and
// then validates the commands left in the text.
//
// Substitution and flag detection work on plain substrings, so /timestamp
// becomes "09:05:03stamp" and /continued sets continue and leaves "d".
// Only the lowercase spelling is substituted or removed: /NOLOG still
// disables logging but stays in the text, and /TIME is left as is.
// Formatting and /strip commands are passed through for later stages.
//
// An unrecognised command yields a *apperr.CommandError and no result.
func Process(text string, now time.Time) (Result, error) {
	text = strings.ReplaceAll(text, "/"+markup.Time, now.Format(TimeLayout))
	text = strings.ReplaceAll(text, "/"+markup.Date, now.Format(DateLayout))
	text = strings.ReplaceAll(text, "/"+markup.Now, now.Format(NowLayout))

	flags := DefaultFlags()
	if hasFlag(text, markup.NoLog) {
		flags.Log = false
		text = strings.ReplaceAll(text, "/"+markup.NoLog, "")
	}
	if hasFlag(text, markup.Exit) {
		flags.Exit = true
		text = strings.ReplaceAll(text, "/"+markup.Exit, "")
	}
	if hasFlag(text, markup.Continue) {
		flags.Continue = true
		text = strings.ReplaceAll(text, "/"+markup.Continue, "")
	}

	for _, tok := range markup.Tokenize(text) {
		if !tok.Known() {
			return Result{}, &apperr.CommandError{Command: tok.Name}
		}
	}
	// /strip is only honoured in its lowercase spelling.
	flags.Strip = strings.Contains(text, "/"+markup.Strip)
	return Result{Text: text, Flags: flags}, nil
}

func hasFlag(text, name string) bool {
	return strings.Contains(strings.ToLower(text), "/"+name)
}
