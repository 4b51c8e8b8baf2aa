package continuation

import (
	"testing"
	"time"

	"github.com/starford/desknote/internal/parser"
)

func logOf(bodies ...string) string {
	out := ""
	for _, b := range bodies {
		out += parser.FormatEntry(time.Now(), b)
	}
	return out
}

func TestPreviousBody(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"latest of two", logOf("hello\nworld", "older"), "hello\nworld"},
		{"trailing whitespace trimmed", logOf("text  \n\n"), "text"},
		{"sentinel", "No notes logged yet.", ""},
		{"empty", "", ""},
		{"two lines only", "\nDeskNote 2024-01-01 00:00:00:", ""},
		{"cut at first divider", logOf("above\n" + parser.Divider + "\nbelow"), "above"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PreviousBody(tc.content); got != tc.want {
				t.Errorf("PreviousBody = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMerge_NoSeparator(t *testing.T) {
	if got := Merge("hello\nworld", "!"); got != "hello\nworld!" {
		t.Errorf("Merge = %q", got)
	}
}

func TestMerge_Strip(t *testing.T) {
	prev := "keep this\nstrip this line\nkeep too"
	got := Merge(prev, "/strip{strip this}\nnew")
	if got != "keep this\nkeep too\nnew" {
		t.Errorf("Merge = %q", got)
	}
}

func TestMerge_MultipleStripsCaseSensitive(t *testing.T) {
	prev := "- [x] done\n- [ ] todo\nDONE later\nnotes"
	got := Merge(prev, "/strip{[x]}/strip{notes}!")
	if got != "- [ ] todo\nDONE later!" {
		t.Errorf("Merge = %q", got)
	}
}

func TestMerge_StripEverything(t *testing.T) {
	got := Merge("a1\na2", "/strip{a}b")
	if got != "b" {
		t.Errorf("Merge = %q", got)
	}
}

func TestMerge_EmptyPrevious(t *testing.T) {
	if got := Merge("", "/strip{x}new"); got != "new" {
		t.Errorf("Merge = %q", got)
	}
}

func TestMerge_BareStripKept(t *testing.T) {
	if got := Merge("prev", " /strip"); got != "prev /strip" {
		t.Errorf("Merge = %q", got)
	}
}

func TestMerge_UppercaseStripIgnored(t *testing.T) {
	got := Merge("keep\ndrop me", "/STRIP{drop}!")
	if got != "keep\ndrop me/STRIP{drop}!" {
		t.Errorf("Merge = %q", got)
	}
}

func TestMerge_StripInsideArgument(t *testing.T) {
	got := Merge("keep\ndrop me", "/textbf{/strip{drop}x}")
	if got != "keep/textbf{x}" {
		t.Errorf("Merge = %q", got)
	}
}
