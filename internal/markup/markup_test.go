package markup

import "testing"

func TestTokenize(t *testing.T) {
	tokens := Tokenize("a /now b /STRIP{x y} /textbf{} /foo{bar}")
	if len(tokens) != 4 {
		t.Fatalf("len = %d, want 4: %+v", len(tokens), tokens)
	}

	if tokens[0].Name != "now" || tokens[0].HasArg || !tokens[0].Known() || !tokens[0].Exact() {
		t.Errorf("tokens[0] = %+v", tokens[0])
	}
	if tokens[1].Command() != Strip || tokens[1].Arg != "x y" || tokens[1].Exact() || !tokens[1].Known() {
		t.Errorf("tokens[1] = %+v", tokens[1])
	}
	// Empty braces are not an argument.
	if tokens[2].Raw != "/textbf" || tokens[2].HasArg {
		t.Errorf("tokens[2] = %+v", tokens[2])
	}
	if tokens[3].Known() || tokens[3].Arg != "bar" {
		t.Errorf("tokens[3] = %+v", tokens[3])
	}
}

func TestTokenize_Offsets(t *testing.T) {
	text := "x/date{1}y"
	tok := Tokenize(text)[0]
	if text[tok.Start:tok.End] != tok.Raw || tok.Raw != "/date{1}" {
		t.Errorf("token = %+v", tok)
	}
}

func TestTokenize_IgnoresNonLetters(t *testing.T) {
	if tokens := Tokenize("12/10/2024 and a / b and /_x"); len(tokens) != 0 {
		t.Errorf("tokens = %+v", tokens)
	}
}

func TestRewrite(t *testing.T) {
	got := Rewrite("keep /a drop /b{1} end", func(tok Token) (string, bool) {
		if tok.Name == "b" {
			return "[" + tok.Arg + "]", true
		}
		return "", false
	})
	if got != "keep /a drop [1] end" {
		t.Errorf("Rewrite = %q", got)
	}
}

func TestCommandsReferenceAreKnown(t *testing.T) {
	for _, ref := range Commands {
		tok := Tokenize(ref.Usage)
		if len(tok) != 1 || !tok[0].Known() {
			t.Errorf("reference %q is not a known command", ref.Usage)
		}
	}
}
