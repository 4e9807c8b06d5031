package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"flint/internal/diagfmt"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	toks, err := lexer.Tokenize(source.SplitLines("x = 1\n"), lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, toks); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 token lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "1,0-1,1:") || !strings.Contains(lines[0], `NAME`) {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[4], "ENDMARKER") {
		t.Fatalf("unexpected last line %q", lines[4])
	}
}

func TestFormatTokensJSON(t *testing.T) {
	toks, err := lexer.Tokenize(source.SplitLines("pass\n"), lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []diagfmt.TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0].Kind != "NAME" || out[0].Text != "pass" {
		t.Fatalf("unexpected tokens %+v", out)
	}
}

func TestFormatASTPretty(t *testing.T) {
	tree, err := parser.ParseString("def f(a):\n    return a\n", parser.Options{Filename: "m.py"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := diagfmt.FormatASTPretty(&buf, tree); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{"m.py (Module)", `└─ FunctionDef "f" 1:0-2:12`, `Return 2:4-2:12`} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
}
