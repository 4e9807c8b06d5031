package lexer_test

import (
	"errors"
	"reflect"
	"testing"

	"flint/internal/lexer"
	"flint/internal/source"
	"flint/internal/token"
)

// testReporter собирает все сообщения, полученные от лексера
type testReporter struct {
	kinds []string
}

func (r *testReporter) Report(kind string, pos token.Pos, msg string) {
	r.kinds = append(r.kinds, kind)
}

// tokenize разбивает исходник на строки и прогоняет лексер до ENDMARKER
func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(source.SplitLines(src), lexer.Options{})
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func textsOf(toks []token.Token, kind token.Kind) []string {
	var out []string
	for _, tok := range toks {
		if tok.Kind == kind {
			out = append(out, tok.Text)
		}
	}
	return out
}

func pos(row, col int) token.Pos { return token.Pos{Row: row, Col: col} }

func TestLexer_SimpleAssignment(t *testing.T) {
	toks := tokenize(t, "a = 1\n")
	want := []token.Token{
		{Kind: token.NAME, Text: "a", Start: pos(1, 0), End: pos(1, 1), Line: "a = 1\n"},
		{Kind: token.OP, Text: "=", Start: pos(1, 2), End: pos(1, 3), Line: "a = 1\n"},
		{Kind: token.NUMBER, Text: "1", Start: pos(1, 4), End: pos(1, 5), Line: "a = 1\n"},
		{Kind: token.NEWLINE, Text: "\n", Start: pos(1, 5), End: pos(1, 6), Line: "a = 1\n"},
		{Kind: token.ENDMARKER, Start: pos(2, 0), End: pos(2, 0)},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Fatalf("tokens mismatch:\n got %v\nwant %v", toks, want)
	}
}

func TestLexer_IndentDedent(t *testing.T) {
	toks := tokenize(t, "if x:\n    y = 1\nz = 2\n")
	want := []token.Kind{
		token.NAME, token.NAME, token.OP, token.NEWLINE,
		token.INDENT, token.NAME, token.OP, token.NUMBER, token.NEWLINE,
		token.DEDENT, token.NAME, token.OP, token.NUMBER, token.NEWLINE,
		token.ENDMARKER,
	}
	if got := kindsOf(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	indent := toks[4]
	if indent.Text != "    " || indent.Start != pos(2, 0) || indent.End != pos(2, 4) {
		t.Errorf("INDENT = %v", indent)
	}
	dedent := toks[9]
	if dedent.Text != "" || dedent.Start != pos(3, 0) {
		t.Errorf("DEDENT = %v", dedent)
	}
}

func TestLexer_DedentAtEOF(t *testing.T) {
	toks := tokenize(t, "def f():\n    return 1\n")
	n := len(toks)
	if toks[n-2].Kind != token.DEDENT || toks[n-1].Kind != token.ENDMARKER {
		t.Fatalf("tail = %v", toks[n-2:])
	}
	if toks[n-2].Start != pos(3, 0) {
		t.Errorf("DEDENT at %v, want 3:0", toks[n-2].Start)
	}
}

func TestLexer_NLInsideBrackets(t *testing.T) {
	toks := tokenize(t, "x = (1,\n     2)\n")
	want := []token.Kind{
		token.NAME, token.OP, token.OP, token.NUMBER, token.OP, token.NL,
		token.NUMBER, token.OP, token.NEWLINE, token.ENDMARKER,
	}
	if got := kindsOf(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestLexer_CommentsAndBlankLines(t *testing.T) {
	toks := tokenize(t, "# c\n\nx = 1")
	want := []token.Kind{
		token.COMMENT, token.NL, token.NL,
		token.NAME, token.OP, token.NUMBER, token.NEWLINE, token.ENDMARKER,
	}
	if got := kindsOf(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks[0].Text != "# c" || toks[0].End != pos(1, 3) {
		t.Errorf("COMMENT = %v", toks[0])
	}
	// синтетический NEWLINE для последней строки без перевода строки
	nl := toks[6]
	if nl.Text != "" || nl.Start != pos(3, 5) || nl.End != pos(3, 6) {
		t.Errorf("NEWLINE = %v", nl)
	}
	if toks[7].Start != pos(4, 0) {
		t.Errorf("ENDMARKER at %v, want 4:0", toks[7].Start)
	}
}

func TestLexer_TrailingComment(t *testing.T) {
	toks := tokenize(t, "x = 1  # note\n")
	want := []token.Kind{token.NAME, token.OP, token.NUMBER, token.COMMENT, token.NEWLINE, token.ENDMARKER}
	if got := kindsOf(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks[3].Text != "# note" || toks[3].Start != pos(1, 7) {
		t.Errorf("COMMENT = %v", toks[3])
	}
}

func TestLexer_MultilineString(t *testing.T) {
	src := "s = \"\"\"a\nb\"\"\"\n"
	toks := tokenize(t, src)
	str := toks[2]
	if str.Kind != token.STRING {
		t.Fatalf("expected STRING, got %v", str)
	}
	if str.Text != "\"\"\"a\nb\"\"\"" {
		t.Errorf("text = %q", str.Text)
	}
	if str.Start != pos(1, 4) || str.End != pos(2, 4) {
		t.Errorf("span = %v-%v", str.Start, str.End)
	}
	if str.Line != src {
		t.Errorf("line = %q, want both physical lines", str.Line)
	}
	if toks[3].Kind != token.NEWLINE || toks[3].Start != pos(2, 4) {
		t.Errorf("NEWLINE = %v", toks[3])
	}
}

func TestLexer_BackslashContinuation(t *testing.T) {
	toks := tokenize(t, "x = 1 + \\\n    2\n")
	want := []token.Kind{token.NAME, token.OP, token.NUMBER, token.OP, token.NUMBER, token.NEWLINE, token.ENDMARKER}
	if got := kindsOf(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks[4].Start != pos(2, 4) {
		t.Errorf("second operand at %v", toks[4].Start)
	}
}

func TestLexer_ContinuedSingleQuotedString(t *testing.T) {
	toks := tokenize(t, "s = 'a\\\nb'\n")
	if toks[2].Kind != token.STRING || toks[2].Text != "'a\\\nb'" {
		t.Fatalf("STRING = %v", toks[2])
	}
}

func TestLexer_StringPrefixes(t *testing.T) {
	toks := tokenize(t, "a = rb'x' + f\"y\" + u'z' + Br\"\"\"w\"\"\"\n")
	got := textsOf(toks, token.STRING)
	want := []string{"rb'x'", "f\"y\"", "u'z'", "Br\"\"\"w\"\"\""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("strings = %q, want %q", got, want)
	}
}

func TestLexer_Numbers(t *testing.T) {
	toks := tokenize(t, "0x1f 1_000 1.5e-3 10j .5 0o17 0b101 1. 1e\n")
	got := textsOf(toks, token.NUMBER)
	want := []string{"0x1f", "1_000", "1.5e-3", "10j", ".5", "0o17", "0b101", "1.", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("numbers = %q, want %q", got, want)
	}
	if names := textsOf(toks, token.NAME); !reflect.DeepEqual(names, []string{"e"}) {
		t.Fatalf("names = %q", names)
	}
}

func TestOperators_Greedy(t *testing.T) {
	toks := tokenize(t, "a **= b // c -> d ... e := f != g\n")
	got := textsOf(toks, token.OP)
	want := []string{"**=", "//", "->", "...", ":=", "!="}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %q, want %q", got, want)
	}
}

func TestIdentifiers_Unicode(t *testing.T) {
	toks := tokenize(t, "переменная = π\n")
	names := textsOf(toks, token.NAME)
	if !reflect.DeepEqual(names, []string{"переменная", "π"}) {
		t.Fatalf("names = %q", names)
	}
	// колонки в байтах
	if toks[1].Start != pos(1, len("переменная")+1) {
		t.Errorf("'=' at %v", toks[1].Start)
	}
}

func TestLexer_ErrorToken(t *testing.T) {
	rep := &testReporter{}
	toks, err := lexer.Tokenize([]string{"a = $\n"}, lexer.Options{Reporter: rep})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := textsOf(toks, token.ERRORTOKEN); !reflect.DeepEqual(got, []string{"$"}) {
		t.Fatalf("error tokens = %q", got)
	}
	if len(rep.kinds) != 1 || rep.kinds[0] != "UnknownChar" {
		t.Fatalf("reported = %v", rep.kinds)
	}
}

func TestLexer_FatalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"eof in triple string", "x = \"\"\"abc\n", lexer.ErrEOFInString},
		{"eof in brackets", "foo(1,\n", lexer.ErrEOFInStatement},
		{"bad dedent", "if x:\n        a\n    b\n", lexer.ErrUnindent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lexer.Tokenize(source.SplitLines(tc.src), lexer.Options{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *lexer.Error, got %T", err)
			}
		})
	}
}

func TestLexer_ReadsLinesLazily(t *testing.T) {
	lines := []string{"a = 1\n", "b = 2\n"}
	calls := 0
	read := lexer.LinesReader(lines)
	lx := lexer.New(func() string {
		calls++
		return read()
	}, lexer.Options{})

	if _, err := lx.Next(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("readline called %d times after first token, want 1", calls)
	}
	// добираем первую строку: NAME уже взят, остались OP NUMBER NEWLINE
	for range 3 {
		if _, err := lx.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Fatalf("second line requested too early (%d calls)", calls)
	}
	tok, _ := lx.Next()
	if calls != 2 || tok.Text != "b" {
		t.Fatalf("after next token: calls=%d tok=%v", calls, tok)
	}
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx := lexer.New(lexer.LinesReader([]string{"x\n"}), lexer.Options{})
	p, _ := lx.Peek()
	n, _ := lx.Next()
	if p != n {
		t.Fatalf("Peek %v != Next %v", p, n)
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	toks := tokenize(t, "")
	if len(toks) != 1 || toks[0].Kind != token.ENDMARKER || toks[0].Start != pos(1, 0) {
		t.Fatalf("tokens = %v", toks)
	}
}
