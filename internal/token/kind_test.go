package token_test

import (
	"testing"

	"flint/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.ENDMARKER: "ENDMARKER",
		token.NEWLINE:   "NEWLINE",
		token.NL:        "NL",
		token.OP:        "OP",
		token.Kind(200): "UNKNOWN",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestSkipKinds(t *testing.T) {
	skip := []token.Kind{token.NL, token.NEWLINE, token.INDENT, token.DEDENT}
	for _, k := range skip {
		if !k.Skip() {
			t.Fatalf("%v should be skipped in logical lines", k)
		}
	}
	keep := []token.Kind{token.NAME, token.OP, token.STRING, token.COMMENT, token.NUMBER}
	for _, k := range keep {
		if k.Skip() {
			t.Fatalf("%v must NOT be skipped", k)
		}
	}
}

func TestBracketHelpers(t *testing.T) {
	op := func(s string) token.Token { return token.Token{Kind: token.OP, Text: s} }
	for _, s := range []string{"(", "[", "{"} {
		if !op(s).IsOpenBracket() || op(s).IsCloseBracket() {
			t.Fatalf("%q should be an opening bracket", s)
		}
	}
	for _, s := range []string{")", "]", "}"} {
		if !op(s).IsCloseBracket() || op(s).IsOpenBracket() {
			t.Fatalf("%q should be a closing bracket", s)
		}
	}
	str := token.Token{Kind: token.STRING, Text: "("}
	if str.IsOpenBracket() {
		t.Fatal("string token must not count as a bracket")
	}
}

func TestPosLess(t *testing.T) {
	if !(token.Pos{Row: 1, Col: 5}).Less(token.Pos{Row: 2, Col: 0}) {
		t.Fatal("row must dominate")
	}
	if (token.Pos{Row: 2, Col: 3}).Less(token.Pos{Row: 2, Col: 3}) {
		t.Fatal("equal positions are not less")
	}
}
