package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flint/internal/token"
)

func TestExpandIndent(t *testing.T) {
	cases := map[string]int{
		"":                0,
		"    ":            4,
		"\t":              8,
		"       \t":       8,
		"        \t":      16,
		"  \t  x = 1":     10,
		"    if x:\n":     4,
		"\f    continued": 5,
	}
	for line, want := range cases {
		assert.Equal(t, want, ExpandIndent(line), "%q", line)
	}
}

func TestMutateString(t *testing.T) {
	cases := map[string]string{
		`"abc"`:       `"xxx"`,
		`''`:          `''`,
		`r'''abc'''`:  `r'''xxx'''`,
		`b"\x00"`:     `b"xxxx"`,
		`"""a"b"""`:   `"""xxx"""`,
		`f"{x}"`:      `f"xxx"`,
		`"привет"`:    `"xxxxxx"`,
		`"""\n  a"""`: `"""xxxxx"""`,
	}
	for in, want := range cases {
		assert.Equal(t, want, MutateString(in), in)
	}
}

func TestCountParentheses(t *testing.T) {
	depth := 0
	for _, op := range []string{"(", "[", "{", "+", "}", "]"} {
		depth = CountParentheses(depth, op)
	}
	assert.Equal(t, 1, depth)
	assert.Equal(t, -1, CountParentheses(0, ")"))
}

func TestIsEOLToken(t *testing.T) {
	line := "x = 1 + \\\n"
	plus := token.Token{Kind: token.OP, Text: "+", Start: token.Pos{Row: 1, Col: 6}, End: token.Pos{Row: 1, Col: 7}, Line: line}
	one := token.Token{Kind: token.NUMBER, Text: "1", Start: token.Pos{Row: 1, Col: 4}, End: token.Pos{Row: 1, Col: 5}, Line: line}
	assert.True(t, IsEOLToken(plus))
	assert.False(t, IsEOLToken(one))
	assert.True(t, IsEOLToken(token.Token{Kind: token.NL, Text: "\n"}))
	assert.True(t, IsEOLToken(token.Token{Kind: token.NEWLINE}))

	crlf := plus
	crlf.Line = "x = 1 + \\\r\n"
	assert.True(t, IsEOLToken(crlf))
}

func TestIsMultilineString(t *testing.T) {
	assert.True(t, IsMultilineString(token.Token{Kind: token.STRING, Text: "'''a\nb'''"}))
	assert.False(t, IsMultilineString(token.Token{Kind: token.STRING, Text: "'a'"}))
	assert.False(t, IsMultilineString(token.Token{Kind: token.COMMENT, Text: "# a\n"}))
}

func TestMappingFind(t *testing.T) {
	m := Mapping{
		{Logical: 0, Pos: token.Pos{Row: 1, Col: 4}},
		{Logical: 3, Pos: token.Pos{Row: 1, Col: 7}},
		{Logical: 6, Pos: token.Pos{Row: 2, Col: 2}},
	}
	pos, ok := m.Find(0)
	assert.True(t, ok)
	assert.Equal(t, token.Pos{Row: 1, Col: 4}, pos)

	pos, ok = m.Find(2)
	assert.True(t, ok)
	assert.Equal(t, token.Pos{Row: 1, Col: 6}, pos)

	pos, ok = m.Find(5)
	assert.True(t, ok)
	assert.Equal(t, token.Pos{Row: 2, Col: 1}, pos)

	_, ok = m.Find(7)
	assert.False(t, ok)
	_, ok = Mapping(nil).Find(0)
	assert.False(t, ok)
}
