package processor

import (
	"strings"
	"unicode/utf8"

	"flint/internal/token"
)

// ExpandIndent returns the width of the leading whitespace of line,
// with tabs advancing to the next multiple of 8.
//
//	ExpandIndent("    ")      == 4
//	ExpandIndent("\t")        == 8
//	ExpandIndent("       \t") == 8
//	ExpandIndent("        \t") == 16
func ExpandIndent(line string) int {
	if !strings.Contains(line, "\t") {
		return len(line) - len(strings.TrimLeft(line, " \t\n\r\f\v"))
	}
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\t':
			width = width/8*8 + 8
		case ' ':
			width++
		default:
			return width
		}
	}
	return width
}

// MutateString replaces the contents of a string literal with "x",
// one per character, keeping prefix and quotes.
//
//	MutateString(`"abc"`)      == `"xxx"`
//	MutateString(`r'''abc'''`) == `r'''xxx'''`
//	MutateString(`f"a{b}"`)    == `f"xxxx"`
func MutateString(text string) string {
	if text == "" {
		return text
	}
	quote := text[len(text)-1]
	start := strings.IndexByte(text, quote) + 1
	end := len(text) - 1
	if strings.HasSuffix(text, `"""`) || strings.HasSuffix(text, `'''`) {
		start += 2
		end -= 2
	}
	if start > end {
		return text
	}
	return text[:start] + strings.Repeat("x", utf8.RuneCountInString(text[start:end])) + text[end:]
}

// TokenIsNewline reports whether tok ends a line (NEWLINE or NL).
func TokenIsNewline(tok token.Token) bool {
	return tok.Kind == token.NEWLINE || tok.Kind == token.NL
}

// IsEOLToken reports whether tok is the last token of its physical line:
// a NEWLINE/NL or a token followed only by a backslash continuation.
func IsEOLToken(tok token.Token) bool {
	if TokenIsNewline(tok) {
		return true
	}
	if tok.End.Col > len(tok.Line) {
		return false
	}
	rest := strings.TrimLeft(tok.Line[tok.End.Col:], " \t\n\r\f\v")
	return rest == "\\\n" || rest == "\\\r\n"
}

// IsMultilineString reports whether tok is a string literal spanning several lines.
func IsMultilineString(tok token.Token) bool {
	return tok.Kind == token.STRING && strings.Contains(tok.Text, "\n")
}

// CountParentheses adjusts the bracket depth for an OP token text.
func CountParentheses(depth int, text string) int {
	switch text {
	case "(", "[", "{":
		return depth + 1
	case ")", "]", "}":
		return depth - 1
	}
	return depth
}
