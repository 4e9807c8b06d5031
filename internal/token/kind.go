package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// ENDMARKER marks the end of the token stream.
	ENDMARKER Kind = iota
	// NAME represents identifiers and keywords.
	NAME
	// NUMBER represents integer, float and imaginary literals.
	NUMBER
	// STRING represents a string or bytes literal including prefix and quotes.
	STRING
	// NEWLINE ends a logical line.
	NEWLINE
	// INDENT opens an indented block.
	INDENT
	// DEDENT closes an indented block.
	DEDENT
	// OP represents operators and delimiters.
	OP
	// COMMENT represents a '#' comment up to the end of the line.
	COMMENT
	// NL ends a physical line that does not end a logical line.
	NL
	// ERRORTOKEN represents a character the lexer could not classify.
	ERRORTOKEN
)

var kindNames = [...]string{
	ENDMARKER:  "ENDMARKER",
	NAME:       "NAME",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	NEWLINE:    "NEWLINE",
	INDENT:     "INDENT",
	DEDENT:     "DEDENT",
	OP:         "OP",
	COMMENT:    "COMMENT",
	NL:         "NL",
	ERRORTOKEN: "ERRORTOKEN",
}

// String returns the tokenize-compatible name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Skip reports whether the kind carries no text into a logical line.
func (k Kind) Skip() bool {
	switch k {
	case NL, NEWLINE, INDENT, DEDENT:
		return true
	default:
		return false
	}
}

// Operators lists every operator and delimiter, longest first within
// a shared prefix so a greedy scan can try them in order.
var Operators = []string{
	"**=", "//=", ">>=", "<<=", "...", "!=", "%=", "&=", "**", "*=", "+=", "-=",
	"->", "//", "/=", ":=", "<<", "<=", "==", ">=", ">>", "@=", "^=", "|=",
	"%", "&", "(", ")", "*", "+", ",", "-", ".", "/", ":", ";", "<", "=", ">",
	"@", "[", "]", "^", "{", "|", "}", "~",
}
