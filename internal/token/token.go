package token

import "fmt"

// Pos is a (row, col) position: 1-based row, 0-based byte column.
type Pos struct {
	Row int
	Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Less reports whether p comes before other.
func (p Pos) Less(other Pos) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Text  string
	Start Pos
	End   Pos
	Line  string
}

// IsOp reports whether the token is the operator text op.
func (t Token) IsOp(op string) bool {
	return t.Kind == OP && t.Text == op
}

// IsKeyword reports whether the token is a NAME spelling a hard keyword.
func (t Token) IsKeyword() bool {
	return t.Kind == NAME && IsKeyword(t.Text)
}

// IsName reports whether the token is an identifier that is not a hard keyword.
func (t Token) IsName() bool {
	return t.Kind == NAME && !IsKeyword(t.Text)
}

// IsOpenBracket reports whether the token opens a bracket pair.
func (t Token) IsOpenBracket() bool {
	return t.Kind == OP && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

// IsCloseBracket reports whether the token closes a bracket pair.
func (t Token) IsCloseBracket() bool {
	return t.Kind == OP && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s-%s", t.Kind, t.Text, t.Start, t.End)
}
