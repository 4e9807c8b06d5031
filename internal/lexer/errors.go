package lexer

import (
	"errors"
	"fmt"

	"flint/internal/token"
)

var (
	// ErrEOFInString is wrapped when input ends inside a multi-line string.
	ErrEOFInString = errors.New("EOF in multi-line string")
	// ErrEOFInStatement is wrapped when input ends inside brackets or after a continuation.
	ErrEOFInStatement = errors.New("EOF in multi-line statement")
	// ErrUnindent is wrapped when a dedent matches no enclosing indentation level.
	ErrUnindent = errors.New("unindent does not match any outer indentation level")
)

// Error is a fatal tokenizer error with the position it was detected at.
type Error struct {
	Pos  token.Pos
	Line string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.Pos.Row, e.Pos.Col, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
