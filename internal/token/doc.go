// Package token defines the Python token kinds produced by the lexer.
// Invariants:
//   - Token.Text is the exact source text of the token (empty for DEDENT,
//     ENDMARKER and the NEWLINE synthesised at end of file).
//   - Start and End are (row, col) with 1-based rows and 0-based byte columns,
//     End exclusive, exactly as Python's tokenize module reports them.
//   - Token.Line is the physical line (or lines, for multi-line tokens) the
//     token was read from, terminators included.
//   - Keywords are NAME tokens; IsKeyword classifies them.
package token
