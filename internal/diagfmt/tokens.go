package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"flint/internal/token"
)

type TokenOutput struct {
	Kind  string    `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Start token.Pos `json:"start"`
	End   token.Pos `json:"end"`
}

// FormatTokensPretty выводит токены в формате python -m tokenize
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		where := fmt.Sprintf("%d,%d-%d,%d:", tok.Start.Row, tok.Start.Col, tok.End.Row, tok.End.Col)
		if _, err := fmt.Fprintf(w, "%-20s%-15s%q\n", where, tok.Kind, tok.Text); err != nil {
			return err
		}
		if tok.Kind == token.ENDMARKER {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Start,
			End:   tok.End,
		})
		if tok.Kind == token.ENDMARKER {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
