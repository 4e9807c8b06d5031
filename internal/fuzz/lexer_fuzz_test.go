package fuzztests

import (
	"testing"

	"flint/internal/lexer"
	"flint/internal/source"
	"flint/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file := source.FromBytes("fuzz.py", clampInput(input), 0)
		toks, err := lexer.Tokenize(file.Lines, lexer.Options{})
		if err != nil {
			return
		}
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.ENDMARKER {
			t.Fatalf("token stream does not end with ENDMARKER: %v", toks)
		}
		for i := 1; i < len(toks); i++ {
			if toks[i].Start.Less(toks[i-1].Start) {
				t.Fatalf("token %d (%s) starts before token %d (%s)", i, toks[i], i-1, toks[i-1])
			}
		}
	})
}
