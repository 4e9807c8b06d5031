package lexer

import (
	"flint/internal/token"
)

// scanName сканирует идентификатор; ключевые слова тоже NAME, как в tokenize.
func (lx *Lexer) scanName() {
	c := &lx.cursor
	start := c.Mark()
	for !c.EOF() {
		r, sz := peekRune(c.Rest())
		if !isIdentContinueRune(r) {
			break
		}
		c.Off += sz
	}
	lx.emit(token.NAME, c.TextFrom(start), int(start), c.Off)
}
