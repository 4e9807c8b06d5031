package lexer

import (
	"flint/internal/token"
)

// Жадность: token.Operators упорядочен так, что длинные операторы проверяются раньше.
// Скобки меняют уровень вложенности, от которого зависит NEWLINE/NL.
func (lx *Lexer) scanOperator() {
	c := &lx.cursor
	start := c.Off
	for _, op := range token.Operators {
		if !c.EatString(op) {
			continue
		}
		switch op {
		case "(", "[", "{":
			lx.parenlev++
		case ")", "]", "}":
			lx.parenlev--
		}
		lx.emit(token.OP, op, start, c.Off)
		return
	}

	// неизвестный символ
	_, sz := peekRune(c.Rest())
	if sz == 0 {
		sz = 1
	}
	c.Off += sz
	lx.emit(token.ERRORTOKEN, c.Line[start:c.Off], start, c.Off)
	lx.report("UnknownChar", token.Pos{Row: lx.lnum, Col: start}, "unknown character")
}
