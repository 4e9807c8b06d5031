package lexer

import (
	"flint/internal/token"
)

// Поддержка: 0b..., 0o..., 0x..., 123, 1_000, 1.0, .5, 1., 1e-3, 10j, 1.5J.
// Экспонента съедается, только если за ней есть цифры; "1e" это NUMBER "1" и NAME "e".
func (lx *Lexer) scanNumber() {
	c := &lx.cursor
	start := c.Mark()

	if c.Peek() == '0' {
		switch c.PeekAt(1) {
		case 'x', 'X':
			lx.scanRadix(isHex)
			goto emit
		case 'o', 'O':
			lx.scanRadix(func(b byte) bool { return b >= '0' && b <= '7' })
			goto emit
		case 'b', 'B':
			lx.scanRadix(func(b byte) bool { return b == '0' || b == '1' })
			goto emit
		}
	}

	lx.scanDigits()
	if c.Peek() == '.' {
		c.Bump()
		lx.scanDigits()
	}
	lx.scanExponent()
	if b := c.Peek(); b == 'j' || b == 'J' {
		c.Bump()
	}

emit:
	lx.emit(token.NUMBER, c.TextFrom(start), int(start), c.Off)
}

// scanRadix съедает префикс 0x/0o/0b и цифры; без цифр остаётся только "0".
func (lx *Lexer) scanRadix(digit func(byte) bool) {
	c := &lx.cursor
	m := c.Mark()
	c.Bump()
	c.Bump()
	n := 0
	for {
		b := c.Peek()
		if b == '_' && digit(c.PeekAt(1)) {
			c.Bump()
			continue
		}
		if !digit(b) {
			break
		}
		c.Bump()
		n++
	}
	if n == 0 {
		c.Reset(m)
		c.Bump() // только "0"
	}
}

func (lx *Lexer) scanDigits() {
	c := &lx.cursor
	for {
		b := c.Peek()
		if b == '_' && isDec(c.PeekAt(1)) {
			c.Bump()
			continue
		}
		if !isDec(b) {
			return
		}
		c.Bump()
	}
}

func (lx *Lexer) scanExponent() {
	c := &lx.cursor
	if b := c.Peek(); b != 'e' && b != 'E' {
		return
	}
	m := c.Mark()
	c.Bump()
	if b := c.Peek(); b == '+' || b == '-' {
		c.Bump()
	}
	if !isDec(c.Peek()) {
		c.Reset(m)
		return
	}
	lx.scanDigits()
}
