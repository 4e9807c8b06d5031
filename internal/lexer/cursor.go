package lexer

// Cursor представляет собой позицию в текущей физической строке
type Cursor struct {
	Line string
	Off  int
}

// NewCursor creates a new cursor at the start of line.
func NewCursor(line string) Cursor {
	return Cursor{Line: line}
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Line)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Line[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Line) {
		return 0, 0, false
	}
	return c.Line[c.Off], c.Line[c.Off+1], true
}

// PeekAt читает байт со смещением n от текущей позиции или 0
func (c *Cursor) PeekAt(n int) byte {
	if c.Off+n >= len(c.Line) || c.Off+n < 0 {
		return 0
	}
	return c.Line[c.Off+n]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Line[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать текст читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// TextFrom возвращает текст от метки до текущей позиции
func (c *Cursor) TextFrom(m Mark) string {
	return c.Line[int(m):c.Off]
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Line[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatString consumes s if the rest of the line starts with it.
func (c *Cursor) EatString(s string) bool {
	if len(c.Line)-c.Off < len(s) || c.Line[c.Off:c.Off+len(s)] != s {
		return false
	}
	c.Off += len(s)
	return true
}

// Rest returns the unread part of the line.
func (c *Cursor) Rest() string {
	if c.EOF() {
		return ""
	}
	return c.Line[c.Off:]
}
