package lexer

import (
	"slices"
	"strings"

	"flint/internal/token"
)

// LineReader returns the next physical line including its terminator,
// or "" once input is exhausted.
type LineReader func() string

// Lexer turns physical lines into Python tokens. Lines are pulled lazily:
// a line is requested only when every token of the previous one was consumed.
type Lexer struct {
	readline LineReader
	opts     Options
	cursor   Cursor
	look     *token.Token // 1 элементный буфер для токена
	pending  []token.Token

	lnum      int
	parenlev  int
	continued bool
	indents   []int
	prevLine  string
	curLine   string

	// незакрытая многострочная строка
	inString bool
	needCont bool
	endQuote string
	contStr  string
	contLine string
	strStart token.Pos

	done bool
	err  error
}

func New(readline LineReader, opts Options) *Lexer {
	return &Lexer{
		readline: readline,
		opts:     opts,
		indents:  []int{0},
	}
}

// LinesReader adapts a slice of physical lines to a LineReader.
func LinesReader(lines []string) LineReader {
	i := 0
	return func() string {
		if i >= len(lines) {
			return ""
		}
		line := lines[i]
		i++
		return line
	}
}

// Tokenize runs the lexer over lines and returns every token up to ENDMARKER.
// On a fatal error the tokens produced so far are returned with it.
func Tokenize(lines []string, opts Options) ([]token.Token, error) {
	lx := New(LinesReader(lines), opts)
	out := make([]token.Token, 0, len(lines)*8)
	for {
		tok, err := lx.Next()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.ENDMARKER {
			return out, nil
		}
	}
}

// Next возвращает следующий токен.
// После ENDMARKER всегда возвращает ENDMARKER; после фатальной ошибки всегда её.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}
	for len(lx.pending) == 0 {
		if lx.err != nil {
			return token.Token{}, lx.err
		}
		if lx.done {
			return token.Token{Kind: token.ENDMARKER, Start: token.Pos{Row: lx.lnum}, End: token.Pos{Row: lx.lnum}}, nil
		}
		lx.step()
	}
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok, nil
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() (token.Token, error) {
	t, err := lx.Next()
	if err != nil {
		return t, err
	}
	lx.look = &t
	return t, nil
}

// step читает одну физическую строку и раскладывает её на токены.
func (lx *Lexer) step() {
	lx.prevLine = lx.curLine
	line := lx.readline()
	lx.curLine = line
	lx.lnum++
	lx.cursor = NewCursor(line)

	switch {
	case lx.inString:
		if !lx.continueString(line) {
			return
		}
	case lx.parenlev == 0 && !lx.continued:
		if line == "" {
			lx.finish()
			return
		}
		if !lx.lineStart(line) {
			return
		}
	default:
		if line == "" {
			lx.fail(token.Pos{Row: lx.lnum, Col: 0}, line, ErrEOFInStatement)
			return
		}
		lx.continued = false
	}
	lx.scanLine()
}

// lineStart обрабатывает отступ новой инструкции.
// Возвращает false, если строка целиком разобрана (пустая строка, комментарий).
func (lx *Lexer) lineStart(line string) bool {
	c := &lx.cursor
	column := 0
loop:
	for !c.EOF() {
		switch c.Peek() {
		case ' ':
			column++
		case '\t':
			column = (column/TabSize + 1) * TabSize
		case '\f':
			column = 0
		default:
			break loop
		}
		c.Bump()
	}
	if c.EOF() {
		lx.finish()
		return false
	}

	switch c.Peek() {
	case '#', '\r', '\n':
		if c.Peek() == '#' {
			start := c.Off
			text := strings.TrimRight(c.Rest(), "\r\n")
			c.Off += len(text)
			lx.emit(token.COMMENT, text, start, c.Off)
		}
		start := c.Off
		lx.emit(token.NL, c.Rest(), start, len(line))
		return false
	}

	pos := c.Off
	if column > lx.indents[len(lx.indents)-1] {
		lx.indents = append(lx.indents, column)
		lx.emit(token.INDENT, line[:pos], 0, pos)
	}
	for column < lx.indents[len(lx.indents)-1] {
		if !slices.Contains(lx.indents, column) {
			lx.fail(token.Pos{Row: lx.lnum, Col: pos}, line, ErrUnindent)
			return false
		}
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emit(token.DEDENT, "", pos, pos)
	}
	return true
}

// scanLine выдаёт токены от текущей позиции курсора до конца строки.
func (lx *Lexer) scanLine() {
	c := &lx.cursor
	for !c.EOF() {
		for b := c.Peek(); b == ' ' || b == '\t' || b == '\f'; b = c.Peek() {
			c.Bump()
		}
		if c.EOF() {
			return
		}
		start := c.Off
		ch := c.Peek()
		rest := c.Rest()

		switch {
		case ch == '\\' && (rest == "\\\n" || rest == "\\\r\n"):
			c.Off = len(c.Line)
			lx.continued = true
		case ch == '#':
			text := strings.TrimRight(rest, "\r\n")
			c.Off += len(text)
			lx.emit(token.COMMENT, text, start, c.Off)
		case ch == '\n' || ch == '\r':
			c.Off = len(c.Line)
			kind := token.NEWLINE
			if lx.parenlev > 0 {
				kind = token.NL
			}
			lx.emit(kind, rest, start, c.Off)
		case isDec(ch) || (ch == '.' && isDec(c.PeekAt(1))):
			lx.scanNumber()
		default:
			if n, ok := stringPrefixAt(rest); ok {
				if !lx.scanString(n) {
					return
				}
				continue
			}
			if r, _ := peekRune(rest); isIdentStartRune(r) {
				lx.scanName()
				continue
			}
			lx.scanOperator()
		}
	}
}

// finish выдаёт хвост потока: синтетический NEWLINE, DEDENT'ы и ENDMARKER.
func (lx *Lexer) finish() {
	last := lx.prevLine
	if last != "" && !strings.HasSuffix(last, "\n") && !strings.HasSuffix(last, "\r") &&
		!strings.HasPrefix(strings.TrimSpace(last), "#") {
		n := len(last)
		lx.pending = append(lx.pending, token.Token{
			Kind:  token.NEWLINE,
			Start: token.Pos{Row: lx.lnum - 1, Col: n},
			End:   token.Pos{Row: lx.lnum - 1, Col: n + 1},
		})
	}
	for range lx.indents[1:] {
		lx.pending = append(lx.pending, token.Token{
			Kind:  token.DEDENT,
			Start: token.Pos{Row: lx.lnum},
			End:   token.Pos{Row: lx.lnum},
		})
	}
	lx.indents = lx.indents[:1]
	lx.pending = append(lx.pending, token.Token{
		Kind:  token.ENDMARKER,
		Start: token.Pos{Row: lx.lnum},
		End:   token.Pos{Row: lx.lnum},
	})
	lx.done = true
}

func (lx *Lexer) emit(kind token.Kind, text string, start, end int) {
	lx.pending = append(lx.pending, token.Token{
		Kind:  kind,
		Text:  text,
		Start: token.Pos{Row: lx.lnum, Col: start},
		End:   token.Pos{Row: lx.lnum, Col: end},
		Line:  lx.curLine,
	})
}

func (lx *Lexer) fail(pos token.Pos, line string, err error) {
	lx.err = &Error{Pos: pos, Line: line, Err: err}
}
