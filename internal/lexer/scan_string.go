package lexer

import (
	"strings"

	"flint/internal/token"
)

// stringPrefixAt сообщает длину строкового префикса (b, r, u, f, br, rb, fr, rf
// в любом регистре), если за ним сразу идёт кавычка.
func stringPrefixAt(s string) (int, bool) {
	n := 0
	for n < len(s) && n < 3 {
		if s[n] == '\'' || s[n] == '"' {
			return n, isStringPrefix(s[:n])
		}
		n++
	}
	return 0, false
}

func isStringPrefix(p string) bool {
	switch strings.ToLower(p) {
	case "", "b", "r", "u", "f", "br", "rb", "fr", "rf":
		return true
	default:
		return false
	}
}

// scanString сканирует строковый литерал с префиксом длины prefix.
// Возвращает false, если строка продолжается на следующих физических строках.
func (lx *Lexer) scanString(prefix int) bool {
	c := &lx.cursor
	line := c.Line
	start := c.Off
	quoteAt := start + prefix
	triple := strings.Repeat(line[quoteAt:quoteAt+1], 3)

	if strings.HasPrefix(line[quoteAt:], triple) {
		if end, ok := findClose(line, quoteAt+3, triple); ok {
			c.Off = end
			lx.emit(token.STRING, line[start:end], start, end)
			return true
		}
		lx.beginContString(start, triple, false)
		return false
	}

	quote := line[quoteAt]
	for i := quoteAt + 1; i < len(line); i++ {
		switch line[i] {
		case quote:
			c.Off = i + 1
			lx.emit(token.STRING, line[start:c.Off], start, c.Off)
			return true
		case '\\':
			if r := line[i+1:]; r == "\n" || r == "\r\n" {
				lx.beginContString(start, string(quote), true)
				return false
			}
			i++
		case '\n', '\r':
			i = len(line)
		}
	}

	// незакрытая однострочная строка: префикс становится именем, кавычка - ошибкой
	if prefix > 0 {
		c.Off = quoteAt
		lx.emit(token.NAME, line[start:quoteAt], start, quoteAt)
		return true
	}
	c.Off = quoteAt + 1
	lx.emit(token.ERRORTOKEN, line[quoteAt:quoteAt+1], quoteAt, quoteAt+1)
	lx.report("UnterminatedString", token.Pos{Row: lx.lnum, Col: quoteAt}, "unterminated string literal")
	return true
}

func (lx *Lexer) beginContString(start int, endQuote string, needCont bool) {
	line := lx.cursor.Line
	lx.inString = true
	lx.needCont = needCont
	lx.endQuote = endQuote
	lx.strStart = token.Pos{Row: lx.lnum, Col: start}
	lx.contStr = line[start:]
	lx.contLine = line
	lx.cursor.Off = len(line)
}

// continueString продолжает многострочную строку на очередной физической строке.
// Возвращает true, если строка закрылась и остаток строки нужно токенизировать.
func (lx *Lexer) continueString(line string) bool {
	if line == "" {
		lx.fail(lx.strStart, lx.contLine, ErrEOFInString)
		return false
	}
	if end, ok := findClose(line, 0, lx.endQuote); ok {
		lx.cursor.Off = end
		lx.pending = append(lx.pending, token.Token{
			Kind:  token.STRING,
			Text:  lx.contStr + line[:end],
			Start: lx.strStart,
			End:   token.Pos{Row: lx.lnum, Col: end},
			Line:  lx.contLine + line,
		})
		lx.resetContString()
		return true
	}
	if lx.needCont && !strings.HasSuffix(line, "\\\n") && !strings.HasSuffix(line, "\\\r\n") {
		lx.pending = append(lx.pending, token.Token{
			Kind:  token.ERRORTOKEN,
			Text:  lx.contStr + line,
			Start: lx.strStart,
			End:   token.Pos{Row: lx.lnum, Col: len(line)},
			Line:  lx.contLine,
		})
		lx.report("UnterminatedString", lx.strStart, "unterminated string literal")
		lx.resetContString()
		return false
	}
	lx.contStr += line
	lx.contLine += line
	return false
}

func (lx *Lexer) resetContString() {
	lx.inString = false
	lx.needCont = false
	lx.endQuote = ""
	lx.contStr = ""
	lx.contLine = ""
}

// findClose ищет закрывающую кавычку quote начиная с from, пропуская escape-последовательности.
func findClose(s string, from int, quote string) (int, bool) {
	for i := from; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if strings.HasPrefix(s[i:], quote) {
			return i + len(quote), true
		}
	}
	return 0, false
}
