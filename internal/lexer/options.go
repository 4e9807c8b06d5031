package lexer

import "flint/internal/token"

// Reporter: тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер **только вызывает** его для ERRORTOKEN; фатальные ошибки возвращаются из Next.
type Reporter interface {
	Report(kind string, pos token.Pos, msg string)
}

// TabSize is the column width a tab advances indentation to a multiple of.
const TabSize = 8

type Options struct {
	Reporter Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(kind string, pos token.Pos, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, pos, msg)
	}
}
