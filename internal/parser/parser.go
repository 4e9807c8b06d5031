package parser

import (
	"errors"
	"fmt"

	"flint/internal/ast"
	"flint/internal/lexer"
	"flint/internal/source"
	"flint/internal/token"
)

// SyntaxError describes the first error that stopped parsing.
type SyntaxError struct {
	Filename string
	Pos      token.Pos // 1-based row, 0-based col
	Msg      string
	Line     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Pos.Row, e.Pos.Col+1, e.Msg)
}

type Options struct {
	Filename string
	// Reporter получает ERRORTOKEN'ы от лексера; может быть nil.
	Reporter lexer.Reporter
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks    []token.Token
	pos     int
	tree    *ast.Tree
	opts    Options
	prevEnd token.Pos // конец последнего съеденного токена
	err     *SyntaxError
}

// bailout прерывает разбор на первой ошибке; ловится в Parse.
type bailout struct{}

// Parse разбирает физические строки модуля в дерево.
// Возвращает *SyntaxError при первой синтаксической ошибке.
func Parse(lines []string, opts Options) (*ast.Tree, error) {
	toks, lexErr := lexer.Tokenize(lines, lexer.Options{Reporter: opts.Reporter})
	if lexErr != nil {
		if se := parseBeforeLexError(toks, lexErr, opts); se != nil {
			return nil, se
		}
		return nil, fromLexError(lexErr, opts.Filename)
	}
	return parseTokens(toks, opts)
}

// parseBeforeLexError разбирает токены, выданные до ошибки лексера.
// Синтаксическая ошибка строго раньше позиции лексера важнее её:
// в "def f(:" виноват ':', а не незакрытая скобка.
func parseBeforeLexError(toks []token.Token, lexErr error, opts Options) *SyntaxError {
	var le *lexer.Error
	if !errors.As(lexErr, &le) {
		return nil
	}
	toks = append(toks, token.Token{Kind: token.ENDMARKER, Start: le.Pos, End: le.Pos, Line: le.Line})
	_, err := parseTokens(toks, opts)
	var se *SyntaxError
	if errors.As(err, &se) && se.Pos.Less(le.Pos) {
		return se
	}
	return nil
}

func parseTokens(toks []token.Token, opts Options) (tree *ast.Tree, err error) {
	p := &Parser{
		toks: significant(toks),
		tree: ast.NewTree(opts.Filename, uint(len(toks))),
		opts: opts,
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			tree, err = nil, p.err
		}
	}()
	p.tree.Root = p.parseModule()
	return p.tree, nil
}

// ParseString is Parse over text split into physical lines.
func ParseString(text string, opts Options) (*ast.Tree, error) {
	return Parse(source.SplitLines(text), opts)
}

// significant отбрасывает комментарии и NL: грамматике они не нужны.
func significant(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == token.COMMENT || tok.Kind == token.NL {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func fromLexError(err error, filename string) *SyntaxError {
	se := &SyntaxError{Filename: filename, Msg: err.Error()}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		se.Pos = lexErr.Pos
		se.Line = lexErr.Line
		switch {
		case errors.Is(err, lexer.ErrEOFInString):
			se.Msg = "unterminated triple-quoted string literal"
		case errors.Is(err, lexer.ErrEOFInStatement):
			se.Msg = "unexpected EOF while parsing"
		default:
			se.Msg = lexErr.Err.Error()
		}
	}
	return se
}

func (p *Parser) parseModule() ast.NodeID {
	start := token.Pos{Row: 1, Col: 0}
	var body []ast.NodeID
	for !p.at(token.ENDMARKER) {
		if p.at(token.NEWLINE) {
			p.advance()
			continue
		}
		body = append(body, p.parseStatement()...)
	}
	id := p.node(ast.Module, start)
	p.get(id).Body = body
	return id
}
