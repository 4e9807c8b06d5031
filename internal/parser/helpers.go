package parser

import (
	"flint/internal/ast"
	"flint/internal/token"
)

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

// advance: съедает следующий токен и обновляет prevEnd.
// Служебные токены конца строки и отступов конец узла не сдвигают.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	switch tok.Kind {
	case token.ENDMARKER, token.DEDENT, token.INDENT, token.NEWLINE:
	default:
		p.prevEnd = tok.End
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOp(op string) bool { return p.peek().IsOp(op) }

func (p *Parser) atKw(kw string) bool {
	tok := p.peek()
	return tok.Kind == token.NAME && tok.Text == kw
}

func (p *Parser) eatOp(op string) bool {
	if p.atOp(op) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatKw(kw string) bool {
	if p.atKw(kw) {
		p.advance()
		return true
	}
	return false
}

// expectOp: ожидаем конкретный оператор, иначе синтаксическая ошибка.
func (p *Parser) expectOp(op string) token.Token {
	if !p.atOp(op) {
		p.failAt(p.peek(), "expected '"+op+"'")
	}
	return p.advance()
}

func (p *Parser) expectKw(kw string) token.Token {
	if !p.atKw(kw) {
		p.failAt(p.peek(), "expected '"+kw+"'")
	}
	return p.advance()
}

// expectName ожидает идентификатор, не являющийся ключевым словом.
func (p *Parser) expectName() token.Token {
	if !p.peek().IsName() {
		p.failAt(p.peek(), "invalid syntax")
	}
	return p.advance()
}

func (p *Parser) expectNewline() {
	if !p.at(token.NEWLINE) {
		p.failAt(p.peek(), "invalid syntax")
	}
	p.advance()
}

// failAt фиксирует первую ошибку и прерывает разбор.
func (p *Parser) failAt(tok token.Token, msg string) {
	switch tok.Kind {
	case token.ERRORTOKEN:
		if tok.Text == "'" || tok.Text == "\"" {
			msg = "unterminated string literal"
		} else {
			msg = "invalid character '" + tok.Text + "'"
		}
	case token.INDENT:
		msg = "unexpected indent"
	}
	p.failPos(tok.Start, tok.Line, msg)
}

func (p *Parser) failNode(id ast.NodeID, msg string) {
	n := p.get(id)
	line := ""
	for _, tok := range p.toks {
		if tok.Start.Row == n.Start.Row {
			line = tok.Line
			break
		}
	}
	p.failPos(n.Start, line, msg)
}

func (p *Parser) failPos(pos token.Pos, line, msg string) {
	if p.err == nil {
		p.err = &SyntaxError{Filename: p.opts.Filename, Pos: pos, Msg: msg, Line: line}
	}
	panic(bailout{})
}

// node создаёт узел от start до конца последнего съеденного токена.
func (p *Parser) node(kind ast.Kind, start token.Pos) ast.NodeID {
	return p.tree.New(kind, start, p.prevEnd)
}

func (p *Parser) get(id ast.NodeID) *ast.Node { return p.tree.Get(id) }

func (p *Parser) startOf(id ast.NodeID) token.Pos { return p.get(id).Start }
