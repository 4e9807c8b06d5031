package parser

import (
	"flint/internal/ast"
	"flint/internal/token"
)

// parseCallArgs разбирает аргументы вызова до закрывающей скобки (её не ест).
func (p *Parser) parseCallArgs() []ast.NodeID {
	var args []ast.NodeID
	seenKeyword := false
	for !p.atOp(")") {
		tok := p.peek()
		switch {
		case tok.IsOp("*"):
			args = append(args, p.parseStarExpression())
		case tok.IsOp("**"):
			p.advance()
			value := p.parseExpression()
			id := p.node(ast.Keyword, tok.Start)
			p.get(id).Kids = []ast.NodeID{value}
			args = append(args, id)
			seenKeyword = true
		case tok.IsName() && p.peekAt(1).IsOp("="):
			p.advance()
			p.advance()
			value := p.parseExpression()
			id := p.node(ast.Keyword, tok.Start)
			n := p.get(id)
			n.Value = normalizeName(tok.Text)
			n.Kids = []ast.NodeID{value}
			args = append(args, id)
			seenKeyword = true
		default:
			arg := p.parseNamedExpression()
			if p.atOp("=") {
				p.failNode(arg, "expression cannot contain assignment, perhaps you meant \"==\"?")
			}
			if p.atComprehension() {
				gens := p.parseComprehensions()
				gen := p.node(ast.GeneratorExp, p.startOf(arg))
				p.get(gen).Kids = append([]ast.NodeID{arg}, gens...)
				if len(args) > 0 || !p.atOp(")") {
					p.failNode(gen, "Generator expression must be parenthesized")
				}
				arg = gen
			}
			if seenKeyword {
				p.failNode(arg, "positional argument follows keyword argument")
			}
			args = append(args, arg)
		}
		if !p.eatOp(",") {
			break
		}
	}
	return args
}

// parseParameters разбирает список параметров def (annotated=true) или lambda до close.
// Arg.Value хранит имя; '*name' и '**name' помечают varargs, голые '*' и '/' - маркеры.
func (p *Parser) parseParameters(close string, annotated bool) ast.NodeID {
	start := p.peek().Start
	var params []ast.NodeID
	seenDefault, seenStar, seenSlash, seenKwargs := false, false, false, false
	for !p.atOp(close) {
		tok := p.peek()
		if seenKwargs {
			p.failAt(tok, "arguments cannot follow var-keyword argument")
		}
		switch {
		case tok.IsOp("/"):
			if seenSlash || seenStar || len(params) == 0 {
				p.failAt(tok, "invalid syntax")
			}
			p.advance()
			params = append(params, p.marker("/", tok))
			seenSlash = true
		case tok.IsOp("*"):
			if seenStar {
				p.failAt(tok, "* argument may appear only once")
			}
			p.advance()
			seenStar = true
			if p.atOp(",") || p.atOp(close) {
				if p.atOp(close) {
					p.failAt(tok, "named arguments must follow bare *")
				}
				params = append(params, p.marker("*", tok))
				break
			}
			params = append(params, p.parseParam(tok.Start, "*", annotated, false))
		case tok.IsOp("**"):
			p.advance()
			params = append(params, p.parseParam(tok.Start, "**", annotated, false))
			seenKwargs = true
		default:
			param := p.parseParam(tok.Start, "", annotated, true)
			hasDefault := p.get(param).Kids[1].IsValid()
			switch {
			case hasDefault:
				seenDefault = true
			case seenDefault && !seenStar:
				p.failNode(param, "non-default argument follows default argument")
			}
			params = append(params, param)
		}
		if !p.eatOp(",") {
			break
		}
	}
	id := p.tree.New(ast.Arguments, start, p.prevEnd)
	p.get(id).Kids = params
	return id
}

func (p *Parser) marker(text string, tok token.Token) ast.NodeID {
	id := p.node(ast.Arg, tok.Start)
	p.get(id).Value = text
	return id
}

// parseParam: NAME [':' expression] ['=' expression]; Kids=[annotation, default].
func (p *Parser) parseParam(start token.Pos, prefix string, annotated, withDefault bool) ast.NodeID {
	name := p.expectName()
	annotation, def := ast.NoNodeID, ast.NoNodeID
	if annotated && p.eatOp(":") {
		if prefix == "*" && p.atOp("*") {
			annotation = p.parseStarExpression()
		} else {
			annotation = p.parseExpression()
		}
	}
	if p.atOp("=") {
		if !withDefault {
			p.failAt(p.peek(), "var-positional argument cannot have default value")
		}
		p.advance()
		def = p.parseExpression()
	}
	id := p.node(ast.Arg, start)
	n := p.get(id)
	n.Value = prefix + normalizeName(name.Text)
	n.Kids = []ast.NodeID{annotation, def}
	return id
}
