package parser

import (
	"flint/internal/ast"
	"flint/internal/token"
)

// parseBlock: ':' затем либо NEWLINE INDENT stmts DEDENT, либо простые инструкции в той же строке.
func (p *Parser) parseBlock() []ast.NodeID {
	p.expectOp(":")
	if !p.at(token.NEWLINE) {
		return p.parseSimpleStmts()
	}
	p.advance()
	if !p.at(token.INDENT) {
		p.failPos(p.peek().Start, p.peek().Line, "expected an indented block")
	}
	p.advance()
	var body []ast.NodeID
	for !p.at(token.DEDENT) && !p.at(token.ENDMARKER) {
		body = append(body, p.parseStatement()...)
	}
	p.advance()
	return body
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.advance().Start
	test := p.parseNamedExpression()
	body := p.parseBlock()
	id := p.tree.New(ast.If, start, p.prevEnd)
	var orelse []ast.NodeID
	switch {
	case p.atKw("elif"):
		orelse = []ast.NodeID{p.parseIf()}
	case p.atKw("else"):
		p.advance()
		orelse = p.parseBlock()
	}
	n := p.get(id)
	n.Kids = []ast.NodeID{test}
	n.Body = body
	n.Else = orelse
	n.End = p.prevEnd
	return id
}

// parseElse: необязательная ветка else у циклов и try
func (p *Parser) parseElse() []ast.NodeID {
	if p.eatKw("else") {
		return p.parseBlock()
	}
	return nil
}

func (p *Parser) parseWhile() ast.NodeID {
	start := p.advance().Start
	test := p.parseNamedExpression()
	body := p.parseBlock()
	orelse := p.parseElse()
	id := p.node(ast.While, start)
	n := p.get(id)
	n.Kids = []ast.NodeID{test}
	n.Body = body
	n.Else = orelse
	return id
}

func (p *Parser) parseFor(start token.Pos, async bool) ast.NodeID {
	p.expectKw("for")
	target := p.parseTargetList()
	p.expectKw("in")
	iter := p.parseStarExpressions()
	body := p.parseBlock()
	orelse := p.parseElse()
	kind := ast.For
	if async {
		kind = ast.AsyncFor
	}
	id := p.node(kind, start)
	n := p.get(id)
	n.Kids = []ast.NodeID{target, iter}
	n.Body = body
	n.Else = orelse
	return id
}

// parseTargetList: star_targets до 'in' (for и comprehension).
func (p *Parser) parseTargetList() ast.NodeID {
	start := p.peek().Start
	first := p.parseStarTarget()
	if !p.atOp(",") {
		p.checkTarget(first, "assign to")
		return first
	}
	elts := []ast.NodeID{first}
	for p.eatOp(",") {
		if p.atKw("in") || p.atOp("=") {
			break
		}
		elts = append(elts, p.parseStarTarget())
	}
	id := p.node(ast.Tuple, start)
	p.get(id).Kids = elts
	p.checkTarget(id, "assign to")
	return id
}

func (p *Parser) parseStarTarget() ast.NodeID {
	if p.atOp("*") {
		start := p.advance().Start
		inner := p.parseBitwiseOr()
		id := p.node(ast.Starred, start)
		p.get(id).Kids = []ast.NodeID{inner}
		return id
	}
	return p.parseBitwiseOr()
}

func (p *Parser) parseTry() ast.NodeID {
	start := p.advance().Start
	body := p.parseBlock()
	var handlers []ast.NodeID
	star := false
	for p.atKw("except") {
		h, isStar := p.parseExceptHandler()
		if len(handlers) > 0 && isStar != star {
			p.failNode(h, "cannot have both 'except' and 'except*' on the same 'try'")
		}
		star = isStar
		handlers = append(handlers, h)
	}
	var orelse, final []ast.NodeID
	if len(handlers) > 0 {
		orelse = p.parseElse()
	}
	if p.eatKw("finally") {
		final = p.parseBlock()
	}
	if len(handlers) == 0 && final == nil {
		p.failAt(p.peek(), "expected 'except' or 'finally' block")
	}
	id := p.node(ast.Try, start)
	n := p.get(id)
	n.Body = body
	n.Kids = handlers
	n.Else = orelse
	n.Final = final
	if star {
		n.Value = "*"
	}
	return id
}

// parseExceptHandler: 'except' ['*'] [expression ['as' NAME]] block
func (p *Parser) parseExceptHandler() (ast.NodeID, bool) {
	start := p.advance().Start
	star := p.eatOp("*")
	var kids []ast.NodeID
	name := ""
	if !p.atOp(":") {
		kids = append(kids, p.parseExpression())
		if p.atOp(",") {
			p.failAt(p.peek(), "multiple exception types must be parenthesized")
		}
		if p.eatKw("as") {
			name = normalizeName(p.expectName().Text)
		}
	} else if star {
		p.failAt(p.peek(), "expected one or more exception types")
	}
	body := p.parseBlock()
	id := p.node(ast.ExceptHandler, start)
	n := p.get(id)
	n.Kids = kids
	n.Value = name
	n.Body = body
	return id, star
}

func (p *Parser) parseWith(start token.Pos, async bool) ast.NodeID {
	p.expectKw("with")
	items := p.parseWithItems()
	body := p.parseBlock()
	kind := ast.With
	if async {
		kind = ast.AsyncWith
	}
	id := p.node(kind, start)
	n := p.get(id)
	n.Kids = items
	n.Body = body
	return id
}

// parseWithItems пробует скобочную форму 'with (a as b, c):' и откатывается к выражению.
func (p *Parser) parseWithItems() []ast.NodeID {
	if p.atOp("(") {
		mark, prev := p.pos, p.prevEnd
		if items, ok := p.tryParenWithItems(); ok {
			return items
		}
		p.pos, p.prevEnd = mark, prev
	}
	items := []ast.NodeID{p.parseWithItem()}
	for p.eatOp(",") {
		items = append(items, p.parseWithItem())
	}
	return items
}

func (p *Parser) tryParenWithItems() (items []ast.NodeID, ok bool) {
	saved := p.err
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			p.err = saved
			items, ok = nil, false
		}
	}()
	p.expectOp("(")
	for !p.atOp(")") {
		items = append(items, p.parseWithItem())
		if !p.eatOp(",") {
			break
		}
	}
	p.expectOp(")")
	if !p.atOp(":") || len(items) == 0 {
		return nil, false
	}
	return items, true
}

func (p *Parser) parseWithItem() ast.NodeID {
	start := p.peek().Start
	kids := []ast.NodeID{p.parseExpression()}
	if p.eatKw("as") {
		target := p.parseStarTarget()
		p.checkTarget(target, "assign to")
		kids = append(kids, target)
	}
	id := p.node(ast.WithItem, start)
	p.get(id).Kids = kids
	return id
}

func (p *Parser) parseDecorated() ast.NodeID {
	start := p.peek().Start
	var decorators []ast.NodeID
	for p.eatOp("@") {
		decorators = append(decorators, p.parseNamedExpression())
		p.expectNewline()
	}
	switch {
	case p.atKw("def"):
		return p.parseFuncDef(start, decorators, false)
	case p.atKw("class"):
		return p.parseClassDef(start, decorators)
	case p.atKw("async") && p.peekAt(1).Kind == token.NAME && p.peekAt(1).Text == "def":
		p.advance()
		return p.parseFuncDef(start, decorators, true)
	}
	p.failAt(p.peek(), "invalid syntax")
	return ast.NoNodeID
}

func (p *Parser) parseAsync() ast.NodeID {
	start := p.advance().Start
	switch {
	case p.atKw("def"):
		return p.parseFuncDef(start, nil, true)
	case p.atKw("for"):
		return p.parseFor(start, true)
	case p.atKw("with"):
		return p.parseWith(start, true)
	}
	p.failAt(p.peek(), "invalid syntax")
	return ast.NoNodeID
}

func (p *Parser) parseFuncDef(start token.Pos, decorators []ast.NodeID, async bool) ast.NodeID {
	p.expectKw("def")
	name := normalizeName(p.expectName().Text)
	p.expectOp("(")
	args := p.parseParameters(")", true)
	p.expectOp(")")
	kids := []ast.NodeID{args}
	if p.eatOp("->") {
		kids = append(kids, p.parseExpression())
	}
	body := p.parseBlock()
	kind := ast.FunctionDef
	if async {
		kind = ast.AsyncFunctionDef
	}
	id := p.node(kind, start)
	n := p.get(id)
	n.Value = name
	n.Kids = kids
	n.Body = body
	n.Decorators = decorators
	return id
}

func (p *Parser) parseClassDef(start token.Pos, decorators []ast.NodeID) ast.NodeID {
	p.expectKw("class")
	name := normalizeName(p.expectName().Text)
	var bases []ast.NodeID
	if p.eatOp("(") {
		bases = p.parseCallArgs()
		p.expectOp(")")
	}
	body := p.parseBlock()
	id := p.node(ast.ClassDef, start)
	n := p.get(id)
	n.Value = name
	n.Kids = bases
	n.Body = body
	n.Decorators = decorators
	return id
}
