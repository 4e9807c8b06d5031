package parser

import (
	"strings"

	"flint/internal/ast"
	"flint/internal/token"
)

var augAssignOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "@=": true, "/=": true, "%=": true, "&=": true,
	"|=": true, "^=": true, "<<=": true, ">>=": true, "**=": true, "//=": true,
}

// parseStatement разбирает одну инструкцию; простые через ';' дают несколько узлов.
func (p *Parser) parseStatement() []ast.NodeID {
	tok := p.peek()
	if tok.Kind == token.INDENT {
		p.failAt(tok, "unexpected indent")
	}
	if tok.IsOp("@") {
		return []ast.NodeID{p.parseDecorated()}
	}
	if tok.Kind == token.NAME {
		switch tok.Text {
		case "if":
			return []ast.NodeID{p.parseIf()}
		case "while":
			return []ast.NodeID{p.parseWhile()}
		case "for":
			return []ast.NodeID{p.parseFor(tok.Start, false)}
		case "try":
			return []ast.NodeID{p.parseTry()}
		case "with":
			return []ast.NodeID{p.parseWith(tok.Start, false)}
		case "def":
			return []ast.NodeID{p.parseFuncDef(tok.Start, nil, false)}
		case "class":
			return []ast.NodeID{p.parseClassDef(tok.Start, nil)}
		case "async":
			return []ast.NodeID{p.parseAsync()}
		}
	}
	return p.parseSimpleStmts()
}

// parseSimpleStmts: simple_stmt (';' simple_stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleStmts() []ast.NodeID {
	var out []ast.NodeID
	for {
		out = append(out, p.parseSimpleStmt())
		if !p.eatOp(";") {
			break
		}
		if p.at(token.NEWLINE) {
			break
		}
	}
	p.expectNewline()
	return out
}

func (p *Parser) parseSimpleStmt() ast.NodeID {
	tok := p.peek()
	start := tok.Start
	if tok.Kind == token.NAME {
		switch tok.Text {
		case "pass":
			p.advance()
			return p.node(ast.Pass, start)
		case "break":
			p.advance()
			return p.node(ast.Break, start)
		case "continue":
			p.advance()
			return p.node(ast.Continue, start)
		case "return":
			p.advance()
			id := p.node(ast.Return, start)
			if !p.atSimpleEnd() {
				value := p.parseStarExpressions()
				p.finish(id, value)
			}
			return id
		case "raise":
			return p.parseRaise()
		case "global", "nonlocal":
			return p.parseScopeDecl()
		case "del":
			return p.parseDel()
		case "assert":
			p.advance()
			kids := []ast.NodeID{p.parseExpression()}
			if p.eatOp(",") {
				kids = append(kids, p.parseExpression())
			}
			id := p.node(ast.Assert, start)
			p.get(id).Kids = kids
			return id
		case "import":
			return p.parseImport()
		case "from":
			return p.parseFromImport()
		}
	}
	if tok.IsKeyword() && !startsExpression(tok.Text) {
		p.failAt(tok, "invalid syntax")
	}
	return p.parseExprStmt()
}

// startsExpression: ключевые слова, с которых может начинаться выражение
func startsExpression(kw string) bool {
	switch kw {
	case "None", "True", "False", "not", "lambda", "await", "yield":
		return true
	}
	return false
}

func (p *Parser) atSimpleEnd() bool {
	return p.at(token.NEWLINE) || p.atOp(";") || p.at(token.ENDMARKER)
}

// finish дописывает детей и растягивает конец узла до последнего токена.
func (p *Parser) finish(id ast.NodeID, kids ...ast.NodeID) {
	n := p.get(id)
	n.Kids = append(n.Kids, kids...)
	n.End = p.prevEnd
}

func (p *Parser) parseExprStmt() ast.NodeID {
	start := p.peek().Start
	first := p.parseStarExpressionsOrYield()
	switch tok := p.peek(); {
	case tok.IsOp("="):
		exprs := []ast.NodeID{first}
		for p.eatOp("=") {
			exprs = append(exprs, p.parseStarExpressionsOrYield())
		}
		for _, target := range exprs[:len(exprs)-1] {
			p.checkTarget(target, "assign to")
		}
		id := p.node(ast.Assign, start)
		p.get(id).Kids = exprs
		return id
	case tok.Kind == token.OP && augAssignOps[tok.Text]:
		switch p.get(first).Kind {
		case ast.Name, ast.Attribute, ast.Subscript:
		default:
			p.failNode(first, "'"+describe(p.get(first).Kind)+"' is an illegal expression for augmented assignment")
		}
		p.advance()
		value := p.parseStarExpressionsOrYield()
		id := p.node(ast.AugAssign, start)
		n := p.get(id)
		n.Value = tok.Text
		n.Kids = []ast.NodeID{first, value}
		return id
	case tok.IsOp(":"):
		switch p.get(first).Kind {
		case ast.Name, ast.Attribute, ast.Subscript:
		case ast.Tuple:
			p.failNode(first, "only single target (not tuple) can be annotated")
		case ast.List:
			p.failNode(first, "only single target (not list) can be annotated")
		default:
			p.failNode(first, "illegal target for annotation")
		}
		p.advance()
		kids := []ast.NodeID{first, p.parseExpression()}
		if p.eatOp("=") {
			kids = append(kids, p.parseStarExpressionsOrYield())
		}
		id := p.node(ast.AnnAssign, start)
		p.get(id).Kids = kids
		return id
	}
	id := p.node(ast.Expr, start)
	p.get(id).Kids = []ast.NodeID{first}
	return id
}

// checkTarget проверяет, что выражение допустимо слева от '=' (или в del/for).
func (p *Parser) checkTarget(id ast.NodeID, verb string) {
	n := p.get(id)
	switch n.Kind {
	case ast.Name, ast.Attribute, ast.Subscript:
		return
	case ast.Starred:
		if verb == "delete" {
			break
		}
		p.checkTarget(n.Kids[0], verb)
		return
	case ast.Tuple, ast.List:
		for _, kid := range n.Kids {
			p.checkTarget(kid, verb)
		}
		return
	}
	p.failNode(id, "cannot "+verb+" "+describe(n.Kind))
}

// describe: человекочитаемое имя вида выражения для сообщений об ошибках
func describe(k ast.Kind) string {
	switch k {
	case ast.Constant, ast.JoinedStr:
		return "literal"
	case ast.Call:
		return "function call"
	case ast.BoolOp, ast.BinOp, ast.UnaryOp:
		return "expression"
	case ast.Compare:
		return "comparison"
	case ast.Lambda:
		return "lambda"
	case ast.IfExp:
		return "conditional expression"
	case ast.NamedExpr:
		return "named expression"
	case ast.Await:
		return "await expression"
	case ast.Yield, ast.YieldFrom:
		return "yield expression"
	case ast.Dict:
		return "dict literal"
	case ast.Set:
		return "set display"
	case ast.ListComp:
		return "list comprehension"
	case ast.SetComp:
		return "set comprehension"
	case ast.DictComp:
		return "dict comprehension"
	case ast.GeneratorExp:
		return "generator expression"
	case ast.Starred:
		return "starred"
	}
	return strings.ToLower(k.String())
}

func (p *Parser) parseRaise() ast.NodeID {
	start := p.advance().Start
	var kids []ast.NodeID
	if !p.atSimpleEnd() {
		kids = append(kids, p.parseExpression())
		if p.eatKw("from") {
			kids = append(kids, p.parseExpression())
		}
	}
	id := p.node(ast.Raise, start)
	p.get(id).Kids = kids
	return id
}

func (p *Parser) parseScopeDecl() ast.NodeID {
	kw := p.advance()
	kind := ast.Global
	if kw.Text == "nonlocal" {
		kind = ast.Nonlocal
	}
	names := []string{p.expectName().Text}
	for p.eatOp(",") {
		names = append(names, p.expectName().Text)
	}
	id := p.node(kind, kw.Start)
	p.get(id).Value = strings.Join(names, ",")
	return id
}

func (p *Parser) parseDel() ast.NodeID {
	start := p.advance().Start
	var targets []ast.NodeID
	for {
		target := p.parseBitwiseOr()
		p.checkTarget(target, "delete")
		targets = append(targets, target)
		if !p.eatOp(",") || p.atSimpleEnd() {
			break
		}
	}
	id := p.node(ast.Delete, start)
	p.get(id).Kids = targets
	return id
}

func (p *Parser) parseDottedName() string {
	var b strings.Builder
	b.WriteString(normalizeName(p.expectName().Text))
	for p.eatOp(".") {
		b.WriteByte('.')
		b.WriteString(normalizeName(p.expectName().Text))
	}
	return b.String()
}

// parseAlias: name ['as' NAME]; asname хранится как дочерний Name.
func (p *Parser) parseAlias(dotted bool) ast.NodeID {
	start := p.peek().Start
	var name string
	if dotted {
		name = p.parseDottedName()
	} else {
		name = normalizeName(p.expectName().Text)
	}
	var kids []ast.NodeID
	if p.eatKw("as") {
		tok := p.expectName()
		as := p.node(ast.Name, tok.Start)
		p.get(as).Value = normalizeName(tok.Text)
		kids = append(kids, as)
	}
	id := p.node(ast.Alias, start)
	n := p.get(id)
	n.Value = name
	n.Kids = kids
	return id
}

func (p *Parser) parseImport() ast.NodeID {
	start := p.advance().Start
	aliases := []ast.NodeID{p.parseAlias(true)}
	for p.eatOp(",") {
		aliases = append(aliases, p.parseAlias(true))
	}
	id := p.node(ast.Import, start)
	p.get(id).Kids = aliases
	return id
}

func (p *Parser) parseFromImport() ast.NodeID {
	start := p.advance().Start
	var module strings.Builder
	for {
		if p.eatOp(".") {
			module.WriteByte('.')
		} else if p.eatOp("...") {
			module.WriteString("...")
		} else {
			break
		}
	}
	if !p.atKw("import") {
		module.WriteString(p.parseDottedName())
	}
	p.expectKw("import")
	var aliases []ast.NodeID
	switch {
	case p.atOp("*"):
		tok := p.advance()
		star := p.node(ast.Alias, tok.Start)
		p.get(star).Value = "*"
		aliases = append(aliases, star)
	case p.eatOp("("):
		aliases = append(aliases, p.parseAlias(false))
		for p.eatOp(",") {
			if p.atOp(")") {
				break
			}
			aliases = append(aliases, p.parseAlias(false))
		}
		p.expectOp(")")
	default:
		aliases = append(aliases, p.parseAlias(false))
		for p.atOp(",") {
			comma := p.advance()
			if p.atSimpleEnd() {
				p.failAt(comma, "trailing comma not allowed without surrounding parentheses")
			}
			aliases = append(aliases, p.parseAlias(false))
		}
	}
	id := p.node(ast.ImportFrom, start)
	n := p.get(id)
	n.Value = module.String()
	n.Kids = aliases
	return id
}
