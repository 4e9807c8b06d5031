package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"flint/internal/ast"
	"flint/internal/token"
)

// normalizeName приводит идентификатор к NFKC, как это делает интерпретатор.
func normalizeName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			return norm.NFKC.String(name)
		}
	}
	return name
}

func (p *Parser) parseAtom() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.NAME:
		switch tok.Text {
		case "None", "True", "False":
			p.advance()
			id := p.node(ast.Constant, tok.Start)
			p.get(id).Value = tok.Text
			return id
		}
		if tok.IsKeyword() {
			p.failAt(tok, "invalid syntax")
		}
		p.advance()
		id := p.node(ast.Name, tok.Start)
		p.get(id).Value = normalizeName(tok.Text)
		return id
	case token.NUMBER:
		p.advance()
		id := p.node(ast.Constant, tok.Start)
		p.get(id).Value = tok.Text
		return id
	case token.STRING:
		return p.parseStrings()
	case token.OP:
		switch tok.Text {
		case "...":
			p.advance()
			id := p.node(ast.Constant, tok.Start)
			p.get(id).Value = "..."
			return id
		case "(":
			return p.parseParenthesized()
		case "[":
			return p.parseListDisplay()
		case "{":
			return p.parseBraceDisplay()
		}
	}
	p.failAt(tok, "invalid syntax")
	return ast.NoNodeID
}

// stringPrefix возвращает префикс литерала в нижнем регистре.
func stringPrefix(text string) string {
	i := strings.IndexAny(text, "'\"")
	if i < 0 {
		return ""
	}
	return strings.ToLower(text[:i])
}

// parseStrings склеивает соседние строковые литералы в один узел.
func (p *Parser) parseStrings() ast.NodeID {
	first := p.peek()
	var parts []string
	bytes, text, formatted := false, false, false
	for p.at(token.STRING) {
		tok := p.advance()
		prefix := stringPrefix(tok.Text)
		if strings.Contains(prefix, "b") {
			bytes = true
		} else {
			text = true
		}
		if strings.Contains(prefix, "f") {
			formatted = true
		}
		if bytes && text {
			p.failPos(first.Start, first.Line, "cannot mix bytes and nonbytes literals")
		}
		parts = append(parts, tok.Text)
	}
	kind := ast.Constant
	if formatted {
		kind = ast.JoinedStr
	}
	id := p.node(kind, first.Start)
	p.get(id).Value = strings.Join(parts, " ")
	return id
}

// parseParenthesized: () | (yield) | (expr) | (a, b) | (x for x in y)
func (p *Parser) parseParenthesized() ast.NodeID {
	open := p.advance()
	if p.eatOp(")") {
		return p.node(ast.Tuple, open.Start)
	}
	if p.atKw("yield") {
		inner := p.parseYield()
		p.expectOp(")")
		return inner
	}
	first := p.parseStarNamedExpression()
	if p.atComprehension() {
		if p.get(first).Kind == ast.Starred {
			p.failNode(first, "iterable unpacking cannot be used in comprehension")
		}
		gens := p.parseComprehensions()
		p.expectOp(")")
		id := p.node(ast.GeneratorExp, open.Start)
		p.get(id).Kids = append([]ast.NodeID{first}, gens...)
		return id
	}
	if !p.atOp(",") {
		p.expectOp(")")
		if p.get(first).Kind == ast.Starred {
			p.failNode(first, "cannot use starred expression here")
		}
		return first
	}
	elts := []ast.NodeID{first}
	for p.eatOp(",") {
		if p.atOp(")") {
			break
		}
		elts = append(elts, p.parseStarNamedExpression())
	}
	p.expectOp(")")
	id := p.node(ast.Tuple, open.Start)
	p.get(id).Kids = elts
	return id
}

func (p *Parser) parseListDisplay() ast.NodeID {
	open := p.advance()
	var elts []ast.NodeID
	if !p.atOp("]") {
		first := p.parseStarNamedExpression()
		if p.atComprehension() {
			gens := p.parseComprehensions()
			p.expectOp("]")
			id := p.node(ast.ListComp, open.Start)
			p.get(id).Kids = append([]ast.NodeID{first}, gens...)
			return id
		}
		elts = append(elts, first)
		for p.eatOp(",") {
			if p.atOp("]") {
				break
			}
			elts = append(elts, p.parseStarNamedExpression())
		}
	}
	p.expectOp("]")
	id := p.node(ast.List, open.Start)
	p.get(id).Kids = elts
	return id
}

// parseBraceDisplay разбирает dict, set и их comprehension-формы.
func (p *Parser) parseBraceDisplay() ast.NodeID {
	open := p.advance()
	if p.eatOp("}") {
		return p.node(ast.Dict, open.Start)
	}
	first := p.parseDictOrSetItem()
	isDict := p.get(first).Kind == ast.DictUnpack || p.atOp(":")
	if !isDict {
		if p.atComprehension() {
			gens := p.parseComprehensions()
			p.expectOp("}")
			id := p.node(ast.SetComp, open.Start)
			p.get(id).Kids = append([]ast.NodeID{first}, gens...)
			return id
		}
		elts := []ast.NodeID{first}
		for p.eatOp(",") {
			if p.atOp("}") {
				break
			}
			elts = append(elts, p.parseStarNamedExpression())
		}
		p.expectOp("}")
		id := p.node(ast.Set, open.Start)
		p.get(id).Kids = elts
		return id
	}

	items := []ast.NodeID{first}
	if p.get(first).Kind != ast.DictUnpack {
		p.expectOp(":")
		value := p.parseExpression()
		if p.atComprehension() {
			gens := p.parseComprehensions()
			p.expectOp("}")
			id := p.node(ast.DictComp, open.Start)
			p.get(id).Kids = append([]ast.NodeID{first, value}, gens...)
			return id
		}
		items = append(items, value)
	}
	for p.eatOp(",") {
		if p.atOp("}") {
			break
		}
		item := p.parseDictOrSetItem()
		items = append(items, item)
		if p.get(item).Kind != ast.DictUnpack {
			p.expectOp(":")
			items = append(items, p.parseExpression())
		}
	}
	p.expectOp("}")
	id := p.node(ast.Dict, open.Start)
	p.get(id).Kids = items
	return id
}

// parseDictOrSetItem: '**' bitwise_or | star_named_expression
func (p *Parser) parseDictOrSetItem() ast.NodeID {
	if p.atOp("**") {
		start := p.advance().Start
		value := p.parseBitwiseOr()
		id := p.node(ast.DictUnpack, start)
		p.get(id).Kids = []ast.NodeID{value}
		return id
	}
	return p.parseStarNamedExpression()
}

func (p *Parser) atComprehension() bool {
	if p.atKw("for") {
		return true
	}
	next := p.peekAt(1)
	return p.atKw("async") && next.Kind == token.NAME && next.Text == "for"
}

// parseComprehensions: ('async'? 'for' targets 'in' disjunction ('if' disjunction)*)+
func (p *Parser) parseComprehensions() []ast.NodeID {
	var gens []ast.NodeID
	for p.atComprehension() {
		start := p.peek().Start
		async := p.eatKw("async")
		p.expectKw("for")
		target := p.parseTargetList()
		p.expectKw("in")
		kids := []ast.NodeID{target, p.parseDisjunction()}
		for p.eatKw("if") {
			kids = append(kids, p.parseDisjunction())
		}
		id := p.node(ast.Comprehension, start)
		n := p.get(id)
		n.Kids = kids
		if async {
			n.Value = "async"
		}
		gens = append(gens, id)
	}
	return gens
}
