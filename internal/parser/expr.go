package parser

import (
	"strings"

	"flint/internal/ast"
	"flint/internal/token"
)

// parseStarExpressionsOrYield: правая часть присваивания или выражение-инструкция
func (p *Parser) parseStarExpressionsOrYield() ast.NodeID {
	if p.atKw("yield") {
		return p.parseYield()
	}
	return p.parseStarExpressions()
}

// parseStarExpressions: star_expression (',' star_expression)* [','] - без скобок даёт Tuple.
func (p *Parser) parseStarExpressions() ast.NodeID {
	start := p.peek().Start
	first := p.parseStarExpression()
	if !p.atOp(",") {
		return first
	}
	elts := []ast.NodeID{first}
	for p.eatOp(",") {
		if !p.startsExpr() {
			break
		}
		elts = append(elts, p.parseStarExpression())
	}
	id := p.node(ast.Tuple, start)
	p.get(id).Kids = elts
	return id
}

func (p *Parser) parseStarExpression() ast.NodeID {
	if p.atOp("*") {
		start := p.advance().Start
		inner := p.parseBitwiseOr()
		id := p.node(ast.Starred, start)
		p.get(id).Kids = []ast.NodeID{inner}
		return id
	}
	return p.parseExpression()
}

// parseStarNamedExpression: элемент списка, множества или кортежа в скобках
func (p *Parser) parseStarNamedExpression() ast.NodeID {
	if p.atOp("*") {
		return p.parseStarExpression()
	}
	return p.parseNamedExpression()
}

// startsExpr сообщает, может ли текущий токен начинать выражение.
func (p *Parser) startsExpr() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.NAME:
		return !tok.IsKeyword() || startsExpression(tok.Text)
	case token.NUMBER, token.STRING:
		return true
	case token.OP:
		switch tok.Text {
		case "(", "[", "{", "-", "+", "~", "*", "...":
			return true
		}
	}
	return false
}

func (p *Parser) parseYield() ast.NodeID {
	start := p.advance().Start
	if p.eatKw("from") {
		value := p.parseExpression()
		id := p.node(ast.YieldFrom, start)
		p.get(id).Kids = []ast.NodeID{value}
		return id
	}
	id := p.node(ast.Yield, start)
	if p.startsExpr() {
		p.finish(id, p.parseStarExpressions())
	}
	return id
}

// parseNamedExpression: NAME ':=' expression | expression
func (p *Parser) parseNamedExpression() ast.NodeID {
	tok := p.peek()
	if tok.IsName() && p.peekAt(1).IsOp(":=") {
		p.advance()
		target := p.node(ast.Name, tok.Start)
		p.get(target).Value = normalizeName(tok.Text)
		p.advance()
		value := p.parseExpression()
		id := p.node(ast.NamedExpr, tok.Start)
		p.get(id).Kids = []ast.NodeID{target, value}
		return id
	}
	expr := p.parseExpression()
	if p.atOp(":=") {
		p.failNode(expr, "cannot use assignment expressions with "+describe(p.get(expr).Kind))
	}
	return expr
}

// parseExpression: disjunction ['if' disjunction 'else' expression] | lambda
func (p *Parser) parseExpression() ast.NodeID {
	if p.atKw("lambda") {
		return p.parseLambda()
	}
	start := p.peek().Start
	body := p.parseDisjunction()
	if !p.eatKw("if") {
		return body
	}
	test := p.parseDisjunction()
	if !p.eatKw("else") {
		p.failAt(p.peek(), "expected 'else' after 'if' expression")
	}
	orelse := p.parseExpression()
	id := p.node(ast.IfExp, start)
	p.get(id).Kids = []ast.NodeID{test, body, orelse}
	return id
}

func (p *Parser) parseLambda() ast.NodeID {
	start := p.advance().Start
	args := p.parseParameters(":", false)
	p.expectOp(":")
	body := p.parseExpression()
	id := p.node(ast.Lambda, start)
	p.get(id).Kids = []ast.NodeID{args, body}
	return id
}

func (p *Parser) parseDisjunction() ast.NodeID {
	return p.parseBoolOp("or", p.parseConjunction)
}

func (p *Parser) parseConjunction() ast.NodeID {
	return p.parseBoolOp("and", p.parseInversion)
}

// parseBoolOp собирает цепочку a or b or c в один BoolOp.
func (p *Parser) parseBoolOp(kw string, next func() ast.NodeID) ast.NodeID {
	first := next()
	if !p.atKw(kw) {
		return first
	}
	values := []ast.NodeID{first}
	for p.eatKw(kw) {
		values = append(values, next())
	}
	id := p.node(ast.BoolOp, p.startOf(first))
	n := p.get(id)
	n.Value = kw
	n.Kids = values
	return id
}

func (p *Parser) parseInversion() ast.NodeID {
	if p.atKw("not") {
		start := p.advance().Start
		operand := p.parseInversion()
		id := p.node(ast.UnaryOp, start)
		n := p.get(id)
		n.Value = "not"
		n.Kids = []ast.NodeID{operand}
		return id
	}
	return p.parseComparison()
}

// compareOp возвращает оператор сравнения под курсором и число его токенов.
func (p *Parser) compareOp() (string, int) {
	tok := p.peek()
	switch {
	case tok.Kind == token.OP:
		switch tok.Text {
		case "==", "!=", "<", "<=", ">", ">=", "<>":
			return tok.Text, 1
		}
	case tok.Kind == token.NAME && tok.Text == "in":
		return "in", 1
	case tok.Kind == token.NAME && tok.Text == "not":
		if next := p.peekAt(1); next.Kind == token.NAME && next.Text == "in" {
			return "not in", 2
		}
	case tok.Kind == token.NAME && tok.Text == "is":
		if next := p.peekAt(1); next.Kind == token.NAME && next.Text == "not" {
			return "is not", 2
		}
		return "is", 1
	}
	return "", 0
}

func (p *Parser) parseComparison() ast.NodeID {
	first := p.parseBitwiseOr()
	op, width := p.compareOp()
	if width == 0 {
		return first
	}
	var ops []string
	operands := []ast.NodeID{first}
	for width > 0 {
		if op == "<>" {
			p.failAt(p.peek(), "invalid syntax")
		}
		for range width {
			p.advance()
		}
		ops = append(ops, op)
		operands = append(operands, p.parseBitwiseOr())
		op, width = p.compareOp()
	}
	id := p.node(ast.Compare, p.startOf(first))
	n := p.get(id)
	n.Value = strings.Join(ops, ",")
	n.Kids = operands
	return id
}

// binaryLevels: бинарные операторы по возрастанию приоритета, все левоассоциативные
var binaryLevels = [][]string{
	{"|"},
	{"^"},
	{"&"},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "//", "%", "@"},
}

func (p *Parser) parseBitwiseOr() ast.NodeID { return p.parseBinary(0) }

func (p *Parser) parseBinary(level int) ast.NodeID {
	if level == len(binaryLevels) {
		return p.parseFactor()
	}
	left := p.parseBinary(level + 1)
	for {
		tok := p.peek()
		if tok.Kind != token.OP || !contains(binaryLevels[level], tok.Text) {
			return left
		}
		p.advance()
		right := p.parseBinary(level + 1)
		id := p.node(ast.BinOp, p.startOf(left))
		n := p.get(id)
		n.Value = tok.Text
		n.Kids = []ast.NodeID{left, right}
		left = id
	}
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

// parseFactor: ('+'|'-'|'~') factor | power
func (p *Parser) parseFactor() ast.NodeID {
	tok := p.peek()
	if tok.IsOp("+") || tok.IsOp("-") || tok.IsOp("~") {
		p.advance()
		operand := p.parseFactor()
		id := p.node(ast.UnaryOp, tok.Start)
		n := p.get(id)
		n.Value = tok.Text
		n.Kids = []ast.NodeID{operand}
		return id
	}
	return p.parsePower()
}

// parsePower: await_primary ['**' factor]
func (p *Parser) parsePower() ast.NodeID {
	base := p.parseAwaitPrimary()
	if !p.eatOp("**") {
		return base
	}
	exp := p.parseFactor()
	id := p.node(ast.BinOp, p.startOf(base))
	n := p.get(id)
	n.Value = "**"
	n.Kids = []ast.NodeID{base, exp}
	return id
}

func (p *Parser) parseAwaitPrimary() ast.NodeID {
	if p.atKw("await") {
		start := p.advance().Start
		value := p.parsePrimary()
		id := p.node(ast.Await, start)
		p.get(id).Kids = []ast.NodeID{value}
		return id
	}
	return p.parsePrimary()
}

// parsePrimary: atom, затем цепочка .name, (args), [slices]
func (p *Parser) parsePrimary() ast.NodeID {
	expr := p.parseAtom()
	for {
		switch {
		case p.atOp("."):
			p.advance()
			name := p.expectName()
			id := p.node(ast.Attribute, p.startOf(expr))
			n := p.get(id)
			n.Value = normalizeName(name.Text)
			n.Kids = []ast.NodeID{expr}
			expr = id
		case p.atOp("("):
			p.advance()
			args := p.parseCallArgs()
			p.expectOp(")")
			id := p.node(ast.Call, p.startOf(expr))
			p.get(id).Kids = append([]ast.NodeID{expr}, args...)
			expr = id
		case p.atOp("["):
			p.advance()
			index := p.parseSlices()
			p.expectOp("]")
			id := p.node(ast.Subscript, p.startOf(expr))
			p.get(id).Kids = []ast.NodeID{expr, index}
			expr = id
		default:
			return expr
		}
	}
}

// parseSlices: slice (',' slice)* [','] - несколько элементов дают Tuple.
func (p *Parser) parseSlices() ast.NodeID {
	start := p.peek().Start
	first := p.parseSlice()
	if !p.atOp(",") {
		return first
	}
	elts := []ast.NodeID{first}
	for p.eatOp(",") {
		if p.atOp("]") {
			break
		}
		elts = append(elts, p.parseSlice())
	}
	id := p.node(ast.Tuple, start)
	p.get(id).Kids = elts
	return id
}

// parseSlice: [lower] ':' [upper] [':' [step]] | star_named_expression
func (p *Parser) parseSlice() ast.NodeID {
	start := p.peek().Start
	lower := ast.NoNodeID
	if !p.atOp(":") {
		lower = p.parseStarNamedExpression()
		if !p.atOp(":") {
			return lower
		}
	}
	p.advance()
	upper, step := ast.NoNodeID, ast.NoNodeID
	if !p.atOp(":") && !p.atOp(",") && !p.atOp("]") {
		upper = p.parseExpression()
	}
	if p.eatOp(":") && !p.atOp(",") && !p.atOp("]") {
		step = p.parseExpression()
	}
	id := p.node(ast.Slice, start)
	p.get(id).Kids = []ast.NodeID{lower, upper, step}
	return id
}
