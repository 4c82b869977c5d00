package calculate

import "slices"

// Expr = Additive
// Additive = Multiplicative [ ('+' | '-') Additive ]
// Multiplicative = Unary [ ('*' | '/') Multiplicative ]
// Unary = [ '+' | '-' ] Primary
// Primary = Grouped | num
// Grouped = '(' Expr ')'
//
// Additive and Multiplicative recurse on their right operands, so chains of
// operators at the same level are right-associative.

// Parse parses an expression. The entire input must be a single expression.
// Invalid input produces an error that implements InputError: a *LexError for
// text that is not a token, or a *ParseError otherwise. Input nested more
// deeply than MaxDepth allows is a *ParseError as well.
func Parse(src string, opts ...ParseOption) (Node, error) {
	return parse(src, newParsectx(opts))
}

func parse(src string, pc parsectx) (Node, error) {
	p := parser{lex: lex(src, pc.dec), maxDepth: pc.maxDepth}
	if !p.lex.advance() {
		return nil, &ParseError{
			At:       p.lex.current().pos,
			Expected: []string{"expression"},
			Found:    p.lex.current().describe(),
		}
	}
	n := p.expr()
	if n != nil && !p.lex.exhausted() {
		p.fail("operator", "end of input")
		n = nil
	}
	if n == nil {
		return nil, p.err()
	}
	return n, nil
}

type parser struct {
	lex *lexer
	// failed is whether any rule has failed. found and expected describe the
	// failure that reached furthest into the input.
	failed   bool
	found    token
	expected []string
	// depth is the number of nested rules in progress. It may not exceed
	// maxDepth unless maxDepth is zero or less.
	depth    int
	maxDepth int
}

// tooDeep is what the parser expects when nesting reaches its limit.
const tooDeep = "expression nested less deeply"

// enter begins a nested rule. If that would exceed the depth limit, it
// records a failure and returns false.
func (p *parser) enter() bool {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		p.fail(tooDeep)
		return false
	}
	p.depth++
	return true
}

func (p *parser) leave() {
	p.depth--
}

// fail records that a rule expected one of a list of constructs at the current
// token. Only the furthest failures are kept.
func (p *parser) fail(expected ...string) {
	tok := p.lex.current()
	switch {
	case !p.failed || tok.pos.Offset > p.found.pos.Offset:
		p.failed = true
		p.found = tok
		p.expected = append(p.expected[:0], expected...)
	case tok.pos.Offset == p.found.pos.Offset:
		for _, e := range expected {
			if !slices.Contains(p.expected, e) {
				p.expected = append(p.expected, e)
			}
		}
	}
}

func (p *parser) err() error {
	if p.found.kind == tokenInvalid {
		return p.found.err
	}
	return &ParseError{
		At:       p.found.pos,
		Expected: slices.Clone(p.expected),
		Found:    p.found.describe(),
	}
}

func (p *parser) expr() Node {
	return p.additive()
}

func (p *parser) additive() Node {
	if !p.enter() {
		return nil
	}
	defer p.leave()
	cp := p.lex.checkpoint()
	left := p.multiplicative()
	if left == nil {
		p.lex.restore(cp)
		return nil
	}
	var op BinaryOp
	switch p.lex.current().kind {
	case tokenPlus:
		op = OpAdd
	case tokenDash:
		op = OpSub
	default:
		p.lex.commit(cp)
		return left
	}
	p.lex.advance()
	right := p.additive()
	if right == nil {
		p.lex.restore(cp)
		return nil
	}
	p.lex.commit(cp)
	return &Binary{Op: op, Left: left, Right: right}
}

func (p *parser) multiplicative() Node {
	if !p.enter() {
		return nil
	}
	defer p.leave()
	cp := p.lex.checkpoint()
	left := p.unary()
	if left == nil {
		p.lex.restore(cp)
		return nil
	}
	var op BinaryOp
	switch p.lex.current().kind {
	case tokenMultiply:
		op = OpMul
	case tokenDivide:
		op = OpDiv
	default:
		p.lex.commit(cp)
		return left
	}
	p.lex.advance()
	right := p.multiplicative()
	if right == nil {
		p.lex.restore(cp)
		return nil
	}
	p.lex.commit(cp)
	return &Binary{Op: op, Left: left, Right: right}
}

func (p *parser) unary() Node {
	cp := p.lex.checkpoint()
	sign, op := false, UnaryPlus
	switch p.lex.current().kind {
	case tokenPlus:
		sign = true
	case tokenDash:
		sign, op = true, UnaryMinus
	}
	if sign {
		p.lex.advance()
	}
	operand := p.primary()
	if operand == nil {
		if !sign {
			p.fail("unary operator")
		}
		p.lex.restore(cp)
		return nil
	}
	p.lex.commit(cp)
	if !sign {
		return operand
	}
	return &Unary{Op: op, Operand: operand}
}

// primary parses a group or a constant and moves past its last token.
func (p *parser) primary() Node {
	n := p.grouped()
	if n == nil {
		n = p.constant()
	}
	if n != nil {
		p.lex.advance()
	}
	return n
}

// grouped parses a parenthesized expression, leaving the closing parenthesis
// as the current token.
func (p *parser) grouped() Node {
	cp := p.lex.checkpoint()
	if p.lex.current().kind != tokenLeftParen {
		p.fail(`"("`)
		p.lex.restore(cp)
		return nil
	}
	if !p.enter() {
		p.lex.restore(cp)
		return nil
	}
	defer p.leave()
	p.lex.advance()
	n := p.expr()
	if n == nil {
		p.lex.restore(cp)
		return nil
	}
	if p.lex.current().kind != tokenRightParen {
		p.fail(`")"`, "operator")
		p.lex.restore(cp)
		return nil
	}
	p.lex.commit(cp)
	return &Grouped{Operand: n}
}

func (p *parser) constant() Node {
	tok := p.lex.current()
	if tok.kind != tokenNumber {
		p.fail("number")
		return nil
	}
	return &Constant{Value: tok.num}
}
