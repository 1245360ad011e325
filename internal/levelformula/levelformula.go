// Package levelformula parses and evaluates the admin-supplied progression
// formula. The grammar is a deliberate allow-list: numeric literals, the
// single variable total_earned, the unary functions sqrt and floor, and the
// operators + - * / ( ). Anything else is rejected at parse time. It is a
// small hand-written recursive-descent parser so the security boundary stays
// auditable; nothing here shells out to a general evaluator.
package levelformula

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Default is the formula seeded into a fresh economy config.
const Default = "floor(sqrt(total_earned / 100)) + 1"

var ErrInvalidFormula = errors.New("invalid formula")
var ErrEval = errors.New("formula evaluation failed")

// sampleInputs are the total_earned probes used by Validate.
var sampleInputs = []int64{0, 100, 10000}

type Formula struct {
	src  string
	root node
}

// Parse compiles src against the restricted grammar.
func Parse(src string) (*Formula, error) {
	p := &parser{src: src}

	root, err := p.parseExpr()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormula, err)
	}

	p.skipSpace()

	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidFormula, p.src[p.pos:], p.pos)
	}

	return &Formula{src: src, root: root}, nil
}

// Validate parses src and probes it with representative total_earned values,
// requiring every probe to produce a finite level of at least 1.
func Validate(src string) error {
	f, err := Parse(src)
	if err != nil {
		return err
	}

	for _, in := range sampleInputs {
		v, err := f.root.eval(float64(in))
		if err != nil {
			return fmt.Errorf("%w: probe total_earned=%d: %v", ErrInvalidFormula, in, err)
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: probe total_earned=%d: non-finite result", ErrInvalidFormula, in)
		}

		if math.Floor(v) < 1 {
			return fmt.Errorf("%w: probe total_earned=%d: level %v below 1", ErrInvalidFormula, in, math.Floor(v))
		}
	}

	return nil
}

func (f *Formula) String() string { return f.src }

// Eval computes the level for a lifetime-earned total. The result is floored
// and clamped to a minimum of 1.
func (f *Formula) Eval(totalEarned int64) (int64, error) {
	v, err := f.root.eval(float64(totalEarned))
	if err != nil {
		return 0, err
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite result", ErrEval)
	}

	// float64(math.MaxInt64) rounds up to 2^63, so >= is the safe bound.
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("%w: result out of int64 range", ErrEval)
	}

	lvl := int64(math.Floor(v))
	if lvl < 1 {
		lvl = 1
	}

	return lvl, nil
}

// --- AST ---

type node interface {
	eval(totalEarned float64) (float64, error)
}

type numberNode float64

func (n numberNode) eval(float64) (float64, error) { return float64(n), nil }

type varNode struct{}

func (varNode) eval(totalEarned float64) (float64, error) { return totalEarned, nil }

type unaryNode struct{ operand node }

func (n unaryNode) eval(totalEarned float64) (float64, error) {
	v, err := n.operand.eval(totalEarned)
	if err != nil {
		return 0, err
	}

	return -v, nil
}

type callNode struct {
	fn      string
	operand node
}

func (n callNode) eval(totalEarned float64) (float64, error) {
	v, err := n.operand.eval(totalEarned)
	if err != nil {
		return 0, err
	}

	switch n.fn {
	case "sqrt":
		if v < 0 {
			return 0, fmt.Errorf("%w: sqrt of negative value", ErrEval)
		}

		return math.Sqrt(v), nil
	case "floor":
		return math.Floor(v), nil
	default:
		return 0, fmt.Errorf("%w: unknown function %q", ErrEval, n.fn)
	}
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(totalEarned float64) (float64, error) {
	l, err := n.left.eval(totalEarned)
	if err != nil {
		return 0, err
	}

	r, err := n.right.eval(totalEarned)
	if err != nil {
		return 0, err
	}

	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrEval)
		}

		return l / r, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrEval, n.op)
	}
}

// --- Parser ---

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()

	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}

		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = binaryNode{op: op, left: left, right: right}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}

		p.pos++

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = binaryNode{op: op, left: left, right: right}
	}
}

// unary := '-' unary | primary
func (p *parser) parseUnary() (node, error) {
	if p.peek() == '-' {
		p.pos++

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return unaryNode{operand: operand}, nil
	}

	return p.parsePrimary()
}

// primary := number | 'total_earned' | ('sqrt' | 'floor') '(' expr ')' | '(' expr ')'
func (p *parser) parsePrimary() (node, error) {
	c := p.peek()

	switch {
	case c == '(':
		p.pos++

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		err = p.expect(')')
		if err != nil {
			return nil, err
		}

		return inner, nil

	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()

	case isIdentStart(c):
		return p.parseIdent()

	case c == 0:
		return nil, errors.New("unexpected end of formula")

	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", c, p.pos)
	}
}

func (p *parser) parseNumber() (node, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}

	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("bad number %q", p.src[start:p.pos])
	}

	return numberNode(v), nil
}

func (p *parser) parseIdent() (node, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}

	ident := strings.ToLower(p.src[start:p.pos])

	switch ident {
	case "total_earned":
		return varNode{}, nil

	case "sqrt", "floor":
		err := p.expect('(')
		if err != nil {
			return nil, err
		}

		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		err = p.expect(')')
		if err != nil {
			return nil, err
		}

		return callNode{fn: ident, operand: operand}, nil

	default:
		return nil, fmt.Errorf("identifier %q not allowed", p.src[start:p.pos])
	}
}

func (p *parser) expect(want byte) error {
	if p.peek() != want {
		return fmt.Errorf("expected %q at offset %d", want, p.pos)
	}

	p.pos++

	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
