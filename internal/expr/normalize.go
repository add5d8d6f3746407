package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokLParen
	tokRParen
	tokOp
)

type token struct {
	kind tokenKind
	text string
}

// Normalize rewrites src into govaluate syntax. It inserts the multiplication
// operators left implicit by the source, turns ^ into ** and canonicalizes
// numeric literals. Operands are grouped explicitly so that prefix minus binds
// looser than ^ and ^ chains associate to the right.
func Normalize(src string) (string, error) {
	toks, err := tokenize(src)
	if err != nil {
		return "", err
	}
	if len(toks) == 0 {
		return "", fmt.Errorf("%w: empty expression", ErrParse)
	}

	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return "", err
	}
	if t, ok := p.peek(); ok {
		return "", fmt.Errorf("%w: unexpected %q", ErrParse, t.text)
	}
	return n.text, nil
}

// Binding strength of an emitted fragment. A fragment used where a stronger
// one is required gets parenthesized.
const (
	precSum = iota + 1
	precNeg
	precProduct
	precPower
	precAtom
)

type node struct {
	text string
	prec int
}

func (n node) at(want int) string {
	if n.prec < want {
		return "(" + n.text + ")"
	}
	return n.text
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) isOp(ops string) (string, bool) {
	t, ok := p.peek()
	if !ok || t.kind != tokOp || !strings.Contains(ops, t.text) {
		return "", false
	}
	return t.text, true
}

// expr := product (("+" | "-") product)*
func (p *parser) expr() (node, error) {
	left, err := p.product()
	if err != nil {
		return node{}, err
	}
	for {
		op, ok := p.isOp("+-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.product()
		if err != nil {
			return node{}, err
		}
		left = node{left.text + " " + op + " " + right.at(precProduct), precSum}
	}
}

// product := neg (("*" | "/" | "%" | juxtaposition) neg)*
func (p *parser) product() (node, error) {
	left, err := p.neg()
	if err != nil {
		return node{}, err
	}
	for {
		op, ok := p.isOp("*/%")
		if ok {
			p.pos++
		} else if t, more := p.peek(); more && p.pos > 0 && implicitProduct(p.toks[p.pos-1], t) {
			op = "*"
		} else {
			return left, nil
		}
		right, err := p.neg()
		if err != nil {
			return node{}, err
		}
		left = node{left.at(precProduct) + " " + op + " " + right.at(precPower), precProduct}
	}
}

// neg := ("-" | "+") neg | power
func (p *parser) neg() (node, error) {
	op, ok := p.isOp("+-")
	if !ok {
		return p.power()
	}
	p.pos++
	n, err := p.neg()
	if err != nil {
		return node{}, err
	}
	if op == "+" {
		return n, nil
	}
	return node{"-" + n.at(precAtom), precNeg}, nil
}

// power := atom ("^" neg)?
func (p *parser) power() (node, error) {
	base, err := p.atom()
	if err != nil {
		return node{}, err
	}
	if _, ok := p.isOp("^"); !ok {
		return base, nil
	}
	p.pos++
	exp, err := p.neg()
	if err != nil {
		return node{}, err
	}
	return node{base.text + " ** " + exp.at(precAtom), precPower}, nil
}

func (p *parser) atom() (node, error) {
	t, ok := p.peek()
	if !ok {
		return node{}, fmt.Errorf("%w: unexpected end of expression", ErrParse)
	}
	p.pos++
	switch t.kind {
	case tokNumber:
		return node{t.text, precAtom}, nil
	case tokIdent:
		if _, isFunc := functions[t.text]; isFunc {
			if next, ok := p.peek(); ok && next.kind == tokLParen {
				p.pos++
				return p.call(t.text)
			}
		}
		return node{t.text, precAtom}, nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return node{}, err
		}
		if err := p.closeParen(); err != nil {
			return node{}, err
		}
		return node{"(" + inner.text + ")", precAtom}, nil
	}
	return node{}, fmt.Errorf("%w: unexpected %q", ErrParse, t.text)
}

func (p *parser) call(name string) (node, error) {
	var args []string
	if t, ok := p.peek(); ok && t.kind == tokRParen {
		p.pos++
		return node{name + "()", precAtom}, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return node{}, err
		}
		args = append(args, arg.text)
		if _, ok := p.isOp(","); !ok {
			break
		}
		p.pos++
	}
	if err := p.closeParen(); err != nil {
		return node{}, err
	}
	return node{name + "(" + strings.Join(args, ", ") + ")", precAtom}, nil
}

func (p *parser) closeParen() error {
	t, ok := p.peek()
	if !ok || t.kind != tokRParen {
		return fmt.Errorf("%w: missing )", ErrParse)
	}
	p.pos++
	return nil
}

// implicitProduct reports whether a juxtaposition of prev and next means
// multiplication.
func implicitProduct(prev, next token) bool {
	switch prev.kind {
	case tokNumber, tokRParen:
		return next.kind == tokNumber || next.kind == tokIdent || next.kind == tokLParen
	case tokIdent:
		if next.kind == tokLParen {
			_, isFunc := functions[prev.text]
			return !isFunc
		}
		return next.kind == tokNumber || next.kind == tokIdent
	}
	return false
}

func tokenize(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := scanNumber(rs, i)
			v, err := strconv.ParseFloat(string(rs[i:j]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrParse, string(rs[i:j]))
			}
			toks = append(toks, token{kind: tokNumber, text: strconv.FormatFloat(v, 'f', -1, 64)})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[i:j])})
			i = j
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "^"})
			i += 2
		case strings.ContainsRune("+-*/%^,", r):
			toks = append(toks, token{kind: tokOp, text: string(r)})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, r, i)
		}
	}
	return toks, nil
}

// scanNumber returns the end of the numeric literal starting at i. An
// exponent is only consumed when digits follow, so "2e" stays 2 times e.
func scanNumber(rs []rune, i int) int {
	j := i
	for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
		j++
	}
	if j < len(rs) && (rs[j] == 'e' || rs[j] == 'E') {
		k := j + 1
		if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
			k++
		}
		if k < len(rs) && unicode.IsDigit(rs[k]) {
			for k < len(rs) && unicode.IsDigit(rs[k]) {
				k++
			}
			j = k
		}
	}
	return j
}
