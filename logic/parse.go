package logic

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrParse is returned when an expression string is malformed.
var ErrParse = errors.New("logic: parse error")

// ParseTerm parses a single term in the conventional syntax:
//
//	Sibiu
//	x
//	Connected(Pitesti, Rimnicu)
//	At(x)
//
// Bare symbols are classified as variables or constants by the naming
// convention. Nested compound arguments are accepted.
func ParseTerm(input string) (Term, error) {
	p := &parser{input: input}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseConjunction parses one or more terms joined by '&':
//
//	Connected(x, y) & Connected(y, z)
func ParseConjunction(input string) ([]Term, error) {
	p := &parser{input: input}
	var terms []Term
	for {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		p.skipSpace()
		if !p.consume('&') {
			break
		}
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return terms, nil
}

// MustParseTerm is ParseTerm for static expressions; it panics on error.
// Intended for tests and package-level tables.
func MustParseTerm(input string) Term {
	t, err := ParseTerm(input)
	if err != nil {
		panic(err)
	}
	return t
}

// parser is a minimal recursive-descent parser over the expression syntax.
type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) consume(ch byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == ch {
		p.pos++
		return true
	}
	return false
}

func (p *parser) symbol() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", fmt.Errorf("%w: expected symbol at offset %d in %q", ErrParse, p.pos, p.input)
	}
	return p.input[start:p.pos], nil
}

func (p *parser) term() (Term, error) {
	sym, err := p.symbol()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.consume('(') {
		return Atom(sym), nil
	}
	var args []Term
	p.skipSpace()
	if p.consume(')') {
		return nil, fmt.Errorf("%w: %s() has no arguments in %q", ErrParse, sym, p.input)
	}
	for {
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(')') {
			return NewOp(sym, args...), nil
		}
		return nil, fmt.Errorf("%w: expected ',' or ')' at offset %d in %q", ErrParse, p.pos, p.input)
	}
}

func (p *parser) expectEOF() error {
	p.skipSpace()
	if p.pos != len(p.input) {
		return fmt.Errorf("%w: trailing input %q in %q", ErrParse, strings.TrimSpace(p.input[p.pos:]), p.input)
	}
	return nil
}
