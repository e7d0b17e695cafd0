package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/scanner"
)

// ParseError describes an invalid validator expression.
type ParseError struct {
	Expr   string
	Offset int
	Msg    string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid validator %q at offset %d: %s", e.Expr, e.Offset, e.Msg)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

var primitivesByName = map[string]Validator{
	"string":   String,
	"boolean":  Boolean,
	"bool":     Boolean,
	"integer":  Integer,
	"int":      Integer,
	"function": Function,
	"func":     Function,
	"path":     Path,
	"filepath": Path,
	"regexp":   RegExp,
	"promise":  Promise,
}

// Parse builds a validator from an expression such as
//
//	required(arrayOf(oneOf(string, boolean)))
//
// Names are case-insensitive. Combinators are arrayOf, objectOf,
// arrayOrSingle, oneOf, required and match; match takes a quoted regular
// expression. Combinators other than oneOf may be written without arguments.
func Parse(expr string) (Validator, error) {
	p := &parser{expr: expr}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.ScanRawStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = p.errorf("%s", msg)
		}
	}
	p.next()

	v, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %q after expression", p.text)
	}
	if p.err != nil {
		return nil, p.err
	}
	return v, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Validator {
	v, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return v
}

type parser struct {
	expr   string
	s      scanner.Scanner
	tok    rune
	text   string
	offset int
	err    error
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.offset = p.s.Position.Offset
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Expr: p.expr, Offset: p.offset, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tok rune) error {
	if p.err != nil {
		return p.err
	}
	if p.tok != tok {
		return p.errorf("expected %q, found %q", string(tok), p.text)
	}
	p.next()
	return nil
}

func (p *parser) parseExpr() (Validator, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.tok != scanner.Ident {
		return nil, p.errorf("expected validator name, found %q", p.text)
	}
	name := strings.ToLower(p.text)
	start := p.offset
	p.next()

	if prim, ok := primitivesByName[name]; ok {
		if p.tok == '(' {
			p.next()
			if err := p.expect(')'); err != nil {
				return nil, err
			}
		}
		return prim, nil
	}

	if name == "match" {
		return p.parseMatch()
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	switch name {
	case "arrayof", "array":
		inner, err := p.single(name, args)
		if err != nil {
			return nil, err
		}
		return ArrayOf(inner), nil
	case "objectof", "object":
		inner, err := p.single(name, args)
		if err != nil {
			return nil, err
		}
		return ObjectOf(inner), nil
	case "arrayorsingle":
		inner, err := p.single(name, args)
		if err != nil {
			return nil, err
		}
		return ArrayOrSingle(inner), nil
	case "required":
		inner, err := p.single(name, args)
		if err != nil {
			return nil, err
		}
		return Required(inner), nil
	case "oneof":
		v, err := OneOf(args...)
		if err != nil {
			return nil, &ParseError{Expr: p.expr, Offset: start, Msg: err.Error(), Err: err}
		}
		return v, nil
	}

	return nil, &ParseError{Expr: p.expr, Offset: start, Msg: fmt.Sprintf("unknown validator %q", name)}
}

// parseArgs parses an optional parenthesised argument list.
func (p *parser) parseArgs() ([]Validator, error) {
	if p.tok != '(' {
		return nil, nil
	}
	p.next()

	var args []Validator
	for p.tok != ')' {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok != ',' {
			break
		}
		p.next()
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) single(name string, args []Validator) (Validator, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		return args[0], nil
	default:
		return nil, p.errorf("%s takes at most one validator, got %d", name, len(args))
	}
}

func (p *parser) parseMatch() (Validator, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	if p.tok != scanner.String && p.tok != scanner.RawString {
		return nil, p.errorf("match expects a quoted pattern, found %q", p.text)
	}
	pattern, err := strconv.Unquote(p.text)
	if err != nil {
		return nil, p.errorf("bad pattern literal: %v", err)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ParseError{Expr: p.expr, Offset: p.offset, Msg: err.Error(), Err: err}
	}
	p.next()
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return Match(re), nil
}
