package symbolic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is the sentinel wrapped by every *ParseError.
var ErrParse = errors.New("invalid formula")

// ParseError reports a syntax error in a formula.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s at position %d", e.Input, e.Msg, e.Pos)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Parse reads a formula in Python syntax and returns its canonical expression.
//
// Precedence from loosest to tightest: "+ -", "* /", unary "+ -", then "**"
// (or "^") which is right-associative and binds tighter than a unary minus on
// its left, so -x**2 is -(x**2). Integer literals are exact; literals with a
// fraction or exponent are floats. The names pi and E are constants; any
// other identifier followed by "(" must be a known function.
func Parse(src string) (Expr, error) {
	p := &parser{lex: lexer{input: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, p.errorf(p.tok.pos, "empty expression")
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf(p.tok.pos, "unexpected %s %q", p.tok.kind, p.tok.text)
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return &ParseError{Input: p.lex.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k tokenKind) error {
	if p.tok.kind != k {
		return p.errorf(p.tok.pos, "expected %s, found %s", k, p.describe())
	}
	return p.advance()
}

func (p *parser) describe() string {
	if p.tok.kind == tokEOF {
		return p.tok.kind.String()
	}
	return fmt.Sprintf("%q", p.tok.text)
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op == tokMinus {
			left = Sub(left, right)
		} else {
			left = AddOf(left, right)
		}
	}
	return left, nil
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op.kind == tokStar {
			left = MulOf(left, right)
			continue
		}
		if n, ok := right.(*Num); ok && n.IsZero() && n.Exact() {
			return nil, p.errorf(op.pos, "division by zero")
		}
		left = Div(left, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.tok.kind {
	case tokMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(operand), nil
	case tokPlus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokPow {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.tok
	switch t.kind {
	case tokNumber:
		n, ok := parseNumber(t.text)
		if !ok {
			return nil, p.errorf(t.pos, "invalid number %q", t.text)
		}
		return n, p.advance()
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return e, p.expect(tokRParen)
	case tokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokLParen {
			return p.parseCall(t)
		}
		switch t.text {
		case "pi":
			return Pi, nil
		case "E":
			return E, nil
		}
		return S(t.text), nil
	case tokEOF:
		return nil, p.errorf(t.pos, "unexpected end of input")
	}
	return nil, p.errorf(t.pos, "unexpected %q", t.text)
}

// aliases maps accepted spellings to kernel function names.
var aliases = map[string]string{
	"ln":  "log",
	"Abs": "abs",
}

func (p *parser) parseCall(name token) (Expr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []Expr
	if p.tok.kind != tokRParen {
		for {
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	fn := name.text
	if alias, ok := aliases[fn]; ok {
		fn = alias
	}
	switch {
	case fn == "sqrt" && len(args) == 1:
		return SqrtOf(args[0]), nil
	case fn == "log" && len(args) == 2:
		return Div(LogOf(args[0]), LogOf(args[1])), nil
	case IsFunction(fn) && len(args) == 1:
		return FuncOf(fn, args[0]), nil
	case IsFunction(fn) || fn == "sqrt":
		return nil, p.errorf(name.pos, "%s takes one argument, got %d", name.text, len(args))
	}
	return nil, p.errorf(name.pos, "unknown function %q (known: %s)", name.text, strings.Join(Functions(), ", "))
}
