package symbolic

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokComma
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokLParen:
		return `"("`
	case tokRParen:
		return `")"`
	case tokComma:
		return `","`
	}
	return "operator"
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer splits a formula into tokens. "**" and "^" both lex as tokPow.
type lexer struct {
	input string
	pos   int
}

func (l *lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	c := l.peekByte(0)
	single := func(k tokenKind) (token, error) {
		l.pos++
		return token{kind: k, text: l.input[start:l.pos], pos: start}, nil
	}
	switch {
	case l.pos >= len(l.input):
		return token{kind: tokEOF, pos: start}, nil
	case c == '+':
		return single(tokPlus)
	case c == '-':
		return single(tokMinus)
	case c == '*' && l.peekByte(1) == '*':
		l.pos += 2
		return token{kind: tokPow, text: "**", pos: start}, nil
	case c == '*':
		return single(tokStar)
	case c == '/':
		return single(tokSlash)
	case c == '^':
		return single(tokPow)
	case c == '(':
		return single(tokLParen)
	case c == ')':
		return single(tokRParen)
	case c == ',':
		return single(tokComma)
	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
		return l.number(), nil
	case isIdentStart(c):
		for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.input[start:l.pos], pos: start}, nil
	}
	return token{}, &ParseError{Input: l.input, Pos: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

// number scans digits, an optional fraction and an optional exponent. An "e"
// not followed by digits is left for the next token.
func (l *lexer) number() token {
	start := l.pos
	for isDigit(l.peekByte(0)) {
		l.pos++
	}
	if l.peekByte(0) == '.' {
		l.pos++
		for isDigit(l.peekByte(0)) {
			l.pos++
		}
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		off := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			off = 2
		}
		if isDigit(l.peekByte(off)) {
			l.pos += off
			for isDigit(l.peekByte(0)) {
				l.pos++
			}
		}
	}
	return token{kind: tokNumber, text: l.input[start:l.pos], pos: start}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c|0x20 >= 'a' && c|0x20 <= 'z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

// IsIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}
