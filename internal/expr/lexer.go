package expr

import "unicode"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokConst
	tokNot
	tokAnd
	tokOr
	tokImpl
	tokEquiv
	tokLParen
	tokRParen
	tokIllegal
)

func (k tokenKind) isOperator() bool {
	switch k {
	case tokNot, tokAnd, tokOr, tokImpl, tokEquiv:
		return true
	}
	return false
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	s string
	i int
}

func newLexer(s string) *lexer { return &lexer{s: s} }

func (l *lexer) peek() token {
	pos := l.i
	tok := l.next()
	l.i = pos
	return tok
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	start := l.i
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: start}
	}
	ch := l.s[l.i]
	switch ch {
	case '!':
		l.i++
		return token{kind: tokNot, text: "!", pos: start}
	case '&':
		l.i++
		return token{kind: tokAnd, text: "&", pos: start}
	case '|', '#':
		l.i++
		return token{kind: tokOr, text: string(ch), pos: start}
	case '~':
		l.i++
		return token{kind: tokEquiv, text: "~", pos: start}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	case '-':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '>' {
			l.i += 2
			return token{kind: tokImpl, text: "->", pos: start}
		}
	}

	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentPart(l.s[l.i]) {
			l.i++
		}
		text := l.s[start:l.i]
		switch text {
		case "NOT":
			return token{kind: tokNot, text: text, pos: start}
		case "AND":
			return token{kind: tokAnd, text: text, pos: start}
		case "OR":
			return token{kind: tokOr, text: text, pos: start}
		}
		return token{kind: tokIdent, text: text, pos: start}
	}
	if isDigit(ch) {
		l.i++
		for l.i < len(l.s) && isIdentPart(l.s[l.i]) {
			l.i++
		}
		text := l.s[start:l.i]
		if text == "0" || text == "1" {
			return token{kind: tokConst, text: text, pos: start}
		}
		return token{kind: tokIllegal, text: text, pos: start}
	}

	l.i++
	return token{kind: tokIllegal, text: string(ch), pos: start}
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
