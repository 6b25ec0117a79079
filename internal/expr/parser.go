package expr

import "strings"

// Compile parses src and returns its postfix program.
//
// Precedence, tightest first: NOT, AND, OR, implication (->), equivalence (~).
// Binary operators associate to the left.
func Compile(src string) (*Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyExpression
	}
	p := parser{lex: newLexer(src)}
	if err := p.parseExpr(); err != nil {
		return nil, err
	}
	if tok := p.lex.peek(); tok.kind != tokEOF {
		if tok.kind == tokRParen {
			return nil, syntaxErrorf(tok.pos, "unbalanced %q", tok.text)
		}
		return nil, syntaxErrorf(tok.pos, "unexpected token %q", tok.text)
	}
	return newProgram(src, p.code), nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	lex   *lexer
	code  []Instr
	depth int
}

func (p *parser) emit(in Instr) { p.code = append(p.code, in) }

func (p *parser) parseExpr() error { return p.parseEquiv() }

func (p *parser) parseEquiv() error {
	return p.parseBinary(tokEquiv, OpEquiv, p.parseImpl)
}

func (p *parser) parseImpl() error {
	return p.parseBinary(tokImpl, OpImpl, p.parseOr)
}

func (p *parser) parseOr() error {
	return p.parseBinary(tokOr, OpOr, p.parseAnd)
}

func (p *parser) parseAnd() error {
	return p.parseBinary(tokAnd, OpAnd, p.parseUnary)
}

func (p *parser) parseBinary(kind tokenKind, op Op, operand func() error) error {
	if err := operand(); err != nil {
		return err
	}
	for p.lex.peek().kind == kind {
		p.lex.next()
		if err := operand(); err != nil {
			return err
		}
		p.emit(Instr{Op: op})
	}
	return nil
}

func (p *parser) parseUnary() error {
	if p.lex.peek().kind == tokNot {
		p.lex.next()
		if err := p.parseUnary(); err != nil {
			return err
		}
		p.emit(Instr{Op: OpNot})
		return nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() error {
	tok := p.lex.next()
	switch tok.kind {
	case tokIdent:
		p.emit(Instr{Op: OpVar, Name: tok.text})
		return nil
	case tokConst:
		p.emit(Instr{Op: OpConst, Value: tok.text == "1"})
		return nil
	case tokLParen:
		p.depth++
		if err := p.parseExpr(); err != nil {
			return err
		}
		closing := p.lex.next()
		if closing.kind != tokRParen {
			if closing.kind == tokEOF {
				return syntaxErrorf(tok.pos, "unbalanced %q", tok.text)
			}
			return syntaxErrorf(closing.pos, "expected \")\", got %q", closing.text)
		}
		p.depth--
		return nil
	case tokEOF:
		return syntaxErrorf(tok.pos, "unexpected end of expression")
	case tokRParen:
		if p.depth == 0 {
			return syntaxErrorf(tok.pos, "unbalanced %q", tok.text)
		}
		return syntaxErrorf(tok.pos, "missing operand before %q", tok.text)
	case tokIllegal:
		return syntaxErrorf(tok.pos, "unknown token %q", tok.text)
	default:
		if tok.kind.isOperator() {
			return syntaxErrorf(tok.pos, "operator %q used as operand", tok.text)
		}
		return syntaxErrorf(tok.pos, "unexpected token %q", tok.text)
	}
}
