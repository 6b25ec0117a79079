package verify

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/pborges/logicmin/internal/expr"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

var ErrUnknown = errors.New("solver gave no answer")

// litMapping translates variable names and programs into literals of one
// shared circuit.
type litMapping struct {
	c     *logic.C
	names []string
	lits  map[string]z.Lit
}

func newLitMapping(names []string) *litMapping {
	d := &litMapping{
		c:     logic.NewCCap(4 * (len(names) + 1)),
		names: names,
		lits:  make(map[string]z.Lit, len(names)),
	}
	for _, n := range names {
		if _, ok := d.lits[n]; !ok {
			d.lits[n] = d.c.Lit()
		}
	}
	return d
}

func (d *litMapping) algebra() expr.Algebra[z.Lit] {
	return expr.Algebra[z.Lit]{
		Var: func(name string) (z.Lit, error) {
			m, ok := d.lits[name]
			if !ok {
				return z.LitNull, errors.Wrapf(expr.ErrUnboundVariable, "%q", name)
			}
			return m, nil
		},
		Const: func(v bool) z.Lit {
			if v {
				return d.c.T
			}
			return d.c.F
		},
		Not: func(m z.Lit) z.Lit { return m.Not() },
		Binary: func(op expr.Op, a, b z.Lit) z.Lit {
			switch op {
			case expr.OpAnd:
				return d.c.And(a, b)
			case expr.OpOr:
				return d.c.Or(a, b)
			case expr.OpImpl:
				return d.c.Implies(a, b)
			case expr.OpEquiv:
				return d.c.Xor(a, b).Not()
			}
			panic("verify: unexpected operator " + op.String())
		},
	}
}

// LitOf compiles p into the circuit and returns its output literal.
func (d *litMapping) LitOf(p *expr.Program) (z.Lit, error) {
	return expr.Reduce(p, d.algebra())
}

// Equivalent reports whether a and b agree on every assignment of names.
// It asks a SAT solver for an assignment satisfying a XOR b; when one
// exists the programs differ and the assignment, in names order, is
// returned as a witness.
func Equivalent(a, b *expr.Program, names []string) (bool, []bool, error) {
	d := newLitMapping(names)
	ma, err := d.LitOf(a)
	if err != nil {
		return false, nil, errors.Wrap(err, "left")
	}
	mb, err := d.LitOf(b)
	if err != nil {
		return false, nil, errors.Wrap(err, "right")
	}
	miter := d.c.Xor(ma, mb)

	g := gini.New()
	d.c.ToCnf(g)
	// the constant input is not constrained by the Tseitin clauses
	g.Add(d.c.T)
	g.Add(z.LitNull)
	g.Assume(miter)

	switch g.Solve() {
	case unsatisfiable:
		return true, nil, nil
	case satisfiable:
		witness := make([]bool, len(names))
		for i, n := range names {
			witness[i] = g.Value(d.lits[n])
		}
		return false, witness, nil
	}
	return false, nil, ErrUnknown
}

// Satisfiable reports whether some assignment of names makes p true and
// returns the first one the solver finds.
func Satisfiable(p *expr.Program, names []string) (bool, []bool, error) {
	d := newLitMapping(names)
	m, err := d.LitOf(p)
	if err != nil {
		return false, nil, err
	}
	g := gini.New()
	d.c.ToCnf(g)
	g.Add(d.c.T)
	g.Add(z.LitNull)
	g.Assume(m)
	switch g.Solve() {
	case unsatisfiable:
		return false, nil, nil
	case satisfiable:
		model := make([]bool, len(names))
		for i, n := range names {
			model[i] = g.Value(d.lits[n])
		}
		return true, model, nil
	}
	return false, nil, ErrUnknown
}
