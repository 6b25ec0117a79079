package verify

import (
	"math/big"

	"github.com/dalzilio/rudd"
	"github.com/pkg/errors"

	"github.com/pborges/logicmin/internal/expr"
	"github.com/pborges/logicmin/internal/logic"
)

var ErrDiagram = errors.New("decision diagram failure")

// diagram builds reduced ordered BDDs over a fixed variable order; the
// variable at position i of names is BDD variable i.
type diagram struct {
	ithvar  func(int) rudd.Node
	nithvar func(int) rudd.Node
	not     func(rudd.Node) rudd.Node
	and     func(...rudd.Node) rudd.Node
	or      func(...rudd.Node) rudd.Node
	imp     func(rudd.Node, rudd.Node) rudd.Node
	equiv   func(rudd.Node, rudd.Node) rudd.Node
	equal   func(rudd.Node, rudd.Node) bool
	from    func(bool) rudd.Node
	count   func(rudd.Node) *big.Int
	errText func() string
	index   map[string]int
}

func newDiagram(names []string) (*diagram, error) {
	bdd, err := rudd.New(len(names), rudd.Nodesize(1<<12), rudd.Cachesize(1<<10))
	if err != nil {
		return nil, errors.Wrap(ErrDiagram, err.Error())
	}
	d := &diagram{
		ithvar:  bdd.Ithvar,
		nithvar: bdd.NIthvar,
		not:     bdd.Not,
		and:     bdd.And,
		or:      bdd.Or,
		imp:     bdd.Imp,
		equiv:   bdd.Equiv,
		equal:   bdd.Equal,
		from: func(v bool) rudd.Node {
			if v {
				return bdd.True()
			}
			return bdd.False()
		},
		count:   bdd.Satcount,
		errText: bdd.Error,
		index:   make(map[string]int, len(names)),
	}
	for i, n := range names {
		d.index[n] = i
	}
	return d, nil
}

func (d *diagram) check(n rudd.Node) (rudd.Node, error) {
	if msg := d.errText(); n == nil || msg != "" {
		return nil, errors.Wrap(ErrDiagram, msg)
	}
	return n, nil
}

func (d *diagram) build(p *expr.Program) (rudd.Node, error) {
	n, err := expr.Reduce(p, expr.Algebra[rudd.Node]{
		Var: func(name string) (rudd.Node, error) {
			i, ok := d.index[name]
			if !ok {
				return nil, errors.Wrapf(expr.ErrUnboundVariable, "%q", name)
			}
			return d.ithvar(i), nil
		},
		Const: d.from,
		Not:   d.not,
		Binary: func(op expr.Op, a, b rudd.Node) rudd.Node {
			switch op {
			case expr.OpAnd:
				return d.and(a, b)
			case expr.OpOr:
				return d.or(a, b)
			case expr.OpImpl:
				return d.imp(a, b)
			case expr.OpEquiv:
				return d.equiv(a, b)
			}
			panic("verify: unexpected operator " + op.String())
		},
	})
	if err != nil {
		return nil, err
	}
	return d.check(n)
}

// fromTable builds the disjunction of the minterm cubes of t.
func (d *diagram) fromTable(t logic.Table) (rudd.Node, error) {
	acc := d.from(false)
	for i := 0; i < t.Len(); i++ {
		if !t.Value(uint64(i)) {
			continue
		}
		cube := d.from(true)
		for pos, v := range t.Assignment(uint64(i)) {
			if v {
				cube = d.and(cube, d.ithvar(pos))
			} else {
				cube = d.and(cube, d.nithvar(pos))
			}
		}
		acc = d.or(acc, cube)
	}
	return d.check(acc)
}

// Count returns how many assignments of names satisfy p.
func Count(p *expr.Program, names []string) (*big.Int, error) {
	d, err := newDiagram(names)
	if err != nil {
		return nil, err
	}
	n, err := d.build(p)
	if err != nil {
		return nil, err
	}
	return d.count(n), nil
}

// SameFunction reports whether a and b denote the same function of names,
// comparing their canonical diagrams.
func SameFunction(a, b *expr.Program, names []string) (bool, error) {
	d, err := newDiagram(names)
	if err != nil {
		return false, err
	}
	na, err := d.build(a)
	if err != nil {
		return false, errors.Wrap(err, "left")
	}
	nb, err := d.build(b)
	if err != nil {
		return false, errors.Wrap(err, "right")
	}
	return d.equal(na, nb), nil
}

// Matches reports whether p computes the truth table t.
func Matches(p *expr.Program, t logic.Table) (bool, error) {
	d, err := newDiagram(t.Vars().Names())
	if err != nil {
		return false, err
	}
	np, err := d.build(p)
	if err != nil {
		return false, err
	}
	nt, err := d.fromTable(t)
	if err != nil {
		return false, err
	}
	return d.equal(np, nt), nil
}
