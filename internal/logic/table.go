package logic

import (
	"github.com/pkg/errors"

	"github.com/pborges/logicmin/internal/expr"
)

// Table is the truth table of a function over a Vars. Row i holds the
// result for the assignment whose binary digits, most significant first,
// are the values of the variables in order. A Table is immutable.
type Table struct {
	vars   Vars
	values []bool
}

// BuildTable evaluates p once per assignment of vars.
func BuildTable(vars Vars, p *expr.Program) (Table, error) {
	if vars.Len() == 0 {
		return Table{}, ErrNoVariables
	}
	for _, name := range p.Vars() {
		if _, ok := vars.Index(name); !ok {
			return Table{}, errors.Wrapf(ErrUnknownVariable, "%q", name)
		}
	}
	bound, err := p.Bind(vars.names)
	if err != nil {
		return Table{}, err
	}
	n := vars.Len()
	rows := uint64(1) << n
	values := make([]bool, rows)
	assign := make([]bool, n)
	for i := uint64(0); i < rows; i++ {
		fillAssignment(assign, i)
		values[i] = bound.Eval(assign)
	}
	return Table{vars: vars, values: values}, nil
}

// TableFromValues wraps a precomputed truth vector of length 2^n.
func TableFromValues(vars Vars, values []bool) (Table, error) {
	if vars.Len() == 0 {
		return Table{}, ErrNoVariables
	}
	if want := 1 << vars.Len(); len(values) != want {
		return Table{}, errors.Wrapf(ErrTableShape, "got %d values, want %d", len(values), want)
	}
	return Table{vars: vars, values: append([]bool(nil), values...)}, nil
}

func fillAssignment(dst []bool, i uint64) {
	n := len(dst)
	for pos := range dst {
		dst[pos] = i&(uint64(1)<<(n-1-pos)) != 0
	}
}

func (t Table) Vars() Vars { return t.vars }

// Len is the number of rows, 2^n.
func (t Table) Len() int { return len(t.values) }

func (t Table) Value(i uint64) bool { return t.values[i] }

// Values returns the result column.
func (t Table) Values() []bool { return append([]bool(nil), t.values...) }

// Assignment returns the variable values of row i.
func (t Table) Assignment(i uint64) []bool {
	a := make([]bool, t.vars.Len())
	fillAssignment(a, i)
	return a
}

// Column returns the ordered values of variable pos across all rows.
func (t Table) Column(pos int) []bool {
	n := t.vars.Len()
	col := make([]bool, len(t.values))
	for i := range col {
		col[i] = uint64(i)&(uint64(1)<<(n-1-pos)) != 0
	}
	return col
}

// Count returns how many rows evaluate to v.
func (t Table) Count(v bool) int {
	n := 0
	for _, x := range t.values {
		if x == v {
			n++
		}
	}
	return n
}

func (t Table) IsTautology() bool { return t.Count(false) == 0 }

func (t Table) IsContradiction() bool { return t.Count(true) == 0 }

// Terms returns the full-width terms of all rows evaluating to target,
// in ascending index order.
func (t Table) Terms(target bool) []Term {
	n := t.vars.Len()
	var out []Term
	for i, v := range t.values {
		if v == target {
			out = append(out, TermOf(uint64(i), n))
		}
	}
	return out
}
