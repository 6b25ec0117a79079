package logic

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pborges/logicmin/internal/expr"
)

// Function is a Boolean function over an ordered variable set, fixed at
// construction together with its truth table.
type Function struct {
	expression string
	prog       *expr.Program
	table      Table
}

// NewFunction compiles expression over vars and builds its truth table.
// When values is non-nil it is used as the precomputed result column and
// expression only names the function.
func NewFunction(vars []string, expression string, values []bool) (*Function, error) {
	vs, err := NewVars(vars...)
	if err != nil {
		return nil, err
	}
	if values != nil {
		t, err := TableFromValues(vs, values)
		if err != nil {
			return nil, err
		}
		return &Function{expression: expression, table: t}, nil
	}
	prog, err := expr.Compile(expression)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}
	t, err := BuildTable(vs, prog)
	if err != nil {
		return nil, err
	}
	return &Function{expression: expression, prog: prog, table: t}, nil
}

// ParseFunction compiles expression over its own variables, sorted by name.
func ParseFunction(expression string) (*Function, error) {
	vars, err := expr.Variables(expression)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	return NewFunction(vars, expression, nil)
}

func (f *Function) Expression() string { return f.expression }

// Program is nil when the function was built from precomputed values.
func (f *Function) Program() *expr.Program { return f.prog }

func (f *Function) Table() Table { return f.table }

func (f *Function) Vars() Vars { return f.table.vars }

// Minterms are the full-width terms where the function is 1.
func (f *Function) Minterms() []Term { return f.table.Terms(true) }

// Maxterms are the full-width terms where the function is 0.
func (f *Function) Maxterms() []Term { return f.table.Terms(false) }

// SDNF renders the canonical disjunctive normal form.
func (f *Function) SDNF() string {
	terms := f.Minterms()
	if len(terms) == 0 {
		return "0"
	}
	clauses := make([]string, len(terms))
	for i, t := range terms {
		clauses[i] = "(" + productText(f.Vars(), t) + ")"
	}
	return strings.Join(clauses, " | ")
}

// SCNF renders the canonical conjunctive normal form.
func (f *Function) SCNF() string {
	terms := f.Maxterms()
	if len(terms) == 0 {
		return "1"
	}
	clauses := make([]string, len(terms))
	for i, t := range terms {
		clauses[i] = "(" + sumText(f.Vars(), t) + ")"
	}
	return strings.Join(clauses, " & ")
}

// NumericDNF lists the indices of the minterms, e.g. "(1, 3, 5) |".
func (f *Function) NumericDNF() string {
	return numericForm(f.table, true) + " |"
}

// NumericCNF lists the indices of the maxterms, e.g. "(0, 2) &".
func (f *Function) NumericCNF() string {
	return numericForm(f.table, false) + " &"
}

func numericForm(t Table, target bool) string {
	var idx []string
	for i, v := range t.values {
		if v == target {
			idx = append(idx, strconv.Itoa(i))
		}
	}
	return "(" + strings.Join(idx, ", ") + ")"
}

// Index reads the result column, row 0 first, as a binary number.
func (f *Function) Index() *big.Int {
	n := new(big.Int)
	for _, v := range f.table.values {
		n.Lsh(n, 1)
		if v {
			n.SetBit(n, 0, 1)
		}
	}
	return n
}
