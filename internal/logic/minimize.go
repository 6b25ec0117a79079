package logic

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Form selects which canonical terms are minimized.
type Form int

const (
	// DNF covers the minterms with products ORed together.
	DNF Form = iota
	// CNF covers the maxterms with sums ANDed together.
	CNF
)

func (f Form) String() string {
	switch f {
	case DNF:
		return "dnf"
	case CNF:
		return "cnf"
	}
	return fmt.Sprintf("Form(%d)", int(f))
}

// target is the function value the form's terms carry.
func (f Form) target() bool { return f == DNF }

// identity is the rendering of a form with no clauses.
func (f Form) identity() string {
	if f == CNF {
		return "1"
	}
	return "0"
}

func (f Form) joiner() string {
	if f == CNF {
		return " & "
	}
	return " | "
}

func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dnf", "sdnf", "sop":
		return DNF, nil
	case "cnf", "scnf", "pos":
		return CNF, nil
	}
	return DNF, errors.Errorf("unknown form %q", s)
}

// Method selects how prime implicants are found.
type Method int

const (
	// Calculus finds prime implicants by repeated term combination.
	Calculus Method = iota
	// Grid reads them off a Karnaugh map.
	Grid
)

func (m Method) String() string {
	switch m {
	case Calculus:
		return "calculus"
	case Grid:
		return "grid"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "calculus", "qm":
		return Calculus, nil
	case "grid", "kmap", "karnaugh":
		return Grid, nil
	}
	return Calculus, errors.Errorf("unknown method %q", s)
}

type config struct {
	form   Form
	method Method
	values []bool
	log    *zap.Logger
}

type Option func(*config)

func WithForm(f Form) Option { return func(c *config) { c.form = f } }

func WithMethod(m Method) Option { return func(c *config) { c.method = m } }

// WithValues supplies a precomputed truth vector instead of evaluating
// the expression. Only used by Minimize.
func WithValues(v []bool) Option { return func(c *config) { c.values = v } }

func WithLogger(l *zap.Logger) Option { return func(c *config) { c.log = l } }

func newConfig(opts []Option) config {
	c := config{form: DNF, method: Calculus, log: zap.NewNop()}
	for _, o := range opts {
		o(&c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Result is the outcome of one minimization.
type Result struct {
	Function *Function
	Form     Form
	// Requested is the method asked for; Method the one that ran, which
	// differs when a grid could not be built for the variable count.
	Requested Method
	Method    Method
	// Canonical holds the minterms (DNF) or maxterms (CNF).
	Canonical []Term
	Primes    []Term
	// Rounds holds the terms merged in each combining round; empty for
	// the grid method.
	Rounds [][]Term
	Cover  Cover
	// Constant is set when the function is a tautology or contradiction
	// and no implicants were computed.
	Constant bool
	// Expression is the rendered minimized form.
	Expression string
}

// Implicants returns the selected implicants in canonical order.
func (r *Result) Implicants() []Term { return r.Cover.Terms() }

// Literals counts literal occurrences in the minimized form.
func (r *Result) Literals() int { return r.Cover.Literals() }

// Simplified renders every prime implicant, before selection.
func (r *Result) Simplified() string {
	if r.Constant {
		return r.Expression
	}
	return Render(r.Function.Vars(), r.Form, r.Primes)
}

// Minimize runs the configured pipeline over f. It keeps no state between
// calls, so one Function can be minimized from several goroutines.
func (f *Function) Minimize(opts ...Option) *Result {
	c := newConfig(opts)
	res := &Result{
		Function:  f,
		Form:      c.form,
		Requested: c.method,
		Method:    c.method,
		Canonical: f.table.Terms(c.form.target()),
	}

	switch {
	case f.table.IsTautology():
		res.Constant, res.Expression = true, "1"
		return res
	case f.table.IsContradiction():
		res.Constant, res.Expression = true, "0"
		return res
	}

	if c.method == Grid {
		g, err := NewKMap(f.table)
		if err != nil {
			c.log.Debug("falling back to calculus method", zap.Error(err))
			res.Method = Calculus
		} else {
			res.Primes = g.primeImplicants(c.form.target(), c.log)
		}
	}
	if res.Method == Calculus {
		res.Primes, res.Rounds = primeImplicants(res.Canonical, c.log)
	}

	res.Cover = selectCover(res.Primes, res.Canonical, c.log)
	res.Expression = Render(f.Vars(), c.form, res.Cover.Terms())
	c.log.Debug("minimized",
		zap.Stringer("form", c.form),
		zap.Stringer("method", res.Method),
		zap.Int("primes", len(res.Primes)),
		zap.Int("selected", len(res.Cover.Selected)),
		zap.String("result", res.Expression))
	return res
}

// Minimize builds the function of expression over vars and minimizes it.
// WithValues substitutes a precomputed truth vector for evaluation.
func Minimize(vars []string, expression string, opts ...Option) (*Result, error) {
	c := newConfig(opts)
	f, err := NewFunction(vars, expression, c.values)
	if err != nil {
		return nil, err
	}
	return f.Minimize(opts...), nil
}

// MinimizeDNF returns the minimized disjunctive form of expression.
func MinimizeDNF(vars []string, expression string, opts ...Option) (string, error) {
	r, err := Minimize(vars, expression, append(opts, WithForm(DNF))...)
	if err != nil {
		return "", err
	}
	return r.Expression, nil
}

// MinimizeCNF returns the minimized conjunctive form of expression.
func MinimizeCNF(vars []string, expression string, opts ...Option) (string, error) {
	r, err := Minimize(vars, expression, append(opts, WithForm(CNF))...)
	if err != nil {
		return "", err
	}
	return r.Expression, nil
}
