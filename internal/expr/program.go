package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Op uint8

const (
	OpVar Op = iota
	OpConst
	OpNot
	OpAnd
	OpOr
	OpImpl
	OpEquiv
)

func (o Op) String() string {
	switch o {
	case OpVar:
		return "var"
	case OpConst:
		return "const"
	case OpNot:
		return "!"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpImpl:
		return "->"
	case OpEquiv:
		return "~"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// precedence of the operator; operands bind tightest.
func (o Op) precedence() int {
	switch o {
	case OpEquiv:
		return 1
	case OpImpl:
		return 2
	case OpOr:
		return 3
	case OpAnd:
		return 4
	}
	return 5
}

// Apply computes a binary operator over two values.
func (o Op) Apply(a, b bool) bool {
	switch o {
	case OpAnd:
		return a && b
	case OpOr:
		return a || b
	case OpImpl:
		return !a || b
	case OpEquiv:
		return a == b
	}
	panic(fmt.Sprintf("expr: %v is not a binary operator", o))
}

// Instr is one postfix instruction.
type Instr struct {
	Op    Op
	Name  string // OpVar only
	Value bool   // OpConst only
}

// Program is a compiled expression in postfix order. It is immutable.
type Program struct {
	src   string
	code  []Instr
	vars  []string
	steps []string
}

func newProgram(src string, code []Instr) *Program {
	p := &Program{src: src, code: code}
	seen := make(map[string]bool)
	for _, in := range code {
		if in.Op == OpVar && !seen[in.Name] {
			seen[in.Name] = true
			p.vars = append(p.vars, in.Name)
		}
	}
	p.steps = stepLabels(code)
	return p
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.src }

// Code returns a copy of the postfix instructions.
func (p *Program) Code() []Instr { return append([]Instr(nil), p.code...) }

// Vars returns the variable names in order of first appearance.
func (p *Program) Vars() []string { return append([]string(nil), p.vars...) }

// Steps returns one label per operator application, in evaluation order.
func (p *Program) Steps() []string { return append([]string(nil), p.steps...) }

// Postfix renders the program in reverse Polish notation.
func (p *Program) Postfix() string {
	parts := make([]string, len(p.code))
	for i, in := range p.code {
		switch in.Op {
		case OpVar:
			parts[i] = in.Name
		case OpConst:
			parts[i] = constText(in.Value)
		default:
			parts[i] = in.Op.String()
		}
	}
	return strings.Join(parts, " ")
}

// String renders the program as infix text with minimal parentheses.
func (p *Program) String() string {
	l, _ := Reduce(p, labelAlgebra(nil))
	return l.text
}

// Variables compiles src and returns its variable names sorted.
func Variables(src string) ([]string, error) {
	p, err := Compile(src)
	if err != nil {
		return nil, err
	}
	vars := p.Vars()
	sort.Strings(vars)
	return vars, nil
}

// Env resolves a variable name to its value.
type Env func(name string) (bool, bool)

// MapEnv binds names from m.
func MapEnv(m map[string]bool) Env {
	return func(name string) (bool, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Eval evaluates the program against env with an explicit value stack.
func (p *Program) Eval(env Env) (bool, error) {
	v, _, err := p.run(env, false)
	return v, err
}

// Trace evaluates the program and also returns the value produced by each
// operator application, aligned with Steps.
func (p *Program) Trace(env Env) (bool, []bool, error) {
	return p.run(env, true)
}

func (p *Program) run(env Env, trace bool) (bool, []bool, error) {
	stack := make([]bool, 0, len(p.code))
	var steps []bool
	if trace {
		steps = make([]bool, 0, len(p.steps))
	}
	for _, in := range p.code {
		switch in.Op {
		case OpVar:
			v, ok := env(in.Name)
			if !ok {
				return false, nil, errors.Wrapf(ErrUnboundVariable, "%q", in.Name)
			}
			stack = append(stack, v)
			continue
		case OpConst:
			stack = append(stack, in.Value)
			continue
		case OpNot:
			stack[len(stack)-1] = !stack[len(stack)-1]
		default:
			n := len(stack)
			stack[n-2] = in.Op.Apply(stack[n-2], stack[n-1])
			stack = stack[:n-1]
		}
		if trace {
			steps = append(steps, stack[len(stack)-1])
		}
	}
	if len(stack) != 1 {
		panic(fmt.Sprintf("expr: stack depth %d after evaluating %q", len(stack), p.src))
	}
	return stack[0], steps, nil
}

// Bind resolves every variable of p to a position in names, so the result
// can be evaluated against positional assignments.
func (p *Program) Bind(names []string) (*Bound, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	b := &Bound{p: p, slots: make([]int, len(p.code))}
	for i, in := range p.code {
		if in.Op != OpVar {
			continue
		}
		slot, ok := index[in.Name]
		if !ok {
			return nil, errors.Wrapf(ErrUnboundVariable, "%q", in.Name)
		}
		b.slots[i] = slot
	}
	return b, nil
}

// Bound is a Program whose variables were resolved to assignment positions.
type Bound struct {
	p     *Program
	slots []int
	stack []bool
}

// Eval evaluates against assign, indexed like the names given to Bind.
// A Bound reuses its stack and must not be shared between goroutines.
func (b *Bound) Eval(assign []bool) bool {
	stack := b.stack[:0]
	for i, in := range b.p.code {
		switch in.Op {
		case OpVar:
			stack = append(stack, assign[b.slots[i]])
		case OpConst:
			stack = append(stack, in.Value)
		case OpNot:
			stack[len(stack)-1] = !stack[len(stack)-1]
		default:
			n := len(stack)
			stack[n-2] = in.Op.Apply(stack[n-2], stack[n-1])
			stack = stack[:n-1]
		}
	}
	b.stack = stack
	return stack[0]
}

// Algebra interprets the postfix operations of a Program over T.
type Algebra[T any] struct {
	Var    func(name string) (T, error)
	Const  func(v bool) T
	Not    func(x T) T
	Binary func(op Op, a, b T) T
}

// Reduce folds p bottom-up through alg.
func Reduce[T any](p *Program, alg Algebra[T]) (T, error) {
	var zero T
	stack := make([]T, 0, len(p.code))
	for _, in := range p.code {
		switch in.Op {
		case OpVar:
			v, err := alg.Var(in.Name)
			if err != nil {
				return zero, err
			}
			stack = append(stack, v)
		case OpConst:
			stack = append(stack, alg.Const(in.Value))
		case OpNot:
			stack[len(stack)-1] = alg.Not(stack[len(stack)-1])
		default:
			n := len(stack)
			stack[n-2] = alg.Binary(in.Op, stack[n-2], stack[n-1])
			stack = stack[:n-1]
		}
	}
	return stack[0], nil
}

type label struct {
	text string
	prec int
}

// labelAlgebra renders infix text; when steps is non-nil every operator
// result is appended to it.
func labelAlgebra(steps *[]string) Algebra[label] {
	record := func(l label) label {
		if steps != nil {
			*steps = append(*steps, l.text)
		}
		return l
	}
	return Algebra[label]{
		Var:   func(name string) (label, error) { return label{text: name, prec: 5}, nil },
		Const: func(v bool) label { return label{text: constText(v), prec: 5} },
		Not: func(x label) label {
			return record(label{text: "!" + wrap(x, x.prec < 5), prec: 5})
		},
		Binary: func(op Op, a, b label) label {
			prec := op.precedence()
			text := wrap(a, a.prec < prec) + " " + op.String() + " " + wrap(b, b.prec <= prec)
			return record(label{text: text, prec: prec})
		},
	}
}

func stepLabels(code []Instr) []string {
	var steps []string
	_, _ = Reduce(&Program{code: code}, labelAlgebra(&steps))
	return steps
}

func wrap(l label, paren bool) string {
	if paren {
		return "(" + l.text + ")"
	}
	return l.text
}

func constText(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
