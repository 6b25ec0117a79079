package logic

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNoVariables       = errors.New("no variables")
	ErrDuplicateVariable = errors.New("duplicate variable")
	ErrTooManyVariables  = errors.New("too many variables")
	ErrUnknownVariable   = errors.New("variable not in variable set")
	ErrTableShape        = errors.New("truth values do not match variable count")
)

// MaxVars bounds the truth table at 2^MaxVars rows.
const MaxVars = 20

// Vars is an ordered set of variable names. Position 0 is the most
// significant bit of every assignment index and term.
type Vars struct {
	names []string
	index map[string]int
}

func NewVars(names ...string) (Vars, error) {
	if len(names) == 0 {
		return Vars{}, ErrNoVariables
	}
	if len(names) > MaxVars {
		return Vars{}, errors.Wrapf(ErrTooManyVariables, "%d > %d", len(names), MaxVars)
	}
	v := Vars{names: append([]string(nil), names...), index: make(map[string]int, len(names))}
	for i, n := range names {
		if _, dup := v.index[n]; dup {
			return Vars{}, errors.Wrapf(ErrDuplicateVariable, "%q", n)
		}
		v.index[n] = i
	}
	return v, nil
}

// MustVars is like NewVars but panics on error.
func MustVars(names ...string) Vars {
	v, err := NewVars(names...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Vars) Len() int { return len(v.names) }

func (v Vars) Name(i int) string { return v.names[i] }

func (v Vars) Names() []string { return append([]string(nil), v.names...) }

func (v Vars) Index(name string) (int, bool) {
	i, ok := v.index[name]
	return i, ok
}

func (v Vars) String() string { return strings.Join(v.names, ", ") }
