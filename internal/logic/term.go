package logic

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Bit is one position of a Term.
type Bit uint8

const (
	Zero Bit = iota
	One
	DontCare
)

func (b Bit) String() string {
	switch b {
	case Zero:
		return "0"
	case One:
		return "1"
	case DontCare:
		return "-"
	}
	return fmt.Sprintf("Bit(%d)", uint8(b))
}

func bitOf(v bool) Bit {
	if v {
		return One
	}
	return Zero
}

// Term is a product (or, for maxterms, a sum) over the variables of a Vars,
// position 0 being the most significant variable.
type Term []Bit

// TermOf returns the full-width term for assignment index i over n variables.
func TermOf(i uint64, n int) Term {
	t := make(Term, n)
	for pos := 0; pos < n; pos++ {
		t[pos] = bitOf(i&(uint64(1)<<(n-1-pos)) != 0)
	}
	return t
}

// ParseTerm reads a term written with 0, 1 and - (or _) characters.
func ParseTerm(s string) (Term, error) {
	t := make(Term, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			t[i] = Zero
		case '1':
			t[i] = One
		case '-', '_':
			t[i] = DontCare
		default:
			return nil, errors.Errorf("invalid term character %q", s[i])
		}
	}
	return t, nil
}

// MustParseTerm is like ParseTerm but panics on error.
func MustParseTerm(s string) Term {
	t, err := ParseTerm(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Term) String() string {
	var sb strings.Builder
	sb.Grow(len(t))
	for _, b := range t {
		sb.WriteString(b.String())
	}
	return sb.String()
}

// Key is a comparable identity for t, usable in sets and maps.
func (t Term) Key() string { return t.String() }

func (t Term) Equal(o Term) bool { return slices.Equal(t, o) }

// DontCares counts the don't-care positions.
func (t Term) DontCares() int {
	n := 0
	for _, b := range t {
		if b == DontCare {
			n++
		}
	}
	return n
}

// Literals counts the fixed positions.
func (t Term) Literals() int { return len(t) - t.DontCares() }

// Covers reports whether every fixed position of t matches o.
func (t Term) Covers(o Term) bool {
	if len(t) != len(o) {
		return false
	}
	for i, b := range t {
		switch b {
		case DontCare:
			continue
		case Zero, One:
			if o[i] != b {
				return false
			}
		}
	}
	return true
}

// Combine merges two terms that differ in exactly one fixed position and
// agree everywhere else, don't-care placement included. The differing
// position becomes a don't-care. Neither input is modified.
func (t Term) Combine(o Term) (Term, bool) {
	if len(t) != len(o) {
		return nil, false
	}
	diff := -1
	for i := range t {
		a, b := t[i], o[i]
		if a == b {
			continue
		}
		switch {
		case a == DontCare || b == DontCare:
			return nil, false
		case diff >= 0:
			return nil, false
		default:
			diff = i
		}
	}
	if diff < 0 {
		return nil, false
	}
	out := slices.Clone(t)
	out[diff] = DontCare
	return out, true
}

// Members lists the assignment indices covered by t in ascending order.
func (t Term) Members() []uint64 {
	n := len(t)
	var base uint64
	var free []int
	for pos, b := range t {
		bit := uint64(1) << (n - 1 - pos)
		switch b {
		case One:
			base |= bit
		case DontCare:
			free = append(free, n-1-pos)
		case Zero:
		}
	}
	out := make([]uint64, 0, 1<<len(free))
	for combo := uint64(0); combo < uint64(1)<<len(free); combo++ {
		m := base
		// free holds bit numbers from most significant down, so the last
		// entry of free takes the lowest bit of combo.
		for j, bit := range free {
			if combo&(uint64(1)<<(len(free)-1-j)) != 0 {
				m |= uint64(1) << bit
			}
		}
		out = append(out, m)
	}
	return out
}

// Index returns the assignment index of a term without don't-cares.
func (t Term) Index() (uint64, bool) {
	var idx uint64
	for _, b := range t {
		idx <<= 1
		switch b {
		case One:
			idx |= 1
		case DontCare:
			return 0, false
		case Zero:
		}
	}
	return idx, true
}

// compareTerms orders terms by their textual form, where '-' sorts before
// '0' and '0' before '1'.
func compareTerms(a, b Term) int {
	return strings.Compare(a.Key(), b.Key())
}

// SortTerms sorts ts in place in canonical order.
func SortTerms(ts []Term) {
	slices.SortFunc(ts, compareTerms)
}

// countLiterals sums the fixed positions of ts.
func countLiterals(ts []Term) int {
	n := 0
	for _, t := range ts {
		n += t.Literals()
	}
	return n
}
