package logic

import (
	"fmt"
	"math/bits"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrUnsupportedVariableCount = errors.New("karnaugh map needs 2 to 5 variables")

const (
	MinGridVars = 2
	MaxGridVars = 5
)

// KMap is a Karnaugh map of a truth table. The first n/2 variables index
// the rows and the rest the columns, each axis in reflected Gray-code
// order so that adjacent cells differ in one variable.
type KMap struct {
	table   Table
	rowBits int
	colBits int
	rows    []uint64
	cols    []uint64
}

func NewKMap(t Table) (*KMap, error) {
	n := t.vars.Len()
	if n < MinGridVars || n > MaxGridVars {
		return nil, errors.Wrapf(ErrUnsupportedVariableCount, "got %d", n)
	}
	rowBits := n / 2
	colBits := n - rowBits
	return &KMap{
		table:   t,
		rowBits: rowBits,
		colBits: colBits,
		rows:    GrayCode(rowBits),
		cols:    GrayCode(colBits),
	}, nil
}

// GrayCode returns the 2^bits reflected Gray code sequence.
func GrayCode(bits int) []uint64 {
	out := make([]uint64, 1<<bits)
	for i := range out {
		out[i] = uint64(i) ^ uint64(i)>>1
	}
	return out
}

func (g *KMap) Rows() int { return len(g.rows) }

func (g *KMap) Cols() int { return len(g.cols) }

// Index returns the assignment index shown at row r, column c.
func (g *KMap) Index(r, c int) uint64 {
	return g.rows[r]<<g.colBits | g.cols[c]
}

func (g *KMap) Cell(r, c int) bool { return g.table.Value(g.Index(r, c)) }

// RowVars names the variables indexing the rows.
func (g *KMap) RowVars() []string { return g.table.vars.names[:g.rowBits] }

// ColVars names the variables indexing the columns.
func (g *KMap) ColVars() []string { return g.table.vars.names[g.rowBits:] }

func (g *KMap) RowLabels() []string { return grayLabels(g.rows, g.rowBits) }

func (g *KMap) ColLabels() []string { return grayLabels(g.cols, g.colBits) }

func grayLabels(codes []uint64, width int) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = fmt.Sprintf("%0*b", width, c)
	}
	return out
}

// PrimeImplicants enumerates the maximal groups of cells holding target.
// Groups are tried from largest to smallest: for each choice of k free
// variables and each setting of the fixed ones, in Gray-code order, the
// group is valid when all its 2^k cells hold target. A valid group inside
// a group already kept is redundant and skipped.
func (g *KMap) PrimeImplicants(target bool) []Term {
	return g.primeImplicants(target, zap.NewNop())
}

func (g *KMap) primeImplicants(target bool, log *zap.Logger) []Term {
	n := g.table.vars.Len()
	var kept []Term
	for k := n; k >= 0; k-- {
		for _, free := range freeMasks(n, k) {
			for _, fixed := range GrayCode(n - k) {
				cand := groupTerm(n, free, fixed)
				if !g.uniform(cand, target) || coveredByAny(kept, cand) {
					continue
				}
				kept = append(kept, cand)
			}
		}
		log.Debug("grid groups", zap.Int("size", 1<<k), zap.Int("kept", len(kept)))
	}
	SortTerms(kept)
	return kept
}

// freeMasks lists the n-bit masks with k bits set, ascending.
func freeMasks(n, k int) []uint64 {
	var out []uint64
	for m := uint64(0); m < uint64(1)<<n; m++ {
		if bits.OnesCount64(m) == k {
			out = append(out, m)
		}
	}
	return out
}

// groupTerm builds the term whose don't-cares are the set bits of free
// (bit n-1 is position 0) and whose fixed positions take the bits of
// fixed, most significant first.
func groupTerm(n int, free, fixed uint64) Term {
	t := make(Term, n)
	fixedCount := n - bits.OnesCount64(free)
	j := 0
	for pos := 0; pos < n; pos++ {
		if free&(uint64(1)<<(n-1-pos)) != 0 {
			t[pos] = DontCare
			continue
		}
		t[pos] = bitOf(fixed&(uint64(1)<<(fixedCount-1-j)) != 0)
		j++
	}
	return t
}

func (g *KMap) uniform(t Term, target bool) bool {
	for _, m := range t.Members() {
		if g.table.Value(m) != target {
			return false
		}
	}
	return true
}

func coveredByAny(kept []Term, t Term) bool {
	for _, k := range kept {
		if k.Covers(t) {
			return true
		}
	}
	return false
}
