package logic

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Cover is a selection of implicants covering a set of canonical terms.
type Cover struct {
	// Implicants are the candidates, in canonical order.
	Implicants []Term
	// Essential indexes implicants that are the sole coverer of some term.
	Essential []int
	// Selected indexes every chosen implicant, essentials included,
	// in ascending order.
	Selected []int
}

// Terms returns the selected implicants.
func (c Cover) Terms() []Term {
	out := make([]Term, len(c.Selected))
	for i, idx := range c.Selected {
		out[i] = c.Implicants[idx]
	}
	return out
}

// EssentialTerms returns the essential implicants.
func (c Cover) EssentialTerms() []Term {
	out := make([]Term, len(c.Essential))
	for i, idx := range c.Essential {
		out[i] = c.Implicants[idx]
	}
	return out
}

// Literals counts the fixed positions over the selected implicants.
func (c Cover) Literals() int { return countLiterals(c.Terms()) }

// SelectCover picks implicants covering every one of terms. Implicants that
// are the only coverer of some term are taken first; any terms left are
// then covered greedily, each step taking the implicant that covers the
// most still uncovered terms, lowest index on ties. The greedy phase is a
// heuristic and does not guarantee a minimum cover.
//
// Every term must be covered by at least one implicant.
func SelectCover(implicants, terms []Term) Cover {
	return selectCover(implicants, terms, zap.NewNop())
}

func selectCover(implicants, terms []Term, log *zap.Logger) Cover {
	imps := append([]Term(nil), implicants...)
	SortTerms(imps)
	cover := Cover{Implicants: imps}

	targets := append([]Term(nil), terms...)
	SortTerms(targets)

	coverage := make(map[string][]int, len(targets))
	for _, t := range targets {
		for i, imp := range imps {
			if imp.Covers(t) {
				coverage[t.Key()] = append(coverage[t.Key()], i)
			}
		}
		if len(coverage[t.Key()]) == 0 {
			panic(fmt.Sprintf("logic: term %v is not covered by any implicant", t))
		}
	}

	uncovered := mapset.NewThreadUnsafeSet[string]()
	for _, t := range targets {
		uncovered.Add(t.Key())
	}
	selected := mapset.NewThreadUnsafeSet[int]()
	take := func(idx int) {
		if idx < 0 || idx >= len(imps) {
			panic(fmt.Sprintf("logic: implicant index %d out of range [0, %d)", idx, len(imps)))
		}
		selected.Add(idx)
		for _, t := range targets {
			if imps[idx].Covers(t) {
				uncovered.Remove(t.Key())
			}
		}
	}

	essential := mapset.NewThreadUnsafeSet[int]()
	for _, t := range targets {
		if owners := coverage[t.Key()]; len(owners) == 1 && !essential.Contains(owners[0]) {
			essential.Add(owners[0])
			take(owners[0])
		}
	}
	log.Debug("essential implicants",
		zap.Int("essential", essential.Cardinality()),
		zap.Int("uncovered", uncovered.Cardinality()))

	for uncovered.Cardinality() > 0 {
		best, bestCount := -1, 0
		for i, imp := range imps {
			if selected.Contains(i) {
				continue
			}
			count := 0
			for _, t := range targets {
				if uncovered.Contains(t.Key()) && imp.Covers(t) {
					count++
				}
			}
			if count > bestCount {
				best, bestCount = i, count
			}
		}
		if best < 0 {
			panic("logic: uncovered terms remain but no implicant covers them")
		}
		log.Debug("greedy pick", zap.Stringer("implicant", imps[best]), zap.Int("covers", bestCount))
		take(best)
	}

	cover.Essential = sortedInts(essential)
	cover.Selected = sortedInts(selected)
	return cover
}

func sortedInts(s mapset.Set[int]) []int {
	out := s.ToSlice()
	slices.Sort(out)
	return out
}

// Chart is the implicant-by-term incidence table of the calculus-table
// method: Marks[i][j] reports whether Implicants[i] covers Terms[j].
type Chart struct {
	Implicants []Term
	Terms      []Term
	Marks      [][]bool
}

// NewChart builds the coverage chart of implicants over terms, both in
// canonical order.
func NewChart(implicants, terms []Term) Chart {
	c := Chart{
		Implicants: append([]Term(nil), implicants...),
		Terms:      append([]Term(nil), terms...),
	}
	SortTerms(c.Implicants)
	SortTerms(c.Terms)
	c.Marks = make([][]bool, len(c.Implicants))
	for i, imp := range c.Implicants {
		c.Marks[i] = make([]bool, len(c.Terms))
		for j, t := range c.Terms {
			c.Marks[i][j] = imp.Covers(t)
		}
	}
	return c
}
