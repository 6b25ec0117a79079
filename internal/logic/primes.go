package logic

import (
	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

// PrimeImplicants runs the Quine-McCluskey merge phase over terms and
// returns the prime implicants in canonical order.
func PrimeImplicants(terms []Term) []Term {
	primes, _ := primeImplicants(terms, zap.NewNop())
	return primes
}

// PrimeImplicantsTrace is like PrimeImplicants but also returns the terms
// produced by each combining round.
func PrimeImplicantsTrace(terms []Term) ([]Term, [][]Term) {
	return primeImplicants(terms, zap.NewNop())
}

// primeImplicants compares every pair of the working set each round. A pair
// differing in exactly one fixed position yields a merged term for the next
// round and marks both as used; unused terms of every round are prime.
// Sets are keyed by term value, so the outcome does not depend on the order
// pairs are visited in.
func primeImplicants(terms []Term, log *zap.Logger) ([]Term, [][]Term) {
	byKey := make(map[string]Term)
	current := uniqueTerms(terms, byKey)
	primes := mapset.NewThreadUnsafeSet[string]()
	var rounds [][]Term

	for round := 1; len(current) > 0; round++ {
		merged := mapset.NewThreadUnsafeSet[string]()
		used := mapset.NewThreadUnsafeSet[string]()
		for i := 0; i < len(current); i++ {
			for j := i + 1; j < len(current); j++ {
				m, ok := current[i].Combine(current[j])
				if !ok {
					continue
				}
				if merged.Add(m.Key()) {
					byKey[m.Key()] = m
				}
				used.Add(current[i].Key())
				used.Add(current[j].Key())
			}
		}
		for _, t := range current {
			if !used.Contains(t.Key()) {
				primes.Add(t.Key())
			}
		}
		log.Debug("combine round",
			zap.Int("round", round),
			zap.Int("terms", len(current)),
			zap.Int("merged", merged.Cardinality()),
			zap.Int("primes", primes.Cardinality()))

		current = termsOf(merged, byKey)
		if len(current) > 0 {
			rounds = append(rounds, current)
		}
	}
	return termsOf(primes, byKey), rounds
}

func uniqueTerms(terms []Term, byKey map[string]Term) []Term {
	keys := mapset.NewThreadUnsafeSet[string]()
	for _, t := range terms {
		if keys.Add(t.Key()) {
			byKey[t.Key()] = t
		}
	}
	return termsOf(keys, byKey)
}

// termsOf resolves keys through byKey, in canonical order.
func termsOf(keys mapset.Set[string], byKey map[string]Term) []Term {
	out := make([]Term, 0, keys.Cardinality())
	for _, k := range keys.ToSlice() {
		out = append(out, byKey[k])
	}
	SortTerms(out)
	return out
}
