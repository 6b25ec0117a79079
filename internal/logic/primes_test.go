package logic

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termStrings(ts []Term) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func terms(ss ...string) []Term {
	out := make([]Term, len(ss))
	for i, s := range ss {
		out[i] = MustParseTerm(s)
	}
	return out
}

func TestPrimeImplicants_OrOfTwo(t *testing.T) {
	// a | b over [a, b]
	primes := PrimeImplicants(terms("01", "10", "11"))
	assert.Equal(t, []string{"-1", "1-"}, termStrings(primes))
}

func TestPrimeImplicants_MultiRound(t *testing.T) {
	// a&!b&!c | a&!b&c | a&b&c
	primes, rounds := PrimeImplicantsTrace(terms("100", "101", "111"))
	assert.Equal(t, []string{"1-1", "10-"}, termStrings(primes))
	require.Len(t, rounds, 1)
	assert.Equal(t, []string{"1-1", "10-"}, termStrings(rounds[0]))
}

func TestPrimeImplicants_CollapsesToSingleVariable(t *testing.T) {
	// every combination of b, c with a set reduces to a
	primes, rounds := PrimeImplicantsTrace(terms("100", "110", "101", "111"))
	assert.Equal(t, []string{"1--"}, termStrings(primes))
	assert.Len(t, rounds, 2)
}

func TestPrimeImplicants_NoCombination(t *testing.T) {
	// odd parity: no two minterms are adjacent
	primes := PrimeImplicants(terms("001", "010", "100", "111"))
	assert.Equal(t, []string{"001", "010", "100", "111"}, termStrings(primes))
}

func TestPrimeImplicants_Duplicates(t *testing.T) {
	primes := PrimeImplicants(terms("11", "11", "10"))
	assert.Equal(t, []string{"1-"}, termStrings(primes))
}

func TestPrimeImplicants_Empty(t *testing.T) {
	assert.Empty(t, PrimeImplicants(nil))
}

func TestPrimeImplicants_OrderIndependent(t *testing.T) {
	in := terms("0000", "0001", "0011", "0101", "0111", "1000", "1010", "1100", "1110", "1111")
	want := termStrings(PrimeImplicants(in))
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]Term(nil), in...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if diff := cmp.Diff(want, termStrings(PrimeImplicants(shuffled))); diff != "" {
			t.Fatalf("prime implicants depend on input order (-want +got):\n%s", diff)
		}
	}
}

func TestPrimeImplicants_ArePrime(t *testing.T) {
	in := terms("0000", "0001", "0010", "0101", "0110", "0111", "1000", "1010", "1110", "1111")
	member := make(map[uint64]bool)
	for _, m := range in {
		idx, _ := m.Index()
		member[idx] = true
	}
	for _, p := range PrimeImplicants(in) {
		for _, m := range p.Members() {
			assert.True(t, member[m], "%v covers %d outside the on-set", p, m)
		}
		// widening any fixed position must leave the on-set
		for pos, b := range p {
			if b == DontCare {
				continue
			}
			wider := append(Term(nil), p...)
			wider[pos] = DontCare
			inside := true
			for _, m := range wider.Members() {
				inside = inside && member[m]
			}
			assert.False(t, inside, "%v is not prime: %v is still an implicant", p, wider)
		}
	}
}
