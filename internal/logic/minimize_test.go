package logic

import (
	"strings"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// oracle evaluates a rendered result with an independent expression engine.
func oracle(t *testing.T, rendered string, names []string, assign []bool) bool {
	t.Helper()
	switch rendered {
	case "1":
		return true
	case "0":
		return false
	}
	src := strings.NewReplacer("&", "&&", "|", "||").Replace(rendered)
	e, err := govaluate.NewEvaluableExpression(src)
	require.NoError(t, err, src)
	params := make(map[string]interface{}, len(names))
	for i, n := range names {
		params[n] = assign[i]
	}
	v, err := e.Evaluate(params)
	require.NoError(t, err, src)
	b, ok := v.(bool)
	require.True(t, ok, "%s evaluated to %T", src, v)
	return b
}

func requireEquivalent(t *testing.T, r *Result) {
	t.Helper()
	tbl := r.Function.Table()
	names := tbl.Vars().Names()
	for i := 0; i < tbl.Len(); i++ {
		assign := tbl.Assignment(uint64(i))
		require.Equal(t, tbl.Value(uint64(i)), oracle(t, r.Expression, names, assign),
			"%s (%s) differs at row %d", r.Expression, r.Form, i)
	}
}

var roundTripCases = []struct {
	vars []string
	expr string
}{
	{[]string{"a", "b"}, "a | b"},
	{[]string{"a", "b"}, "a -> b"},
	{[]string{"a", "b"}, "a ~ b"},
	{[]string{"a", "b", "c"}, "a & !b | a & c"},
	{[]string{"a", "b", "c"}, "(a | b) & !(b & c)"},
	{[]string{"a", "b", "c"}, "a -> b -> c"},
	{[]string{"a", "b", "c", "d"}, "a & b | c & d | !a & !c"},
	{[]string{"a", "b", "c", "d"}, "(a ~ b) ~ (c ~ d)"},
	{[]string{"a", "b", "c", "d", "e"}, "a & (b | c) -> d ~ !e"},
	{[]string{"x", "y", "z"}, "x & y & z | !x & !y & !z"},
	{[]string{"p", "q", "r", "s", "t", "u"}, "p & q | r & s | t & u"},
}

func TestMinimize_RoundTrip(t *testing.T) {
	for _, tc := range roundTripCases {
		for _, form := range []Form{DNF, CNF} {
			for _, method := range []Method{Calculus, Grid} {
				r, err := Minimize(tc.vars, tc.expr, WithForm(form), WithMethod(method))
				require.NoError(t, err, tc.expr)
				requireEquivalent(t, r)
			}
		}
	}
}

func TestMinimize_OrOfTwo(t *testing.T) {
	r, err := Minimize([]string{"a", "b"}, "a | b")
	require.NoError(t, err)
	assert.Equal(t, []string{"-1", "1-"}, termStrings(r.Primes))
	assert.Equal(t, []int{0, 1}, r.Cover.Essential)
	assert.Equal(t, "b | a", r.Expression)
	assert.Equal(t, 2, r.Literals())
	assert.False(t, r.Constant)

	cnf, err := MinimizeCNF([]string{"a", "b"}, "a | b")
	require.NoError(t, err)
	assert.Equal(t, "(a | b)", cnf)
}

func TestMinimize_TwoPrimes(t *testing.T) {
	r, err := Minimize([]string{"a", "b", "c"}, "a & !b | a & c")
	require.NoError(t, err)
	assert.Equal(t, "a & c | a & !b", r.Expression)
	assert.Len(t, r.Implicants(), 2)
	require.Len(t, r.Rounds, 1)
}

func TestMinimize_Idempotent(t *testing.T) {
	dnf, err := MinimizeDNF([]string{"a", "b"}, "a & b")
	require.NoError(t, err)
	assert.Equal(t, "a & b", dnf)

	again, err := MinimizeDNF([]string{"a", "b"}, dnf)
	require.NoError(t, err)
	assert.Equal(t, dnf, again)

	cnf, err := MinimizeCNF([]string{"a", "b"}, "a & b")
	require.NoError(t, err)
	assert.Equal(t, "b & a", cnf)
}

func TestMinimize_Constants(t *testing.T) {
	for _, form := range []Form{DNF, CNF} {
		r, err := Minimize([]string{"a"}, "a | !a", WithForm(form))
		require.NoError(t, err)
		assert.True(t, r.Constant)
		assert.Equal(t, "1", r.Expression)
		assert.Equal(t, "1", r.Simplified())
		assert.Empty(t, r.Implicants())

		r, err = Minimize([]string{"a", "b"}, "a & !a", WithForm(form))
		require.NoError(t, err)
		assert.True(t, r.Constant)
		assert.Equal(t, "0", r.Expression)
	}
}

func TestMinimize_FromValues(t *testing.T) {
	p := []bool{false, true, true, true, false, false, false, true}
	r, err := Minimize([]string{"A", "B", "C"}, "P", WithValues(p))
	require.NoError(t, err)
	assert.Equal(t, "B & C | !A & C | !A & B", r.Expression)
	requireEquivalent(t, r)

	parity := []bool{false, true, true, false, true, false, false, true}
	r, err = Minimize([]string{"A", "B", "C"}, "D", WithValues(parity))
	require.NoError(t, err)
	assert.Equal(t, "!A & !B & C | !A & B & !C | A & !B & !C | A & B & C", r.Expression)
	assert.Equal(t, 12, r.Literals())
}

func TestMinimize_MethodsAgree(t *testing.T) {
	for _, tc := range roundTripCases {
		if len(tc.vars) > MaxGridVars {
			continue
		}
		for _, form := range []Form{DNF, CNF} {
			calc, err := Minimize(tc.vars, tc.expr, WithForm(form), WithMethod(Calculus))
			require.NoError(t, err)
			grid, err := Minimize(tc.vars, tc.expr, WithForm(form), WithMethod(Grid))
			require.NoError(t, err)
			assert.Equal(t, Grid, grid.Method)
			assert.Equal(t, calc.Literals(), grid.Literals(), tc.expr)
			assert.Equal(t, calc.Expression, grid.Expression, tc.expr)
			assert.Empty(t, grid.Rounds)
		}
	}
}

func TestMinimize_GridFallback(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	for _, vars := range [][]string{
		{"a"},
		{"a", "b", "c", "d", "e", "f"},
	} {
		r, err := Minimize(vars, "a", WithMethod(Grid), WithLogger(zap.New(core)))
		require.NoError(t, err)
		assert.Equal(t, Grid, r.Requested)
		assert.Equal(t, Calculus, r.Method)
		assert.Equal(t, "a", r.Expression)
	}
	assert.Equal(t, 2, logs.FilterMessage("falling back to calculus method").Len())
}

func TestMinimize_CoverageTotality(t *testing.T) {
	for _, tc := range roundTripCases {
		for _, form := range []Form{DNF, CNF} {
			r, err := Minimize(tc.vars, tc.expr, WithForm(form))
			require.NoError(t, err)
			for _, m := range r.Canonical {
				covered := false
				for _, imp := range r.Implicants() {
					covered = covered || imp.Covers(m)
				}
				assert.True(t, covered, "%s: %v uncovered", tc.expr, m)
			}
		}
	}
}

func TestParseFormAndMethod(t *testing.T) {
	for in, want := range map[string]Form{"dnf": DNF, "SOP": DNF, " cnf ": CNF, "pos": CNF} {
		got, err := ParseForm(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseForm("xnf")
	assert.Error(t, err)

	for in, want := range map[string]Method{"qm": Calculus, "calculus": Calculus, "kmap": Grid, "Grid": Grid} {
		got, err := ParseMethod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err = ParseMethod("espresso")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	v := MustVars("a", "b", "c")
	assert.Equal(t, "0", Render(v, DNF, nil))
	assert.Equal(t, "1", Render(v, CNF, nil))
	assert.Equal(t, "1", Render(v, DNF, terms("---")))
	assert.Equal(t, "0", Render(v, CNF, terms("---")))
	assert.Equal(t, "!b | a & c", Render(v, DNF, terms("1-1", "-0-")))
	assert.Equal(t, "b & (!a | !c)", Render(v, CNF, terms("1-1", "-0-")))
}
