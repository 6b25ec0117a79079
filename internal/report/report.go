// Package report prints truth tables, coverage charts, Karnaugh maps and
// minimization summaries.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kr/text"
	"github.com/olekukonko/tablewriter"

	"github.com/pborges/logicmin/internal/expr"
	"github.com/pborges/logicmin/internal/logic"
)

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// render lays rows out under header and copies the result to w.
func render(w io.Writer, header []string, rows [][]string) error {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.Header(header)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	_, err := w.Write(buf.Bytes())
	return err
}

func resultLabel(f *logic.Function) string {
	if f.Expression() == "" {
		return "f"
	}
	return f.Expression()
}

// TruthTable writes one row per assignment. With steps set and a compiled
// expression available, each operator application gets its own column.
func TruthTable(w io.Writer, f *logic.Function, steps bool) error {
	t := f.Table()
	names := t.Vars().Names()
	prog := f.Program()
	if prog == nil {
		steps = false
	}

	header := append([]string(nil), names...)
	if steps {
		labels := prog.Steps()
		// the last step is the whole expression, shown as the result column
		if len(labels) > 0 {
			labels = labels[:len(labels)-1]
		}
		header = append(header, labels...)
	}
	header = append(header, resultLabel(f))

	rows := make([][]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		assign := t.Assignment(uint64(i))
		row := make([]string, 0, len(header))
		for _, v := range assign {
			row = append(row, bit(v))
		}
		if steps {
			env := make(map[string]bool, len(names))
			for j, n := range names {
				env[n] = assign[j]
			}
			_, trace, err := prog.Trace(expr.MapEnv(env))
			if err != nil {
				return err
			}
			if len(trace) > 0 {
				trace = trace[:len(trace)-1]
			}
			for _, v := range trace {
				row = append(row, bit(v))
			}
		}
		row = append(row, bit(t.Value(uint64(i))))
		rows = append(rows, row)
	}
	return render(w, header, rows)
}

// Forms writes the canonical and numeric forms of f.
func Forms(w io.Writer, f *logic.Function) error {
	_, err := fmt.Fprintf(w, "SDNF: %s\nSCNF: %s\nnumeric DNF: %s\nnumeric CNF: %s\nindex: %s\n",
		f.SDNF(), f.SCNF(), f.NumericDNF(), f.NumericCNF(), f.Index())
	return err
}

// Chart writes the implicant-by-term coverage chart of r. Essential
// implicants are starred.
func Chart(w io.Writer, r *logic.Result) error {
	if r.Constant {
		_, err := fmt.Fprintf(w, "constant %s, no chart\n", r.Expression)
		return err
	}
	vars := r.Function.Vars()
	c := logic.NewChart(r.Primes, r.Canonical)
	essential := make(map[string]bool)
	for _, t := range r.Cover.EssentialTerms() {
		essential[t.Key()] = true
	}

	header := []string{"implicant"}
	for _, t := range c.Terms {
		header = append(header, t.String())
	}
	rows := make([][]string, len(c.Implicants))
	for i, imp := range c.Implicants {
		label := logic.RenderClause(vars, r.Form, imp)
		if essential[imp.Key()] {
			label = "*" + label
		}
		row := []string{label}
		for _, m := range c.Marks[i] {
			if m {
				row = append(row, "X")
			} else {
				row = append(row, "")
			}
		}
		rows[i] = row
	}
	return render(w, header, rows)
}

// KarnaughMap writes the map of f's table with Gray-coded axes.
func KarnaughMap(w io.Writer, g *logic.KMap) error {
	corner := fmt.Sprintf("%s \\ %s", join(g.RowVars()), join(g.ColVars()))
	header := append([]string{corner}, g.ColLabels()...)
	rowLabels := g.RowLabels()
	rows := make([][]string, g.Rows())
	for r := range rows {
		row := []string{rowLabels[r]}
		for c := 0; c < g.Cols(); c++ {
			row = append(row, bit(g.Cell(r, c)))
		}
		rows[r] = row
	}
	return render(w, header, rows)
}

func join(names []string) string {
	var buf bytes.Buffer
	for _, n := range names {
		buf.WriteString(n)
	}
	return buf.String()
}

// Summary writes every stage of a minimization: canonical terms, the
// combining rounds, prime and essential implicants and the result.
func Summary(w io.Writer, r *logic.Result) error {
	f := r.Function
	vars := f.Vars()
	fmt.Fprintf(w, "function: %s\n", resultLabel(f))
	fmt.Fprintf(w, "variables: %s\n", vars)
	if r.Constant {
		_, err := fmt.Fprintf(w, "result (%s): %s\n", r.Form, r.Expression)
		return err
	}

	list := func(title string, ts []logic.Term) {
		fmt.Fprintf(w, "%s:\n", title)
		iw := text.NewIndentWriter(w, []byte("  "))
		for _, t := range ts {
			fmt.Fprintf(iw, "%s  %s\n", t, logic.RenderClause(vars, r.Form, t))
		}
	}
	canonical := "minterms"
	if r.Form == logic.CNF {
		canonical = "maxterms"
	}
	list(canonical, r.Canonical)
	for i, round := range r.Rounds {
		list(fmt.Sprintf("round %d", i+1), round)
	}
	list("prime implicants", r.Primes)
	list("essential", r.Cover.EssentialTerms())
	list("selected", r.Implicants())

	method := r.Method.String()
	if r.Requested != r.Method {
		method = fmt.Sprintf("%s, %s unavailable", r.Method, r.Requested)
	}
	_, err := fmt.Fprintf(w, "result (%s, %s): %s\nliterals: %d\n", r.Form, method, r.Expression, r.Literals())
	return err
}
