// Package pla reads and writes single-output covers in the Berkeley PLA
// format used by espresso and related tools.
package pla

import (
	"fmt"
	"io"
	"strings"

	"github.com/pborges/logicmin/internal/logic"
)

// Config controls the text written around the cover rows.
type Config struct {
	// Header lines are written as # comments before the directives.
	Header []string
	// Output names the function column; defaults to "f".
	Output string
}

// Format renders implicants as a PLA. DNF covers are written as the ON-set
// (type f); CNF covers describe the OFF-set and are written as type r.
func Format(cfg Config, vars logic.Vars, form logic.Form, implicants []logic.Term) string {
	var buf strings.Builder
	for _, line := range cfg.Header {
		for _, l := range strings.Split(strings.TrimRight(line, "\n"), "\n") {
			buf.WriteString("# ")
			buf.WriteString(l)
			buf.WriteByte('\n')
		}
	}
	output := cfg.Output
	if output == "" {
		output = "f"
	}
	fmt.Fprintf(&buf, ".i %d\n", vars.Len())
	buf.WriteString(".o 1\n")
	fmt.Fprintf(&buf, ".ilb %s\n", strings.Join(vars.Names(), " "))
	fmt.Fprintf(&buf, ".ob %s\n", output)
	if form == logic.CNF {
		buf.WriteString(".type r\n")
	}

	rows := append([]logic.Term(nil), implicants...)
	logic.SortTerms(rows)
	fmt.Fprintf(&buf, ".p %d\n", len(rows))
	for _, t := range rows {
		buf.WriteString(t.String())
		buf.WriteString(" 1\n")
	}
	buf.WriteString(".e\n")
	return buf.String()
}

// FormatResult renders a minimization result. Constant results are
// written as an empty cover or as a single all don't-care row.
func FormatResult(cfg Config, r *logic.Result) string {
	if cfg.Output == "" && r.Function.Expression() != "" && isName(r.Function.Expression()) {
		cfg.Output = r.Function.Expression()
	}
	vars := r.Function.Vars()
	implicants := r.Implicants()
	if r.Constant {
		implicants = nil
		// an all don't-care row stands for the whole cube
		if (r.Form == logic.DNF) == (r.Expression == "1") {
			implicants = []logic.Term{make(logic.Term, vars.Len())}
			for i := range implicants[0] {
				implicants[0][i] = logic.DontCare
			}
		}
	}
	return Format(cfg, vars, r.Form, implicants)
}

// Write is like Format but writes to w.
func Write(w io.Writer, cfg Config, r *logic.Result) error {
	_, err := io.WriteString(w, FormatResult(cfg, r))
	return err
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
		if !letter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return true
}
