package logic

import "strings"

// productText renders t as an AND of literals: 1 as the name, 0 negated.
func productText(vars Vars, t Term) string {
	var lits []string
	for i, b := range t {
		switch b {
		case One:
			lits = append(lits, vars.Name(i))
		case Zero:
			lits = append(lits, "!"+vars.Name(i))
		case DontCare:
		}
	}
	if len(lits) == 0 {
		return "1"
	}
	return strings.Join(lits, " & ")
}

// sumText renders a maxterm-side t as an OR of literals: 0 as the name,
// 1 negated.
func sumText(vars Vars, t Term) string {
	var lits []string
	for i, b := range t {
		switch b {
		case Zero:
			lits = append(lits, vars.Name(i))
		case One:
			lits = append(lits, "!"+vars.Name(i))
		case DontCare:
		}
	}
	if len(lits) == 0 {
		return "0"
	}
	return strings.Join(lits, " | ")
}

// RenderClause renders one implicant in the given form. CNF clauses with
// more than one literal are parenthesised.
func RenderClause(vars Vars, form Form, t Term) string {
	if form == CNF {
		s := sumText(vars, t)
		if t.Literals() > 1 {
			return "(" + s + ")"
		}
		return s
	}
	return productText(vars, t)
}

// Render joins implicants into a whole expression: clauses ORed for DNF,
// ANDed for CNF. Clauses appear in canonical term order.
func Render(vars Vars, form Form, implicants []Term) string {
	if len(implicants) == 0 {
		return form.identity()
	}
	ts := append([]Term(nil), implicants...)
	SortTerms(ts)
	clauses := make([]string, len(ts))
	for i, t := range ts {
		clauses[i] = RenderClause(vars, form, t)
	}
	return strings.Join(clauses, form.joiner())
}
