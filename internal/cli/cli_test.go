package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pborges/logicmin"
	"github.com/pborges/logicmin/internal/expr"
	"github.com/pborges/logicmin/internal/pla"
)

func noEnv(string) (string, bool) { return "", false }

func run(lookup func(string) (string, bool), args ...string) (string, error) {
	cmd := newRootCmd(lookup)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var _ = Describe("logicmin", func() {
	It("prints the version", func() {
		out, err := run(noEnv, "version")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(logicmin.Version() + "\n"))
	})

	Describe("table", func() {
		It("prints the canonical forms", func() {
			out, err := run(noEnv, "table", "a -> b")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("SDNF: (!a & !b) | (!a & b) | (a & b)\n"))
			Expect(out).To(ContainSubstring("SCNF: (!a | b)\n"))
			Expect(out).To(ContainSubstring("numeric DNF: (0, 1, 3) |\n"))
			Expect(out).To(ContainSubstring("index: 13\n"))
		})

		It("honours the variable order", func() {
			out, err := run(noEnv, "table", "--vars", "b,a", "a & !b")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("numeric DNF: (1) |\n"))
		})

		It("rejects malformed expressions", func() {
			_, err := run(noEnv, "table", "a &")
			Expect(err).To(MatchError(expr.ErrMalformedExpression))
		})
	})

	Describe("minimize", func() {
		It("minimizes to DNF by default", func() {
			out, err := run(noEnv, "minimize", "a & !b | a & c")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("result (dnf, calculus): a & c | a & !b\n"))
			Expect(out).To(ContainSubstring("literals: 4\n"))
		})

		It("minimizes to CNF", func() {
			out, err := run(noEnv, "minimize", "--form", "cnf", "a | b")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("result (cnf, calculus): (a | b)\n"))
		})

		It("prints the coverage chart for the table method", func() {
			out, err := run(noEnv, "minimize", "--method", "table", "a & !b | a & c")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("*a & c"))
			Expect(out).To(ContainSubstring("*a & !b"))
		})

		It("uses the Karnaugh map when it can", func() {
			out, err := run(noEnv, "minimize", "--method", "grid", "a & !b | a & c")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("result (dnf, grid): a & c | a & !b\n"))

			out, err = run(noEnv, "minimize", "--method", "grid", "a | !a & b | c & d & e & f")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("calculus, grid unavailable"))
		})

		It("verifies the result", func() {
			out, err := run(noEnv, "minimize", "--verify", "--form", "cnf", "(a ~ b) -> c")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("verified: result is equivalent to the expression\n"))
		})

		It("takes defaults from the environment", func() {
			env := func(k string) (string, bool) {
				if k == envForm {
					return "cnf", true
				}
				return "", false
			}
			out, err := run(env, "minimize", "a & b")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("result (cnf, calculus): b & a\n"))
		})

		It("requires an expression or a PLA file", func() {
			_, err := run(noEnv, "minimize")
			Expect(err).To(HaveOccurred())
		})

		It("rejects unknown methods", func() {
			_, err := run(noEnv, "minimize", "--method", "espresso", "a")
			Expect(err).To(HaveOccurred())
		})

		It("reads a PLA truth table", func() {
			path := filepath.Join(GinkgoT().TempDir(), "p.pla")
			Expect(os.WriteFile(path, []byte(".i 3\n.o 1\n.ilb A B C\n.ob P\n001 1\n01- 1\n111 1\n.e\n"), 0o644)).To(Succeed())
			out, err := run(noEnv, "minimize", "--verify", "--pla", path)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("function: P\n"))
			Expect(out).To(ContainSubstring("B & C | !A & C | !A & B\n"))
			Expect(out).To(ContainSubstring("verified: result matches the truth table\n"))
		})

		It("reports a missing PLA file", func() {
			_, err := run(noEnv, "minimize", "--pla", filepath.Join(GinkgoT().TempDir(), "missing.pla"))
			Expect(err).To(MatchError(ContainSubstring("not found")))
		})
	})

	Describe("equiv", func() {
		It("recognizes equivalent expressions", func() {
			out, err := run(noEnv, "equiv", "a -> b", "!a | b")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("satisfying assignments: 3 / 3\n"))
			Expect(out).To(HaveSuffix("equivalent\n"))
			Expect(out).NotTo(ContainSubstring("not equivalent"))
		})

		It("shows where expressions differ", func() {
			out, err := run(noEnv, "equiv", "a & b", "a | b")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("variables: [a b]\n"))
			Expect(out).To(ContainSubstring("satisfying assignments: 1 / 3\n"))
			Expect(out).To(MatchRegexp(`not equivalent: differ at a=\d b=\d`))
		})
	})

	Describe("pla", func() {
		It("writes a cover that reads back to the same table", func() {
			path := filepath.Join(GinkgoT().TempDir(), "out.pla")
			_, err := run(noEnv, "pla", "-o", path, "--form", "cnf", "a & !b | a & c")
			Expect(err).NotTo(HaveOccurred())

			file, err := os.Open(path)
			Expect(err).NotTo(HaveOccurred())
			defer file.Close()
			p, err := pla.Parse(file)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Type).To(Equal("r"))
			Expect(p.Labels).To(Equal([]string{"a", "b", "c"}))
			values, err := p.Values()
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal([]bool{false, false, false, false, true, true, false, true}))
		})

		It("writes to stdout by default", func() {
			out, err := run(noEnv, "pla", "a | b")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HavePrefix("# logicmin " + logicmin.Version() + "\n"))
			Expect(out).To(ContainSubstring(".p 2\n-1 1\n1- 1\n.e\n"))
		})
	})

	Describe("options", func() {
		It("rejects an unknown log level", func() {
			_, err := run(noEnv, "--log-level", "loud", "version")
			Expect(err).To(HaveOccurred())
		})

		It("reads the log level from the environment", func() {
			env := func(k string) (string, bool) {
				if k == envLogLevel {
					return "debug", true
				}
				return "", false
			}
			o := defaultOptions(env)
			Expect(o.LogLevel).To(Equal("debug"))
			Expect(o.Form).To(Equal("dnf"))
		})

		It("maps the table method to the calculus method with a chart", func() {
			o := defaultOptions(noEnv)
			o.Method = "table"
			opts, chart, err := o.minimizeOptions()
			Expect(err).NotTo(HaveOccurred())
			Expect(chart).To(BeTrue())
			Expect(opts).To(HaveLen(2))
		})
	})

	Describe("function cache", func() {
		It("returns the cached function for a repeated key", func() {
			c := newFunctionCache(2)
			f1, err := c.Get(nil, "a & b")
			Expect(err).NotTo(HaveOccurred())
			f2, err := c.Get(nil, "a & b")
			Expect(err).NotTo(HaveOccurred())
			Expect(f2).To(BeIdenticalTo(f1))

			f3, err := c.Get([]string{"b", "a"}, "a & b")
			Expect(err).NotTo(HaveOccurred())
			Expect(f3).NotTo(BeIdenticalTo(f1))
			Expect(c.Len()).To(Equal(2))

			_, err = c.Get(nil, "c")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Len()).To(Equal(2))
		})

		It("does not cache failures", func() {
			c := newFunctionCache(2)
			_, err := c.Get(nil, "a &")
			Expect(err).To(HaveOccurred())
			Expect(c.Len()).To(BeZero())
		})
	})
})
