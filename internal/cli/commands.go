package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pborges/logicmin"
	"github.com/pborges/logicmin/internal/expr"
	"github.com/pborges/logicmin/internal/logic"
	"github.com/pborges/logicmin/internal/pla"
	"github.com/pborges/logicmin/internal/report"
	"github.com/pborges/logicmin/internal/verify"
)

var ErrNotEquivalent = errors.New("minimized form is not equivalent")

func (a *app) newTableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table <expression>",
		Short: "Prints the truth table and canonical forms of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.cache.Get(a.opts.Vars, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := report.TruthTable(out, f, a.opts.Steps); err != nil {
				return err
			}
			return report.Forms(out, f)
		},
	}
	a.opts.bindVars(cmd.Flags())
	cmd.Flags().BoolVar(&a.opts.Steps, "steps", false, "add a column per operator application")
	return cmd
}

func (a *app) newMinimizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minimize [expression]",
		Short: "Minimizes an expression or a PLA truth table",
		Long: `Minimizes an expression, or with --pla the function a PLA file describes.

Methods: calculus (Quine-McCluskey), table (calculus with the coverage
chart printed), grid (Karnaugh map, 2 to 5 variables; other sizes fall
back to calculus).`,
		Args: cobra.RangeArgs(0, 1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.PLA == "" && len(args) != 1 {
				return errors.New("an expression or --pla is required")
			}
			if a.opts.PLA != "" {
				if _, err := os.Stat(a.opts.PLA); errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file (%s) not found", a.opts.PLA)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				f   *logic.Function
				err error
			)
			if a.opts.PLA != "" {
				f, err = readPLA(a.opts.PLA)
			} else {
				f, err = a.cache.Get(a.opts.Vars, args[0])
			}
			if err != nil {
				return err
			}
			return a.minimize(cmd.OutOrStdout(), f)
		},
	}
	a.opts.bindForm(cmd.Flags())
	a.opts.bindMethod(cmd.Flags())
	a.opts.bindVars(cmd.Flags())
	cmd.Flags().BoolVar(&a.opts.Verify, "verify", false, "prove the result equivalent with a SAT solver")
	cmd.Flags().StringVar(&a.opts.PLA, "pla", "", "read the truth table from a PLA file")
	return cmd
}

func readPLA(path string) (*logic.Function, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening pla file (%s)", path)
	}
	defer file.Close()
	p, err := pla.Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing pla file (%s)", path)
	}
	return p.Function()
}

// minimize runs the configured method over f and prints each stage.
func (a *app) minimize(w io.Writer, f *logic.Function) error {
	opts, chart, err := a.opts.minimizeOptions()
	if err != nil {
		return err
	}
	r := f.Minimize(append(opts, logic.WithLogger(a.log))...)

	if r.Method == logic.Grid {
		if g, err := logic.NewKMap(f.Table()); err == nil {
			if err := report.KarnaughMap(w, g); err != nil {
				return err
			}
		}
	}
	if chart {
		if err := report.Chart(w, r); err != nil {
			return err
		}
	}
	if err := report.Summary(w, r); err != nil {
		return err
	}
	if a.opts.Verify {
		return a.verify(w, r)
	}
	return nil
}

func (a *app) verify(w io.Writer, r *logic.Result) error {
	got, err := expr.Compile(r.Expression)
	if err != nil {
		return errors.Wrap(err, "compiling result")
	}
	f := r.Function
	if f.Program() == nil {
		ok, err := verify.Matches(got, f.Table())
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotEquivalent
		}
		_, err = fmt.Fprintln(w, "verified: result matches the truth table")
		return err
	}
	names := f.Vars().Names()
	ok, witness, err := verify.Equivalent(f.Program(), got, names)
	if err != nil {
		return err
	}
	if !ok {
		a.log.Error("verification failed", zap.String("result", r.Expression), zap.Bools("witness", witness))
		return errors.Wrapf(ErrNotEquivalent, "differs at %s", assignment(names, witness))
	}
	_, err = fmt.Fprintln(w, "verified: result is equivalent to the expression")
	return err
}

func assignment(names []string, values []bool) string {
	parts := make([]string, len(names))
	for i, n := range names {
		v := 0
		if values[i] {
			v = 1
		}
		parts[i] = fmt.Sprintf("%s=%d", n, v)
	}
	return strings.Join(parts, " ")
}

func (a *app) newEquivCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equiv <expression> <expression>",
		Short: "Decides whether two expressions denote the same function",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := expr.Compile(args[0])
			if err != nil {
				return errors.Wrap(err, "left")
			}
			right, err := expr.Compile(args[1])
			if err != nil {
				return errors.Wrap(err, "right")
			}
			names := a.opts.Vars
			if len(names) == 0 {
				names = unionVars(left, right)
			}
			same, err := verify.SameFunction(left, right, names)
			if err != nil {
				return err
			}
			nl, err := verify.Count(left, names)
			if err != nil {
				return err
			}
			nr, err := verify.Count(right, names)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "variables: %v\n", names)
			fmt.Fprintf(out, "satisfying assignments: %s / %s\n", nl, nr)
			if same {
				_, err = fmt.Fprintln(out, "equivalent")
				return err
			}
			_, witness, err := verify.Equivalent(left, right, names)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "not equivalent: differ at %s\n", assignment(names, witness))
			return err
		},
	}
	a.opts.bindVars(cmd.Flags())
	return cmd
}

func unionVars(ps ...*expr.Program) []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range ps {
		for _, n := range p.Vars() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (a *app) newPLACommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pla <expression>",
		Short: "Writes the minimized cover of an expression as a PLA file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.cache.Get(a.opts.Vars, args[0])
			if err != nil {
				return err
			}
			opts, _, err := a.opts.minimizeOptions()
			if err != nil {
				return err
			}
			r := f.Minimize(append(opts, logic.WithLogger(a.log))...)
			cfg := pla.Config{Header: []string{
				"logicmin " + logicmin.Version(),
				r.Function.Expression(),
			}}
			if a.opts.Output == "" || a.opts.Output == "-" {
				return pla.Write(cmd.OutOrStdout(), cfg, r)
			}
			file, err := os.Create(a.opts.Output)
			if err != nil {
				return err
			}
			if err := pla.Write(file, cfg, r); err != nil {
				file.Close()
				return err
			}
			a.log.Info("wrote pla", zap.String("path", a.opts.Output), zap.Int("rows", len(r.Implicants())))
			return file.Close()
		},
	}
	a.opts.bindForm(cmd.Flags())
	a.opts.bindMethod(cmd.Flags())
	a.opts.bindVars(cmd.Flags())
	cmd.Flags().StringVarP(&a.opts.Output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), logicmin.Version())
			return err
		},
	}
}
